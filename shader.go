package sketch5

import (
	"fmt"
	"maps"
	"reflect"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Shader wraps a compiled Kage shader and the uniform values it is drawn
// with. Images[0] is always the source image passed to Apply.
type Shader struct {
	shader   *ebiten.Shader
	uniforms map[string]any
	images   [4]*ebiten.Image
	op       ebiten.DrawRectShaderOptions
}

// NewShader compiles Kage source.
func NewShader(src []byte) (*Shader, error) {
	s, err := ebiten.NewShader(src)
	if err != nil {
		return nil, fmt.Errorf("sketch5: failed to compile shader: %w", err)
	}
	return WrapShader(s), nil
}

// WrapShader wraps an already compiled shader.
func WrapShader(s *ebiten.Shader) *Shader {
	return &Shader{shader: s, uniforms: make(map[string]any)}
}

// Native returns the underlying *ebiten.Shader.
func (s *Shader) Native() any { return s.shader }

// Set assigns a uniform. Numbers, colors, vectors, and matrices are boxed
// into the float32 forms Kage expects.
func (s *Shader) Set(name string, value any) error {
	u, err := uniformValue(value)
	if err != nil {
		return fmt.Errorf("sketch5: uniform %q: %w", name, err)
	}
	s.uniforms[name] = u
	return nil
}

// SetImage binds img as Images[i] for i in 1..3.
func (s *Shader) SetImage(i int, img *Image) error {
	if i < 1 || i >= len(s.images) {
		return fmt.Errorf("sketch5: shader image index %d out of range 1..%d: %w", i, len(s.images)-1, ErrDimension)
	}
	s.images[i] = img.img
	return nil
}

// Uniforms returns a copy of the boxed uniform values.
func (s *Shader) Uniforms() map[string]any {
	return maps.Clone(s.uniforms)
}

// Apply draws src through the shader onto dst, covering src's bounds.
func (s *Shader) Apply(src, dst *Image) {
	b := src.img.Bounds()
	s.op.Images = [4]*ebiten.Image{src.img, s.images[1], s.images[2], s.images[3]}
	s.op.Uniforms = s.uniforms
	dst.img.DrawRectShader(b.Dx(), b.Dy(), s.shader, &s.op)
}

// uniformValue converts v to a value DrawRectShader accepts. Matrices are
// flattened column by column, the order Kage's matN types use.
func uniformValue(v any) (any, error) {
	switch x := v.(type) {
	case float32, int32, []float32, []int32:
		return x, nil
	case float64:
		return float32(x), nil
	case Color:
		f := x.Floats()
		return f[:], nil
	case Matrix2D:
		return []float32{
			float32(x[0][0]), float32(x[1][0]), 0,
			float32(x[0][1]), float32(x[1][1]), 0,
			float32(x[0][2]), float32(x[1][2]), 1,
		}, nil
	case Matrix3D:
		m := x.Mat4()
		return toFloat32s(m[:]), nil
	case mgl64.Mat4:
		return toFloat32s(x[:]), nil
	case mgl64.Vec2:
		return toFloat32s(x[:]), nil
	case mgl64.Vec3:
		return toFloat32s(x[:]), nil
	case mgl64.Vec4:
		return toFloat32s(x[:]), nil
	case []float64:
		return toFloat32s(x), nil
	case vectorLike:
		if _, _, err := asVector(x); err != nil {
			return nil, err
		}
		return toFloat32s(x.ToList()), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int64, reflect.Uint8, reflect.Uint16:
		return int32(rv.Convert(reflect.TypeFor[int64]()).Int()), nil
	case reflect.Float32, reflect.Float64:
		return float32(rv.Float()), nil
	}
	return nil, fmt.Errorf("cannot use %T as a shader uniform: %w", v, ErrConversion)
}

func toFloat32s(vals []float64) []float32 {
	out := make([]float32, len(vals))
	for i, v := range vals {
		out[i] = float32(v)
	}
	return out
}
