package sketch5

import (
	"fmt"
	"path/filepath"
	"reflect"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/phanxgames/sketch5/engine"
)

// Wrapper is implemented by sketch-side types that hold an engine handle.
type Wrapper interface {
	Native() any
}

// Path is a filesystem path. It crosses into the engine as a slash-separated
// string.
type Path string

type conversionRule struct {
	name    string
	convert func(v any) (out any, matched bool, err error)
}

// Registry maps values between sketch-side and engine-side representations.
// Inbound rules (engine to sketch) and outbound rules (sketch to engine) are
// each tried in registration order and the first rule whose type matches
// wins. Unmatched values pass through unchanged.
//
// Register rules during initialization and call Seal before sharing the
// registry; a sealed registry is safe for concurrent reads.
type Registry struct {
	inbound  []conversionRule
	outbound []conversionRule
	sealed   bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// Seal stops further registration.
func (r *Registry) Seal() { r.sealed = true }

func (r *Registry) add(rules *[]conversionRule, rule conversionRule) error {
	if r.sealed {
		return fmt.Errorf("sketch5: cannot register %s conversion on a sealed registry: %w", rule.name, ErrConfig)
	}
	*rules = append(*rules, rule)
	return nil
}

// RegisterInbound adds a rule converting engine values of type N.
func RegisterInbound[N any](r *Registry, fn func(N) any) error {
	return r.add(&r.inbound, conversionRule{
		name: reflect.TypeFor[N]().String(),
		convert: func(v any) (any, bool, error) {
			n, ok := v.(N)
			if !ok {
				return nil, false, nil
			}
			return fn(n), true, nil
		},
	})
}

// RegisterOutbound adds a rule converting sketch values of type W, which may
// be an interface.
func RegisterOutbound[W any](r *Registry, fn func(W) (any, error)) error {
	return r.add(&r.outbound, conversionRule{
		name: reflect.TypeFor[W]().String(),
		convert: func(v any) (any, bool, error) {
			w, ok := v.(W)
			if !ok {
				return nil, false, nil
			}
			out, err := fn(w)
			return out, true, err
		},
	})
}

// InboundTypes lists the engine types with inbound rules, in order.
func (r *Registry) InboundTypes() []string { return ruleNames(r.inbound) }

// OutboundTypes lists the sketch types with outbound rules, in order.
func (r *Registry) OutboundTypes() []string { return ruleNames(r.outbound) }

func ruleNames(rules []conversionRule) []string {
	out := make([]string, len(rules))
	for i, rule := range rules {
		out[i] = rule.name
	}
	return out
}

// ToNative converts a sketch value for the engine.
func (r *Registry) ToNative(v any) (any, error) {
	for _, rule := range r.outbound {
		out, ok, err := rule.convert(v)
		if !ok {
			continue
		}
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	return v, nil
}

// FromNative converts an engine value for sketch code.
func (r *Registry) FromNative(v any) any {
	for _, rule := range r.inbound {
		if out, ok, _ := rule.convert(v); ok {
			return out
		}
	}
	return v
}

// FromNativeAll converts each value of a multi-value engine result.
func (r *Registry) FromNativeAll(vs []any) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = r.FromNative(v)
	}
	return out
}

// NewDefaultRegistry returns a sealed registry with the rules for every
// wrapper type in this package.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	mustRule(RegisterOutbound(r, func(w Wrapper) (any, error) { return w.Native(), nil }))
	mustRule(RegisterOutbound(r, vectorToNative))
	mustRule(RegisterOutbound(r, func(m Matrix2D) (any, error) { return m.GeoM(), nil }))
	mustRule(RegisterOutbound(r, func(m Matrix3D) (any, error) { return m.Mat4(), nil }))
	mustRule(RegisterOutbound(r, func(rows [][]float64) (any, error) {
		m, err := MatrixFromRows(rows)
		if err != nil {
			return nil, err
		}
		switch x := m.(type) {
		case Matrix2D:
			return x.GeoM(), nil
		case Matrix3D:
			return x.Mat4(), nil
		}
		return nil, fmt.Errorf("sketch5: unexpected matrix type %T: %w", m, ErrConversion)
	}))
	mustRule(RegisterOutbound(r, func(p Path) (any, error) { return filepath.ToSlash(string(p)), nil }))

	mustRule(RegisterInbound(r, func(img *ebiten.Image) any { return WrapImage(img) }))
	mustRule(RegisterInbound(r, func(s *ebiten.Shader) any { return WrapShader(s) }))
	mustRule(RegisterInbound(r, func(f *text.GoTextFace) any { return NewFont(f) }))
	mustRule(RegisterInbound(r, func(ev engine.KeyEvent) any { return NewKeyEvent(ev) }))
	mustRule(RegisterInbound(r, func(ev engine.MouseEvent) any { return NewMouseEvent(ev) }))
	mustRule(RegisterInbound(r, func(v mgl64.Vec2) any { return &Vector[float64]{data: v[:]} }))
	mustRule(RegisterInbound(r, func(v mgl64.Vec3) any { return &Vector[float64]{data: v[:]} }))
	mustRule(RegisterInbound(r, func(v mgl64.Vec4) any { return &Vector[float64]{data: v[:]} }))
	mustRule(RegisterInbound(r, func(g ebiten.GeoM) any { return Matrix2DFromGeoM(g) }))
	mustRule(RegisterInbound(r, func(m mgl64.Mat4) any { return Matrix3DFromMat4(m) }))

	r.Seal()
	Logger().Debug("conversion registry ready", "inbound", len(r.inbound), "outbound", len(r.outbound))
	return r
}

func mustRule(err error) {
	if err != nil {
		panic(err)
	}
}

// vectorToNative converts 2D and 3D vectors to the engine's 3-component
// vector (z = 0 for 2D). The engine has no 4-component vector, so 4D vectors
// cross as their raw values.
func vectorToNative(v vectorLike) (any, error) {
	if _, _, err := asVector(v); err != nil {
		return nil, fmt.Errorf("%w: %w", err, ErrConversion)
	}
	vals := v.ToList()
	switch len(vals) {
	case 2:
		return mgl64.Vec3{vals[0], vals[1], 0}, nil
	case 3:
		return mgl64.Vec3{vals[0], vals[1], vals[2]}, nil
	case 4:
		return vals, nil
	}
	return nil, fmt.Errorf("sketch5: cannot convert a %d-component vector: %w", len(vals), ErrConversion)
}
