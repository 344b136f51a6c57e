package sketch5

import (
	"errors"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestUniformValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"float32", float32(1.5), float32(1.5)},
		{"float64", 0.25, float32(0.25)},
		{"int", 3, int32(3)},
		{"int32", int32(-2), int32(-2)},
		{"uint8", uint8(7), int32(7)},
	}
	for _, tt := range tests {
		got, err := uniformValue(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("%s: %#v, %v; want %#v", tt.name, got, err, tt.want)
		}
	}
}

func TestUniformValueSlices(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []float32
	}{
		{"color", ARGB(0, 255, 0, 51), []float32{1, 0, 0.2, 0}},
		{"vector", MustVector[float64](1, 2, 3), []float32{1, 2, 3}},
		{"vec2", mgl64.Vec2{4, 5}, []float32{4, 5}},
		{"float64 slice", []float64{0.5, 1}, []float32{0.5, 1}},
		{"matrix2d", Translation2D(7, 8), []float32{1, 0, 0, 0, 1, 0, 7, 8, 1}},
	}
	for _, tt := range tests {
		got, err := uniformValue(tt.in)
		if err != nil {
			t.Errorf("%s: %v", tt.name, err)
			continue
		}
		if s, ok := got.([]float32); !ok || !slices.Equal(s, tt.want) {
			t.Errorf("%s: %#v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestUniformValueMatrix3DColumnMajor(t *testing.T) {
	got, err := uniformValue(Matrix3DFromMat4(mgl64.Translate3D(1, 2, 3)))
	if err != nil {
		t.Fatal(err)
	}
	s := got.([]float32)
	if len(s) != 16 || s[12] != 1 || s[13] != 2 || s[14] != 3 || s[15] != 1 {
		t.Errorf("Matrix3D uniform = %v", s)
	}
}

func TestUniformValueRejects(t *testing.T) {
	for _, v := range []any{"str", struct{}{}, map[string]int{}} {
		if _, err := uniformValue(v); !errors.Is(err, ErrConversion) {
			t.Errorf("uniformValue(%T) err = %v", v, err)
		}
	}
}

func TestShaderUniforms(t *testing.T) {
	s := WrapShader(nil)
	if err := s.Set("Time", 1.5); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("Tint", "#FF0000"); !errors.Is(err, ErrConversion) {
		t.Errorf("string uniform err = %v", err)
	}
	u := s.Uniforms()
	if u["Time"] != float32(1.5) || len(u) != 1 {
		t.Errorf("Uniforms = %v", u)
	}
	u["Time"] = 0
	if s.Uniforms()["Time"] != float32(1.5) {
		t.Error("Uniforms returned the live map")
	}

	for _, i := range []int{0, 4} {
		if err := s.SetImage(i, nil); !errors.Is(err, ErrDimension) {
			t.Errorf("SetImage(%d) err = %v", i, err)
		}
	}
}
