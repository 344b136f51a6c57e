package sketch5

import (
	"errors"
	"image/color"
	"math"
	"slices"
	"testing"

	"golang.org/x/image/colornames"
)

func TestCoerceDefaultStrategies(t *testing.T) {
	cc := NewColorCoercer()
	tests := []struct {
		name string
		in   any
		want Color
		ok   bool
	}{
		{"hex", "#FF0000", RGB(255, 0, 0), true},
		{"short hex", "#0F0", RGB(0, 255, 0), true},
		{"named", "cornflowerblue", RGB(100, 149, 237), true},
		{"named folded", "Cornflower Blue", RGB(100, 149, 237), true},
		{"named dashed", "dark-olive_green", RGB(85, 107, 47), true},
		{"library color", color.RGBA{R: 1, G: 2, B: 3, A: 255}, RGB(1, 2, 3), true},
		{"colornames value", colornames.Orange, RGB(255, 165, 0), true},
		{"packed Color", ARGB(0x10, 1, 2, 3), ARGB(0x10, 1, 2, 3), true},
		{"uint32", uint32(0x00000001), 0x00000001, true},
		{"int with alpha bit", 0xFF336699, 0xFF336699, true},
		{"negative int", -1, White, true},
		{"int32", int32(-16777216), Black, true},
		{"uint64 in range", uint64(0x80000000), 0x80000000, true},
		{"small int is gray level", 128, 0, false},
		{"too large", int64(0x1FFFFFFFF), 0, false},
		{"float without colormap", 0.5, 0, false},
		{"unknown name", "notacolor", 0, false},
		{"bad hex", "#12", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := cc.Coerce(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Coerce(%v) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCoerceColormapScalar(t *testing.T) {
	bw, _ := NewLinearColormap("bw", Black, White)
	cc := NewColorCoercer(WithColormap(bw, 10))

	got, ok := cc.Coerce(5.0)
	if !ok || got != Gray(128) {
		t.Errorf("Coerce(5.0) = %v, %v; want %v", got, ok, Gray(128))
	}
	got, ok = cc.Coerce(float32(20))
	if !ok || got != White {
		t.Errorf("Coerce(20) = %v, %v; want clamped to white", got, ok)
	}
	if _, ok := cc.Coerce(math.NaN()); ok {
		t.Error("NaN should not coerce")
	}
	// Integers are never colormap scalars.
	if _, ok := cc.Coerce(5); ok {
		t.Error("int 5 should not coerce")
	}
	if cc.Colormap() != bw {
		t.Error("Colormap() mismatch")
	}
}

func TestCoerceStrategyOrder(t *testing.T) {
	custom := ColorStrategy{Name: "bool", Convert: func(v any) (Color, bool) {
		b, ok := v.(bool)
		if !ok {
			return 0, false
		}
		if b {
			return White, true
		}
		return Black, true
	}}
	cc := NewColorCoercer(WithStrategy(custom))

	want := []string{"hex", "named", "colormap", "packed", "bool"}
	if got := cc.Strategies(); !slices.Equal(got, want) {
		t.Errorf("Strategies = %v, want %v", got, want)
	}
	if got, ok := cc.Coerce(true); !ok || got != White {
		t.Errorf("custom strategy: %v, %v", got, ok)
	}
}

func TestResolve(t *testing.T) {
	cc := NewColorCoercer()
	c, err := cc.Resolve("#000")
	if err != nil || c != Black {
		t.Errorf("Resolve(#000) = %v, %v", c, err)
	}
	if _, err := cc.Resolve(struct{}{}); !errors.Is(err, ErrNoColor) {
		t.Errorf("Resolve(struct) err = %v, want ErrNoColor", err)
	}
}
