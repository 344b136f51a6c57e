package sketch5

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestLinearColormapEnds(t *testing.T) {
	m, err := NewLinearColormap("bw", Black, White)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		t    float64
		want Color
	}{
		{0, Black},
		{1, White},
		{-5, Black},
		{5, White},
		{math.NaN(), Black},
		{0.5, Gray(128)},
	}
	for _, tt := range tests {
		if got := m.At(tt.t); got != tt.want {
			t.Errorf("At(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestLinearColormapStops(t *testing.T) {
	m, _ := NewLinearColormap("rgb", RGB(255, 0, 0), RGB(0, 255, 0), RGB(0, 0, 255))
	if got := m.At(0.5); got != RGB(0, 255, 0) {
		t.Errorf("middle stop = %v", got)
	}
	if _, err := NewLinearColormap("one", Black); !errors.Is(err, ErrConfig) {
		t.Errorf("single stop err = %v, want ErrConfig", err)
	}
}

func TestLookupColormap(t *testing.T) {
	for _, name := range []string{"viridis", "Viridis", " MAGMA ", "gray"} {
		m, err := LookupColormap(name)
		if err != nil {
			t.Errorf("LookupColormap(%q): %v", name, err)
			continue
		}
		if m.Name() != strings.ToLower(strings.TrimSpace(name)) {
			t.Errorf("LookupColormap(%q).Name() = %q", name, m.Name())
		}
	}

	_, err := LookupColormap("virdis")
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("unknown colormap err = %v, want ErrConfig", err)
	}
	if !strings.Contains(err.Error(), `Did you mean "viridis"?`) {
		t.Errorf("error %q should suggest viridis", err)
	}
}

func TestBuiltinColormapsStartAndEnd(t *testing.T) {
	v, _ := LookupColormap("viridis")
	if got := v.At(0); got != RGB(0x44, 0x01, 0x54) {
		t.Errorf("viridis(0) = %v", got)
	}
	if got := v.At(1); got != RGB(0xFD, 0xE7, 0x25) {
		t.Errorf("viridis(1) = %v", got)
	}
	if len(ColormapNames()) != 5 {
		t.Errorf("ColormapNames = %v", ColormapNames())
	}
}
