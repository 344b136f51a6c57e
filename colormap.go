package sketch5

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Colormap maps a scalar in [0, 1] to a color.
type Colormap interface {
	Name() string
	At(t float64) Color
}

// LinearColormap interpolates linearly between evenly spaced color stops.
type LinearColormap struct {
	name  string
	stops []Color
}

// NewLinearColormap builds a colormap from at least two stops, the first at
// t = 0 and the last at t = 1.
func NewLinearColormap(name string, stops ...Color) (*LinearColormap, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("sketch5: colormap %q needs at least 2 stops, got %d: %w", name, len(stops), ErrConfig)
	}
	return &LinearColormap{name: name, stops: slices.Clone(stops)}, nil
}

// Name returns the colormap's name.
func (m *LinearColormap) Name() string { return m.name }

// At returns the color at t. t is clamped to [0, 1]; NaN maps to t = 0.
func (m *LinearColormap) At(t float64) Color {
	if math.IsNaN(t) {
		t = 0
	}
	t = Constrain(t, 0, 1)
	pos := t * float64(len(m.stops)-1)
	i := int(pos)
	if i >= len(m.stops)-1 {
		return m.stops[len(m.stops)-1]
	}
	return m.stops[i].Lerp(m.stops[i+1], pos-float64(i))
}

func mustColormap(name string, hexes ...string) *LinearColormap {
	stops := make([]Color, len(hexes))
	for i, h := range hexes {
		c, ok := ParseHex(h)
		if !ok {
			panic("sketch5: bad colormap stop " + h)
		}
		stops[i] = c
	}
	m, err := NewLinearColormap(name, stops...)
	if err != nil {
		panic(err)
	}
	return m
}

// builtinColormaps are sampled from the perceptually uniform matplotlib maps.
var builtinColormaps = []*LinearColormap{
	mustColormap("viridis", "#440154", "#482878", "#3E4A89", "#31688E", "#26828E", "#1F9E89", "#35B779", "#6DCD59", "#B4DE2C", "#FDE725"),
	mustColormap("magma", "#000004", "#1C1044", "#4F127B", "#812581", "#B5367A", "#E55064", "#FB8761", "#FEC287", "#FCFDBF"),
	mustColormap("inferno", "#000004", "#1F0C48", "#550F6D", "#88226A", "#BA3655", "#E35933", "#F98C0A", "#F9C932", "#FCFFA4"),
	mustColormap("plasma", "#0D0887", "#46039F", "#7201A8", "#9C179E", "#BD3786", "#D8576B", "#ED7953", "#FB9F3A", "#FDCA26", "#F0F921"),
	mustColormap("gray", "#000000", "#FFFFFF"),
}

// foldName normalizes a user-supplied name: case-folded, with spaces,
// dashes, and underscores removed.
func foldName(s string) string {
	s = cases.Fold().String(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, s)
}

// ColormapNames lists the built-in colormaps.
func ColormapNames() []string {
	names := make([]string, len(builtinColormaps))
	for i, m := range builtinColormaps {
		names[i] = m.name
	}
	return names
}

// LookupColormap returns the built-in colormap with the given name. The
// error for an unknown name suggests close matches.
func LookupColormap(name string) (Colormap, error) {
	key := foldName(name)
	for _, m := range builtinColormaps {
		if m.name == key {
			return m, nil
		}
	}
	return nil, fmt.Errorf("sketch5: %s: %w", unknownNameMsg("colormap", key, ColormapNames()), ErrConfig)
}
