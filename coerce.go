package sketch5

import (
	"fmt"
	"image/color"
	"math"
	"reflect"

	"golang.org/x/image/colornames"
)

// ColorStrategy interprets one kind of color input. ok is false when the
// input is not of that kind, so the next strategy can try.
type ColorStrategy struct {
	Name    string
	Convert func(v any) (c Color, ok bool)
}

// ColorCoercer normalizes heterogeneous color inputs into packed Colors by
// running its strategies in order; the first match wins.
//
// The default order is:
//
//  1. hex strings ("#RGB", "#RGBA", "#RRGGBB", "#RRGGBBAA")
//  2. named colors and color.Color values from any library
//  3. float scalars through the active colormap (only when one is set)
//  4. packed integers (Color, uint32, and integers with the alpha high bit set)
//
// Hex comes before names so "#..." strings never reach the name table, and
// colormap scalars come before packed integers so a float is never read as
// raw bits. Small non-negative integers are left unconverted because the
// engine treats them as gray levels.
type ColorCoercer struct {
	strategies []ColorStrategy
	cmap       Colormap
	cmapRange  float64
}

// CoercerOption configures a ColorCoercer.
type CoercerOption func(*ColorCoercer)

// WithColormap enables colormap coercion: a float v maps to cmap.At(v/rng).
func WithColormap(cmap Colormap, rng float64) CoercerOption {
	return func(cc *ColorCoercer) {
		cc.cmap = cmap
		cc.cmapRange = rng
	}
}

// WithStrategy appends a custom strategy after the built-in ones.
func WithStrategy(s ColorStrategy) CoercerOption {
	return func(cc *ColorCoercer) {
		cc.strategies = append(cc.strategies, s)
	}
}

// NewColorCoercer returns a coercer with the built-in strategies in the
// documented order, followed by any custom strategies.
func NewColorCoercer(opts ...CoercerOption) *ColorCoercer {
	cc := &ColorCoercer{cmapRange: 1}
	cc.strategies = []ColorStrategy{
		{Name: "hex", Convert: hexStrategy},
		{Name: "named", Convert: namedStrategy},
		{Name: "colormap", Convert: cc.colormapStrategy},
		{Name: "packed", Convert: packedStrategy},
	}
	for _, o := range opts {
		o(cc)
	}
	return cc
}

// Colormap returns the active colormap, or nil.
func (cc *ColorCoercer) Colormap() Colormap { return cc.cmap }

// Strategies returns the strategy names in the order they are tried.
func (cc *ColorCoercer) Strategies() []string {
	names := make([]string, len(cc.strategies))
	for i, s := range cc.strategies {
		names[i] = s.Name
	}
	return names
}

// Coerce returns the packed color for v. ok is false when no strategy
// recognizes v, signaling the caller to try another interpretation.
func (cc *ColorCoercer) Coerce(v any) (c Color, ok bool) {
	for _, s := range cc.strategies {
		if c, ok := s.Convert(v); ok {
			return c, true
		}
	}
	return 0, false
}

// Resolve is Coerce as a final fallback: an unrecognized v is an error.
func (cc *ColorCoercer) Resolve(v any) (Color, error) {
	if c, ok := cc.Coerce(v); ok {
		return c, nil
	}
	Logger().Debug("color coercion failed", "value", v, "type", fmt.Sprintf("%T", v))
	return 0, fmt.Errorf("sketch5: cannot interpret %v (%T) as a color: %w", v, v, ErrNoColor)
}

func hexStrategy(v any) (Color, bool) {
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	return ParseHex(s)
}

func namedStrategy(v any) (Color, bool) {
	switch x := v.(type) {
	case Color:
		return 0, false
	case string:
		rgba, ok := colornames.Map[foldName(x)]
		if !ok {
			return 0, false
		}
		return ARGB(rgba.A, rgba.R, rgba.G, rgba.B), true
	case color.Color:
		return ColorFrom(x), true
	}
	return 0, false
}

func (cc *ColorCoercer) colormapStrategy(v any) (Color, bool) {
	if cc.cmap == nil {
		return 0, false
	}
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	default:
		return 0, false
	}
	if math.IsNaN(f) || cc.cmapRange == 0 {
		return 0, false
	}
	return cc.cmap.At(f / cc.cmapRange), true
}

func packedStrategy(v any) (Color, bool) {
	switch x := v.(type) {
	case Color:
		return x, true
	case uint32:
		return Color(x), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		switch {
		case n > 0x7FFFFFFF && n <= 0xFFFFFFFF:
			return Color(uint32(n)), true
		case n < 0 && n >= math.MinInt32:
			return Color(uint32(int32(n))), true
		}
	case reflect.Uint, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := rv.Uint()
		if n > 0x7FFFFFFF && n <= 0xFFFFFFFF {
			return Color(uint32(n)), true
		}
	}
	return 0, false
}
