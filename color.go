package sketch5

import (
	"fmt"
	"image/color"
)

// Color is a packed 32-bit color: alpha in the most significant byte,
// followed by red, green, and blue. This is the format the engine's pixel
// buffers and fill calls use. Channels are not premultiplied.
//
// Color implements color.Color, so it can be handed to any image/color or
// ebiten API directly.
type Color uint32

// Common colors.
const (
	Black       Color = 0xFF000000
	White       Color = 0xFFFFFFFF
	Transparent Color = 0x00000000
)

// ARGB packs four 8-bit channels.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB packs an opaque color.
func RGB(r, g, b uint8) Color {
	return ARGB(0xFF, r, g, b)
}

// Gray returns an opaque gray of the given level.
func Gray(level uint8) Color {
	return RGB(level, level, level)
}

// Alpha returns the alpha channel.
func (c Color) Alpha() uint8 { return uint8(c >> 24) }

// Red returns the red channel.
func (c Color) Red() uint8 { return uint8(c >> 16) }

// Green returns the green channel.
func (c Color) Green() uint8 { return uint8(c >> 8) }

// Blue returns the blue channel.
func (c Color) Blue() uint8 { return uint8(c) }

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	return Color(uint32(c)&0x00FFFFFF | uint32(a)<<24)
}

// Int32 returns the color in the engine's signed form, where opaque colors
// are negative.
func (c Color) Int32() int32 { return int32(uint32(c)) }

// RGBA implements color.Color. The returned values are alpha-premultiplied
// 16-bit channels.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: c.Alpha()}.RGBA()
}

// Floats returns the channels as straight-alpha values in [0, 1], in RGBA
// order.
func (c Color) Floats() [4]float32 {
	return [4]float32{
		float32(c.Red()) / 255,
		float32(c.Green()) / 255,
		float32(c.Blue()) / 255,
		float32(c.Alpha()) / 255,
	}
}

// Hex formats c as "#RRGGBBAA".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.Red(), c.Green(), c.Blue(), c.Alpha())
}

func (c Color) String() string { return c.Hex() }

// Lerp interpolates each channel between c and other.
func (c Color) Lerp(other Color, t float64) Color {
	t = Constrain(t, 0, 1)
	ch := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return ARGB(
		ch(c.Alpha(), other.Alpha()),
		ch(c.Red(), other.Red()),
		ch(c.Green(), other.Green()),
		ch(c.Blue(), other.Blue()),
	)
}

// ColorFrom converts any color.Color to a packed Color.
func ColorFrom(c color.Color) Color {
	if pc, ok := c.(Color); ok {
		return pc
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ARGB(n.A, n.R, n.G, n.B)
}

// ParseHex parses "#RGB", "#RGBA", "#RRGGBB", or "#RRGGBBAA" (hex digits in
// either case). Short forms duplicate each digit, so "#FFF" equals
// "#FFFFFF". Forms without an alpha digit are fully opaque. ok is false for
// anything else.
func ParseHex(s string) (c Color, ok bool) {
	if len(s) < 2 || s[0] != '#' {
		return 0, false
	}
	digits := s[1:]
	nibbles := make([]uint8, len(digits))
	for i := 0; i < len(digits); i++ {
		n, valid := hexNibble(digits[i])
		if !valid {
			return 0, false
		}
		nibbles[i] = n
	}

	var r, g, b, a uint8 = 0, 0, 0, 0xFF
	switch len(nibbles) {
	case 3:
		r, g, b = nibbles[0]*17, nibbles[1]*17, nibbles[2]*17
	case 4:
		r, g, b, a = nibbles[0]*17, nibbles[1]*17, nibbles[2]*17, nibbles[3]*17
	case 6:
		r, g, b = nibbles[0]<<4|nibbles[1], nibbles[2]<<4|nibbles[3], nibbles[4]<<4|nibbles[5]
	case 8:
		r, g, b = nibbles[0]<<4|nibbles[1], nibbles[2]<<4|nibbles[3], nibbles[4]<<4|nibbles[5]
		a = nibbles[6]<<4 | nibbles[7]
	default:
		return 0, false
	}
	return ARGB(a, r, g, b), true
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
