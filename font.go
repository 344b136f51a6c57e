package sketch5

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Font wraps an Ebitengine text/v2 face loaded from TrueType or OpenType data.
type Font struct {
	face *text.GoTextFace
	lh   float64
}

// LoadFont parses TTF/OTF data and returns a face of the given size.
func LoadFont(data []byte, size float64) (*Font, error) {
	if size <= 0 {
		return nil, fmt.Errorf("sketch5: font size %v must be positive: %w", size, ErrNegative)
	}
	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("sketch5: failed to parse font data: %w", err)
	}
	return NewFont(&text.GoTextFace{Source: source, Size: size}), nil
}

// NewFont wraps an existing face.
func NewFont(face *text.GoTextFace) *Font {
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}
}

// Native returns the underlying *text.GoTextFace.
func (f *Font) Native() any { return f.face }

// Face returns the underlying face for direct text/v2 rendering.
func (f *Font) Face() *text.GoTextFace { return f.face }

// Size returns the face size in pixels.
func (f *Font) Size() float64 { return f.face.Size }

// Ascent returns the distance from the baseline to the top of the tallest glyph.
func (f *Font) Ascent() float64 { return f.face.Metrics().HAscent }

// Descent returns the distance from the baseline to the bottom of the lowest glyph.
func (f *Font) Descent() float64 { return f.face.Metrics().HDescent }

// LineHeight returns the distance between baselines.
func (f *Font) LineHeight() float64 { return f.lh }

// TextWidth returns the advance width of s.
func (f *Font) TextWidth(s string) float64 {
	return text.Advance(s, f.face)
}

// Measure returns the size of the block of text s, with lines separated by
// "\n".
func (f *Font) Measure(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// DrawText draws s onto dst with its top-left corner at (x, y).
func (f *Font) DrawText(dst *Image, s string, x, y float64, c Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.LineSpacing = f.lh
	text.Draw(dst.img, s, f.face, op)
}
