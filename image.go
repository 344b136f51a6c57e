package sketch5

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
)

// Bands names the channel layout of a raw pixel buffer.
type Bands string

const (
	BandsL    Bands = "L"
	BandsRGB  Bands = "RGB"
	BandsRGBA Bands = "RGBA"
	BandsARGB Bands = "ARGB"
)

// Stride returns the number of bytes per pixel, or 0 for an unknown layout.
func (b Bands) Stride() int {
	switch b {
	case BandsL:
		return 1
	case BandsRGB:
		return 3
	case BandsRGBA, BandsARGB:
		return 4
	}
	return 0
}

// Image wraps an engine image and its CPU-side pixel buffer. The buffer is
// filled by LoadPixels and pushed back with UpdatePixels.
type Image struct {
	img    *ebiten.Image
	pixels []Color
}

// NewImage allocates a blank image.
func NewImage(width, height int) *Image {
	return &Image{img: ebiten.NewImage(width, height)}
}

// WrapImage wraps an existing engine image.
func WrapImage(img *ebiten.Image) *Image { return &Image{img: img} }

// Native returns the underlying *ebiten.Image.
func (im *Image) Native() any { return im.img }

// Ebiten returns the underlying image for direct drawing.
func (im *Image) Ebiten() *ebiten.Image { return im.img }

// Width returns the image width in pixels.
func (im *Image) Width() int { return im.img.Bounds().Dx() }

// Height returns the image height in pixels.
func (im *Image) Height() int { return im.img.Bounds().Dy() }

// Fill fills the whole image with c.
func (im *Image) Fill(c Color) { im.img.Fill(c) }

// Clear fills the image with transparent black.
func (im *Image) Clear() { im.img.Clear() }

// DrawImage draws src onto im transformed by m.
func (im *Image) DrawImage(src *Image, m Matrix2D) {
	op := &ebiten.DrawImageOptions{GeoM: m.GeoM()}
	im.img.DrawImage(src.img, op)
}

// LoadPixels copies the image into the pixel buffer.
func (im *Image) LoadPixels() {
	pix := make([]byte, 4*im.Width()*im.Height())
	im.img.ReadPixels(pix)
	im.pixels = premultipliedToColors(pix, im.pixels)
}

// Pixels returns the pixel buffer, row by row. It is nil until LoadPixels
// has been called; edits take effect after UpdatePixels.
func (im *Image) Pixels() []Color { return im.pixels }

// PixelBytes returns a copy of the pixel buffer as bytes in ARGB order.
func (im *Image) PixelBytes() []byte {
	out := make([]byte, 4*len(im.pixels))
	for i, c := range im.pixels {
		out[4*i] = c.Alpha()
		out[4*i+1] = c.Red()
		out[4*i+2] = c.Green()
		out[4*i+3] = c.Blue()
	}
	return out
}

// UpdatePixels writes the pixel buffer back to the image.
func (im *Image) UpdatePixels() error {
	if len(im.pixels) != im.Width()*im.Height() {
		return fmt.Errorf("sketch5: pixel buffer has %d pixels, image has %d; call LoadPixels first: %w",
			len(im.pixels), im.Width()*im.Height(), ErrDimension)
	}
	im.img.WritePixels(colorsToPremultiplied(im.pixels))
	return nil
}

// SetPixels replaces the image contents with raw bytes in the given layout.
// Layouts without alpha are fully opaque.
func (im *Image) SetPixels(data []byte, bands Bands) error {
	px, err := bandsToColors(data, bands, im.Width()*im.Height(), im.pixels)
	if err != nil {
		return err
	}
	im.pixels = px
	return im.UpdatePixels()
}

// Get returns the buffered pixel at (x, y), or Transparent when out of range
// or not loaded.
func (im *Image) Get(x, y int) Color {
	w := im.Width()
	if x < 0 || y < 0 || x >= w || y >= im.Height() || len(im.pixels) != w*im.Height() {
		return Transparent
	}
	return im.pixels[y*w+x]
}

// Set changes the buffered pixel at (x, y). Out-of-range writes are ignored.
func (im *Image) Set(x, y int, c Color) {
	w := im.Width()
	if x < 0 || y < 0 || x >= w || y >= im.Height() || len(im.pixels) != w*im.Height() {
		return
	}
	im.pixels[y*w+x] = c
}

// Save writes the current image contents as a PNG file, creating parent
// directories. With dropAlpha every pixel is written fully opaque.
func (im *Image) Save(path string, dropAlpha bool) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("sketch5: mkdir %s: %w", dir, err)
		}
	}
	w, h := im.Width(), im.Height()
	pix := make([]byte, 4*w*h)
	im.img.ReadPixels(pix)
	return writePNG(path, colorsToNRGBA(w, h, premultipliedToColors(pix, nil), dropAlpha))
}

// Dispose releases the engine image.
func (im *Image) Dispose() {
	im.img.Deallocate()
	im.pixels = nil
}

// premultipliedToColors converts the engine's premultiplied RGBA bytes to
// straight-alpha packed colors, reusing dst when it is large enough.
func premultipliedToColors(pix []byte, dst []Color) []Color {
	n := len(pix) / 4
	if cap(dst) < n {
		dst = make([]Color, n)
	}
	dst = dst[:n]
	for i := range n {
		r, g, b, a := pix[4*i], pix[4*i+1], pix[4*i+2], pix[4*i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		dst[i] = ARGB(a, r, g, b)
	}
	return dst
}

// colorsToPremultiplied is the inverse of premultipliedToColors.
func colorsToPremultiplied(px []Color) []byte {
	out := make([]byte, 4*len(px))
	for i, c := range px {
		a := int(c.Alpha())
		out[4*i] = uint8((int(c.Red())*a + 127) / 255)
		out[4*i+1] = uint8((int(c.Green())*a + 127) / 255)
		out[4*i+2] = uint8((int(c.Blue())*a + 127) / 255)
		out[4*i+3] = uint8(a)
	}
	return out
}

// bandsToColors decodes n pixels of raw data in the given layout.
func bandsToColors(data []byte, bands Bands, n int, dst []Color) ([]Color, error) {
	stride := bands.Stride()
	if stride == 0 {
		return nil, fmt.Errorf("sketch5: unknown pixel layout %q (want L, RGB, RGBA or ARGB): %w", bands, ErrConversion)
	}
	if len(data) != stride*n {
		return nil, fmt.Errorf("sketch5: %s data has %d bytes, want %d for %d pixels: %w", bands, len(data), stride*n, n, ErrDimension)
	}
	if cap(dst) < n {
		dst = make([]Color, n)
	}
	dst = dst[:n]
	for i := range n {
		p := data[i*stride : (i+1)*stride]
		switch bands {
		case BandsL:
			dst[i] = Gray(p[0])
		case BandsRGB:
			dst[i] = RGB(p[0], p[1], p[2])
		case BandsRGBA:
			dst[i] = ARGB(p[3], p[0], p[1], p[2])
		case BandsARGB:
			dst[i] = ARGB(p[0], p[1], p[2], p[3])
		}
	}
	return dst, nil
}

func colorsToNRGBA(w, h int, px []Color, dropAlpha bool) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, c := range px {
		a := c.Alpha()
		if dropAlpha {
			a = 0xFF
		}
		img.Pix[4*i] = c.Red()
		img.Pix[4*i+1] = c.Green()
		img.Pix[4*i+2] = c.Blue()
		img.Pix[4*i+3] = a
	}
	return img
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sketch5: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("sketch5: encode %s: %w", path, err)
	}
	return f.Close()
}
