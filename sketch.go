package sketch5

import (
	"context"
	"errors"
	"image/color"
	"math"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var whitePixelImage *ebiten.Image

// whitePixel returns the 1x1 source image for solid-color triangles,
// creating it on first use.
func whitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(White)
	}
	return whitePixelImage
}

// Sketch is one running sketch: its configuration, the conversion registry,
// the color coercer, the engine bridge, and the drawing state behind the
// core engine functions.
type Sketch struct {
	cfg    *Config
	reg    *Registry
	cc     *ColorCoercer
	bridge  *Bridge
	rng     *Random
	noise   *Noise
	threads *Threads

	canvas *Image
	start  time.Time
	frames int64
	mouseX float64
	mouseY float64

	fill         Color
	fillOn       bool
	stroke       Color
	strokeOn     bool
	strokeWeight float32
	geom         ebiten.GeoM
	font         *text.GoTextFace
}

// NewSketch validates cfg and builds a sketch with the default registry and
// the core engine functions registered. A nil cfg means DefaultConfig.
func NewSketch(cfg *Config) (*Sketch, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cc, err := cfg.coercer()
	if err != nil {
		return nil, err
	}
	s := &Sketch{
		cfg:          cfg,
		reg:          NewDefaultRegistry(),
		cc:           cc,
		rng:          cfg.random(),
		noise:        cfg.noise(),
		threads:      NewThreads(context.Background()),
		canvas:       NewImage(cfg.Width, cfg.Height),
		start:        time.Now(),
		fill:         White,
		fillOn:       true,
		stroke:       Black,
		strokeOn:     true,
		strokeWeight: 1,
	}
	s.bridge = NewBridge(s.reg, s.cc)
	if err := s.registerCore(); err != nil {
		return nil, err
	}
	Logger().Info("sketch created", "title", cfg.Title, "functions", len(s.bridge.Names()))
	return s, nil
}

// Config returns the validated configuration the sketch was built with.
func (s *Sketch) Config() *Config { return s.cfg }

// Registry returns the sketch's conversion registry.
func (s *Sketch) Registry() *Registry { return s.reg }

// Coercer returns the color coercer used for color arguments.
func (s *Sketch) Coercer() *ColorCoercer { return s.cc }

// Bridge returns the engine bridge holding the core functions.
func (s *Sketch) Bridge() *Bridge { return s.bridge }

// Random returns the sketch's random source.
func (s *Sketch) Random() *Random { return s.rng }

// Noise returns the sketch's noise field.
func (s *Sketch) Noise() *Noise { return s.noise }

// Threads returns the manager for the sketch's background threads.
func (s *Sketch) Threads() *Threads { return s.threads }

// Canvas returns the persistent image handlers draw onto.
func (s *Sketch) Canvas() *Image { return s.canvas }

// FrameCount returns the number of frames drawn so far.
func (s *Sketch) FrameCount() int64 { return s.frames }

// Millis returns the milliseconds elapsed since the sketch was created.
func (s *Sketch) Millis() int64 { return time.Since(s.start).Milliseconds() }

// Mouse returns the last known pointer position.
func (s *Sketch) Mouse() (x, y float64) { return s.mouseX, s.mouseY }

// Width returns the canvas width in pixels.
func (s *Sketch) Width() int { return s.cfg.Width }

// Height returns the canvas height in pixels.
func (s *Sketch) Height() int { return s.cfg.Height }

// Matrix returns the current drawing transform.
func (s *Sketch) Matrix() Matrix2D { return Matrix2DFromGeoM(s.geom) }

// Call invokes a registered engine function through the bridge.
func (s *Sketch) Call(name string, args ...any) (any, error) {
	return s.bridge.Call(name, args...)
}

// Color resolves any supported color input with the sketch's coercer.
func (s *Sketch) Color(v any) (Color, error) { return s.cc.Resolve(v) }

// RandomVector returns a random unit vector of the given dimension from the
// sketch's random source.
func (s *Sketch) RandomVector(dim int) (*Vector[float64], error) {
	return RandomVector[float64](s.rng, dim)
}

// registerCore installs the engine functions sketches draw with.
func (s *Sketch) registerCore() error {
	type fn struct {
		name string
		f    any
		opts []FuncOption
	}
	colorArg := []FuncOption{ColorArgs(0)}
	funcs := []fn{
		{"background", func(c color.Color) { s.canvas.img.Fill(c) }, colorArg},
		{"background", func(level uint8) { s.canvas.Fill(Gray(level)) }, nil},
		{"fill", func(c color.Color) { s.fill, s.fillOn = ColorFrom(c), true }, colorArg},
		{"fill", func(level uint8) { s.fill, s.fillOn = Gray(level), true }, nil},
		{"no_fill", func() { s.fillOn = false }, nil},
		{"stroke", func(c color.Color) { s.stroke, s.strokeOn = ColorFrom(c), true }, colorArg},
		{"stroke", func(level uint8) { s.stroke, s.strokeOn = Gray(level), true }, nil},
		{"no_stroke", func() { s.strokeOn = false }, nil},
		{"stroke_weight", func(w float32) { s.strokeWeight = w }, nil},
		{"rect", s.rect, nil},
		{"circle", s.circle, nil},
		{"line", s.line, nil},
		{"point", s.point, nil},
		{"translate", func(x, y float64) { s.premultiply(func(g *ebiten.GeoM) { g.Translate(x, y) }) }, nil},
		{"rotate", func(angle float64) { s.premultiply(func(g *ebiten.GeoM) { g.Rotate(angle) }) }, nil},
		{"scale", func(sx, sy float64) { s.premultiply(func(g *ebiten.GeoM) { g.Scale(sx, sy) }) }, nil},
		{"apply_matrix", func(m ebiten.GeoM) { s.premultiply(func(g *ebiten.GeoM) { *g = m }) }, nil},
		{"reset_matrix", func() { s.geom.Reset() }, nil},
		{"get_matrix", func() ebiten.GeoM { return s.geom }, nil},
		{"text_font", func(f *text.GoTextFace) { s.font = f }, nil},
		{"text", s.text, nil},
		{"image", s.image, nil},
		{"create_image", func(w, h int) *ebiten.Image { return ebiten.NewImage(w, h) }, nil},
		{"mouse_position", func() mgl64.Vec2 { return mgl64.Vec2{s.mouseX, s.mouseY} }, nil},
		{"save", s.save, nil},
		{"millis", s.Millis, nil},
		{"frame_count", s.FrameCount, nil},
		{"noise", s.noise.At, nil},
		{"noise_seed", s.noise.Seed, nil},
		{"noise_detail", s.noise.Detail, nil},
		{"noise_mode", s.noise.SetMode, nil},
		{"load_json", s.loadJSON, nil},
		{"parse_json", s.parseJSON, nil},
		{"save_json", s.saveJSON, nil},
	}
	for _, f := range funcs {
		if err := s.bridge.Register(f.name, f.f, f.opts...); err != nil {
			return err
		}
	}
	return nil
}

// premultiply applies a transform in the current local coordinate system,
// so it takes effect before everything already on the matrix.
func (s *Sketch) premultiply(build func(*ebiten.GeoM)) {
	var local ebiten.GeoM
	build(&local)
	local.Concat(s.geom)
	s.geom = local
}

func (s *Sketch) rect(x, y, w, h float32) {
	var p vector.Path
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
	s.drawPath(&p)
}

func (s *Sketch) circle(x, y, d float32) {
	var p vector.Path
	p.Arc(x, y, d/2, 0, 2*math.Pi, vector.Clockwise)
	p.Close()
	s.drawPath(&p)
}

func (s *Sketch) line(x0, y0, x1, y1 float32) {
	if !s.strokeOn {
		return
	}
	var p vector.Path
	p.MoveTo(x0, y0)
	p.LineTo(x1, y1)
	s.strokePath(&p)
}

func (s *Sketch) point(x, y float32) {
	if !s.strokeOn {
		return
	}
	var p vector.Path
	p.Arc(x, y, s.strokeWeight/2, 0, 2*math.Pi, vector.Clockwise)
	p.Close()
	s.fillPath(&p, s.stroke)
}

func (s *Sketch) drawPath(p *vector.Path) {
	if s.fillOn {
		s.fillPath(p, s.fill)
	}
	if s.strokeOn {
		s.strokePath(p)
	}
}

func (s *Sketch) fillPath(p *vector.Path, c Color) {
	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	s.drawTriangles(vs, is, c)
}

func (s *Sketch) strokePath(p *vector.Path) {
	opts := &vector.StrokeOptions{
		Width:    s.strokeWeight,
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	}
	vs, is := p.AppendVerticesAndIndicesForStroke(nil, nil, opts)
	s.drawTriangles(vs, is, s.stroke)
}

// drawTriangles colors and transforms path vertices, then draws them.
func (s *Sketch) drawTriangles(vs []ebiten.Vertex, is []uint16, c Color) {
	op := solidVertices(vs, s.geom, c)
	s.canvas.img.DrawTriangles(vs, is, whitePixel(), op)
}

// solidVertices transforms vs by geom and gives them c as premultiplied
// vertex colors sampling the white pixel. The returned options match that
// color encoding.
func solidVertices(vs []ebiten.Vertex, geom ebiten.GeoM, c Color) *ebiten.DrawTrianglesOptions {
	f := c.Floats()
	for i := range vs {
		x, y := geom.Apply(float64(vs[i].DstX), float64(vs[i].DstY))
		vs[i].DstX, vs[i].DstY = float32(x), float32(y)
		vs[i].SrcX, vs[i].SrcY = 0, 0
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = f[0]*f[3], f[1]*f[3], f[2]*f[3], f[3]
	}
	return &ebiten.DrawTrianglesOptions{
		AntiAlias:      true,
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
	}
}

func (s *Sketch) text(str string, x, y float32) error {
	if s.font == nil {
		return errors.New("no font set; call text_font first")
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.GeoM.Concat(s.geom)
	op.ColorScale.ScaleWithColor(s.fill)
	m := s.font.Metrics()
	op.LineSpacing = m.HAscent + m.HDescent + m.HLineGap
	text.Draw(s.canvas.img, str, s.font, op)
	return nil
}

func (s *Sketch) image(img *ebiten.Image, x, y float32) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.GeoM.Concat(s.geom)
	s.canvas.img.DrawImage(img, op)
}

func (s *Sketch) save(path string) error {
	return s.canvas.Save(s.savePath(path), false)
}

// savePath resolves relative output paths against the configured save
// directory.
func (s *Sketch) savePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.cfg.SaveDir, filepath.FromSlash(path))
}
