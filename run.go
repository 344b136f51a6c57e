package sketch5

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sketch5/engine"
)

// Handlers are the user callbacks a sketch runs. Every field is optional.
// A handler returning an error stops the sketch and Run returns that error.
type Handlers struct {
	Setup func(s *Sketch) error
	Draw  func(s *Sketch) error

	KeyPressed  func(s *Sketch, e *KeyEvent) error
	KeyReleased func(s *Sketch, e *KeyEvent) error
	KeyTyped    func(s *Sketch, e *KeyEvent) error

	MousePressed  func(s *Sketch, e *MouseEvent) error
	MouseReleased func(s *Sketch, e *MouseEvent) error
	MouseClicked  func(s *Sketch, e *MouseEvent) error
	MouseDragged  func(s *Sketch, e *MouseEvent) error
	MouseMoved    func(s *Sketch, e *MouseEvent) error
	MouseWheel    func(s *Sketch, e *MouseEvent) error
}

// ErrExit can be returned from a handler to stop the sketch cleanly; Run
// then returns nil.
var ErrExit = errors.New("sketch5: exit")

// Run opens a window and runs the sketch until the window closes or a
// handler fails. A nil cfg means DefaultConfig. If no logger has been set,
// Run logs to stderr at cfg.LogLevel.
func Run(cfg *Config, h Handlers) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if !Logger().Enabled(context.Background(), slog.LevelError) {
		SetLogger(cfg.NewLogger(os.Stderr))
	}
	s, err := NewSketch(cfg)
	if err != nil {
		return err
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(cfg.FrameRate)

	g := newGame(s, h, engine.NewPoller())
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	if cfg.Script != "" {
		if g.script, err = LoadScript(cfg.Script); err != nil {
			return err
		}
	}
	err = ebiten.RunGame(g)
	s.threads.StopAll(false)
	if errors.Is(err, ErrExit) {
		Logger().Info("sketch exited", "frames", s.frames)
		return nil
	}
	return err
}

// game adapts a Sketch to ebiten.Game. Handlers draw onto the sketch's
// persistent canvas during Update; Draw only presents it.
type game struct {
	s      *Sketch
	h      Handlers
	poller *engine.Poller
	fps    *fpsOverlay
	script *Script
	setup  bool
}

func newGame(s *Sketch, h Handlers, p *engine.Poller) *game {
	return &game{s: s, h: h, poller: p}
}

func (g *game) Update() error {
	if err := g.s.threads.Err(); err != nil {
		return err
	}
	if g.script != nil {
		if err := g.script.step(g); err != nil {
			return err
		}
	}
	keys, mouse := g.poller.Poll()
	if err := g.step(keys, mouse); err != nil {
		return err
	}
	if g.fps != nil {
		g.fps.update(1 / float64(ebiten.TPS()))
	}
	return nil
}

// step runs one frame: setup on the first frame, then events, then draw.
func (g *game) step(keys []engine.KeyEvent, mouse []engine.MouseEvent) error {
	if !g.setup {
		g.setup = true
		if g.h.Setup != nil {
			if err := g.h.Setup(g.s); err != nil {
				return fmt.Errorf("sketch5: setup: %w", err)
			}
		}
	}
	for _, ev := range keys {
		if err := g.dispatchKey(ev); err != nil {
			return err
		}
	}
	for _, ev := range mouse {
		if err := g.dispatchMouse(ev); err != nil {
			return err
		}
	}
	if g.h.Draw != nil {
		if err := g.h.Draw(g.s); err != nil {
			return fmt.Errorf("sketch5: draw: %w", err)
		}
	}
	g.s.frames++
	return nil
}

func (g *game) dispatchKey(ev engine.KeyEvent) error {
	var fn func(*Sketch, *KeyEvent) error
	switch ev.Action {
	case engine.KeyPressed:
		fn = g.h.KeyPressed
	case engine.KeyReleased:
		fn = g.h.KeyReleased
	case engine.KeyTyped:
		fn = g.h.KeyTyped
	}
	if fn == nil {
		return nil
	}
	e, ok := g.s.reg.FromNative(ev).(*KeyEvent)
	if !ok {
		e = NewKeyEvent(ev)
	}
	if err := fn(g.s, e); err != nil {
		return fmt.Errorf("sketch5: key %s handler: %w", ev.Action, err)
	}
	return nil
}

func (g *game) dispatchMouse(ev engine.MouseEvent) error {
	g.s.mouseX, g.s.mouseY = ev.X, ev.Y
	var fn func(*Sketch, *MouseEvent) error
	switch ev.Action {
	case engine.MousePressed:
		fn = g.h.MousePressed
	case engine.MouseReleased:
		fn = g.h.MouseReleased
	case engine.MouseClicked:
		fn = g.h.MouseClicked
	case engine.MouseDragged:
		fn = g.h.MouseDragged
	case engine.MouseMoved:
		fn = g.h.MouseMoved
	case engine.MouseWheel:
		fn = g.h.MouseWheel
	}
	if fn == nil {
		return nil
	}
	e, ok := g.s.reg.FromNative(ev).(*MouseEvent)
	if !ok {
		e = NewMouseEvent(ev)
	}
	if err := fn(g.s, e); err != nil {
		return fmt.Errorf("sketch5: mouse %s handler: %w", ev.Action, err)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.s.canvas.img, nil)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

func (g *game) Layout(int, int) (int, int) {
	return g.s.cfg.Width, g.s.cfg.Height
}
