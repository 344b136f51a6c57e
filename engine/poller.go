package engine

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	defaultDragDeadZone = 4.0 // pixels
	defaultClickWindow  = 400 // milliseconds between clicks counted together
)

// Sample is the input state observed during one frame.
type Sample struct {
	Millis    int64
	Pressed   []ebiten.Key // keys that went down this frame
	Released  []ebiten.Key // keys that went up this frame
	Chars     []rune
	X, Y      float64
	Button    MouseButton // ButtonNone when no button is held
	WheelX    float64
	WheelY    float64
	Modifiers Modifiers
}

// Poller converts per-frame input samples into key and mouse events.
type Poller struct {
	// DragDeadZone is the distance the pointer must travel while held before
	// a drag starts. Releasing inside the dead zone is a click.
	DragDeadZone float64
	// ClickWindow is the longest gap in milliseconds between two clicks at
	// the same spot that still increments the click count.
	ClickWindow int64

	start time.Time

	down     bool
	button   MouseButton
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	dragging bool
	moved    bool // lastX/lastY hold a real position

	clicks    int
	lastClick int64
	clickX    float64
	clickY    float64

	keys     []ebiten.Key
	released []ebiten.Key
	chars    []rune

	injected []Sample
}

// NewPoller returns a poller with the default dead zone and click window.
func NewPoller() *Poller {
	return &Poller{
		DragDeadZone: defaultDragDeadZone,
		ClickWindow:  defaultClickWindow,
		start:        time.Now(),
	}
}

// Poll samples the engine's input state, or consumes one injected sample
// when any are queued. Call it once per Update.
func (p *Poller) Poll() ([]KeyEvent, []MouseEvent) {
	if s, ok := p.nextInjected(); ok {
		s.Millis = time.Since(p.start).Milliseconds()
		return p.Step(s)
	}
	return p.Step(p.sample())
}

func (p *Poller) sample() Sample {
	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	p.released = inpututil.AppendJustReleasedKeys(p.released[:0])
	p.chars = ebiten.AppendInputChars(p.chars[:0])

	mx, my := ebiten.CursorPosition()
	wx, wy := ebiten.Wheel()

	s := Sample{
		Millis:    time.Since(p.start).Milliseconds(),
		Pressed:   p.keys,
		Released:  p.released,
		Chars:     p.chars,
		X:         float64(mx),
		Y:         float64(my),
		WheelX:    wx,
		WheelY:    wy,
		Modifiers: readModifiers(),
	}
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		s.Button = ButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		s.Button = ButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		s.Button = ButtonMiddle
	}
	return s
}

func readModifiers() Modifiers {
	var mods Modifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// Step advances the pointer state machine by one sample and returns the
// events it produced. It does not touch the engine, so it can be driven
// directly.
func (p *Poller) Step(s Sample) ([]KeyEvent, []MouseEvent) {
	var keys []KeyEvent
	for _, k := range s.Pressed {
		keys = append(keys, KeyEvent{Action: KeyPressed, Key: k, Modifiers: s.Modifiers, Millis: s.Millis})
	}
	for _, r := range s.Chars {
		keys = append(keys, KeyEvent{Action: KeyTyped, Key: -1, Char: r, Modifiers: s.Modifiers, Millis: s.Millis})
	}
	for _, k := range s.Released {
		keys = append(keys, KeyEvent{Action: KeyReleased, Key: k, Modifiers: s.Modifiers, Millis: s.Millis})
	}

	var mouse []MouseEvent
	ev := func(a MouseAction, b MouseButton) MouseEvent {
		return MouseEvent{Action: a, X: s.X, Y: s.Y, Button: b, Modifiers: s.Modifiers, Millis: s.Millis}
	}
	pressed := s.Button != ButtonNone
	changed := !p.moved || s.X != p.lastX || s.Y != p.lastY

	switch {
	case pressed && !p.down:
		// The button is captured for the whole interaction.
		p.down = true
		p.button = s.Button
		p.startX, p.startY = s.X, s.Y
		p.dragging = false
		mouse = append(mouse, ev(MousePressed, p.button))
	case !pressed && p.down:
		mouse = append(mouse, ev(MouseReleased, p.button))
		if !p.dragging {
			e := ev(MouseClicked, p.button)
			e.Count = p.countClick(s)
			mouse = append(mouse, e)
		}
		p.down = false
		p.dragging = false
	case pressed && p.down:
		if changed {
			if !p.dragging && math.Hypot(s.X-p.startX, s.Y-p.startY) > p.DragDeadZone {
				p.dragging = true
			}
			if p.dragging {
				mouse = append(mouse, ev(MouseDragged, p.button))
			}
		}
	default:
		if changed && p.moved {
			mouse = append(mouse, ev(MouseMoved, ButtonNone))
		}
	}

	if s.WheelX != 0 || s.WheelY != 0 {
		e := ev(MouseWheel, ButtonNone)
		e.WheelX, e.WheelY = s.WheelX, s.WheelY
		mouse = append(mouse, e)
	}

	p.lastX, p.lastY = s.X, s.Y
	p.moved = true
	return keys, mouse
}

func (p *Poller) countClick(s Sample) int {
	near := math.Hypot(s.X-p.clickX, s.Y-p.clickY) <= p.DragDeadZone
	if p.clicks > 0 && near && s.Millis-p.lastClick <= p.ClickWindow {
		p.clicks++
	} else {
		p.clicks = 1
	}
	p.lastClick = s.Millis
	p.clickX, p.clickY = s.X, s.Y
	return p.clicks
}

// Pressed reports whether a mouse button is currently held.
func (p *Poller) Pressed() bool { return p.down }

// Position returns the last sampled pointer position.
func (p *Poller) Position() (x, y float64) { return p.lastX, p.lastY }
