package sketch5

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sketch5/engine"
)

// KeyEvent wraps a native key event for sketch code.
type KeyEvent struct {
	ev engine.KeyEvent
}

// NewKeyEvent wraps ev.
func NewKeyEvent(ev engine.KeyEvent) *KeyEvent { return &KeyEvent{ev: ev} }

// Native returns the wrapped engine.KeyEvent.
func (e *KeyEvent) Native() any { return e.ev }

// Action returns whether the key was pressed, released, or typed.
func (e *KeyEvent) Action() engine.KeyAction { return e.ev.Action }

// Key returns the physical key. It is -1 for typed events.
func (e *KeyEvent) Key() ebiten.Key { return e.ev.Key }

// KeyName returns the key's name, or the typed character.
func (e *KeyEvent) KeyName() string {
	if e.ev.Action == engine.KeyTyped {
		return string(e.ev.Char)
	}
	return e.ev.Key.String()
}

// Char returns the typed character, or 0 for press and release events.
func (e *KeyEvent) Char() rune { return e.ev.Char }

// Millis returns the event time in milliseconds since the sketch started.
func (e *KeyEvent) Millis() int64 { return e.ev.Millis }

// IsShiftDown reports whether Shift was held.
func (e *KeyEvent) IsShiftDown() bool { return e.ev.Modifiers.Has(engine.ModShift) }

// IsControlDown reports whether Control was held.
func (e *KeyEvent) IsControlDown() bool { return e.ev.Modifiers.Has(engine.ModCtrl) }

// IsAltDown reports whether Alt was held.
func (e *KeyEvent) IsAltDown() bool { return e.ev.Modifiers.Has(engine.ModAlt) }

// IsMetaDown reports whether Meta (Command on macOS) was held.
func (e *KeyEvent) IsMetaDown() bool { return e.ev.Modifiers.Has(engine.ModMeta) }

// MouseEvent wraps a native mouse event for sketch code.
type MouseEvent struct {
	ev engine.MouseEvent
}

// NewMouseEvent wraps ev.
func NewMouseEvent(ev engine.MouseEvent) *MouseEvent { return &MouseEvent{ev: ev} }

// Native returns the wrapped engine.MouseEvent.
func (e *MouseEvent) Native() any { return e.ev }

// Action returns the kind of mouse event.
func (e *MouseEvent) Action() engine.MouseAction { return e.ev.Action }

// X returns the pointer x position in canvas pixels.
func (e *MouseEvent) X() float64 { return e.ev.X }

// Y returns the pointer y position in canvas pixels.
func (e *MouseEvent) Y() float64 { return e.ev.Y }

// Position returns the pointer position as a 2D vector.
func (e *MouseEvent) Position() *Vector[float64] {
	return &Vector[float64]{data: []float64{e.ev.X, e.ev.Y}}
}

// Button returns the button involved, or engine.ButtonNone for moves.
func (e *MouseEvent) Button() engine.MouseButton { return e.ev.Button }

// Count is the number of consecutive clicks for click events.
func (e *MouseEvent) Count() int { return e.ev.Count }

// Wheel returns the scroll amount. Positive y scrolls up.
func (e *MouseEvent) Wheel() (x, y float64) { return e.ev.WheelX, e.ev.WheelY }

// Millis returns the event time in milliseconds since the sketch started.
func (e *MouseEvent) Millis() int64 { return e.ev.Millis }

// IsShiftDown reports whether Shift was held.
func (e *MouseEvent) IsShiftDown() bool { return e.ev.Modifiers.Has(engine.ModShift) }

// IsControlDown reports whether Control was held.
func (e *MouseEvent) IsControlDown() bool { return e.ev.Modifiers.Has(engine.ModCtrl) }

// IsAltDown reports whether Alt was held.
func (e *MouseEvent) IsAltDown() bool { return e.ev.Modifiers.Has(engine.ModAlt) }

// IsMetaDown reports whether Meta (Command on macOS) was held.
func (e *MouseEvent) IsMetaDown() bool { return e.ev.Modifiers.Has(engine.ModMeta) }
