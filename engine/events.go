// Package engine holds the native-side values the sketch runtime receives
// from Ebitengine: keyboard and mouse events assembled from polled input
// state.
package engine

import "github.com/hajimehoshi/ebiten/v2"

// Modifiers is a bitmask of the modifier keys held during an event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether all of mods are set.
func (m Modifiers) Has(mods Modifiers) bool { return m&mods == mods }

// MouseButton identifies a mouse button.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

func (b MouseButton) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	}
	return "none"
}

// KeyAction is what happened to a key.
type KeyAction int

const (
	KeyPressed KeyAction = iota + 1
	KeyReleased
	KeyTyped
)

func (a KeyAction) String() string {
	switch a {
	case KeyPressed:
		return "press"
	case KeyReleased:
		return "release"
	case KeyTyped:
		return "type"
	}
	return "unknown"
}

// MouseAction is what happened to the mouse.
type MouseAction int

const (
	MousePressed MouseAction = iota + 1
	MouseReleased
	MouseClicked
	MouseDragged
	MouseMoved
	MouseWheel
)

func (a MouseAction) String() string {
	switch a {
	case MousePressed:
		return "press"
	case MouseReleased:
		return "release"
	case MouseClicked:
		return "click"
	case MouseDragged:
		return "drag"
	case MouseMoved:
		return "move"
	case MouseWheel:
		return "wheel"
	}
	return "unknown"
}

// KeyEvent is a single keyboard event. Key is set for press and release
// events; Char is set for typed events.
type KeyEvent struct {
	Action    KeyAction
	Key       ebiten.Key
	Char      rune
	Modifiers Modifiers
	Millis    int64
}

// MouseEvent is a single mouse event in window coordinates.
type MouseEvent struct {
	Action    MouseAction
	X, Y      float64
	Button    MouseButton
	Count     int // consecutive clicks, set on click events
	WheelX    float64
	WheelY    float64
	Modifiers Modifiers
	Millis    int64
}
