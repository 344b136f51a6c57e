package sketch5

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sketch5/engine"
)

func TestKeyEventWrapper(t *testing.T) {
	e := NewKeyEvent(engine.KeyEvent{
		Action:    engine.KeyPressed,
		Key:       ebiten.KeyA,
		Modifiers: engine.ModShift | engine.ModMeta,
		Millis:    1500,
	})
	if e.Action() != engine.KeyPressed || e.Key() != ebiten.KeyA {
		t.Errorf("action/key = %v/%v", e.Action(), e.Key())
	}
	if e.KeyName() != "A" {
		t.Errorf("KeyName = %q, want A", e.KeyName())
	}
	if !e.IsShiftDown() || !e.IsMetaDown() || e.IsControlDown() || e.IsAltDown() {
		t.Error("modifier flags mismatch")
	}
	if e.Millis() != 1500 {
		t.Errorf("Millis = %d", e.Millis())
	}
	if _, ok := e.Native().(engine.KeyEvent); !ok {
		t.Errorf("Native = %T", e.Native())
	}

	typed := NewKeyEvent(engine.KeyEvent{Action: engine.KeyTyped, Key: -1, Char: 'é'})
	if typed.KeyName() != "é" || typed.Char() != 'é' {
		t.Errorf("typed KeyName = %q", typed.KeyName())
	}
}

func TestMouseEventWrapper(t *testing.T) {
	e := NewMouseEvent(engine.MouseEvent{
		Action:    engine.MouseClicked,
		X:         12,
		Y:         34,
		Button:    engine.ButtonRight,
		Count:     2,
		WheelY:    -1,
		Modifiers: engine.ModCtrl,
	})
	if e.Action() != engine.MouseClicked || e.Button() != engine.ButtonRight || e.Count() != 2 {
		t.Errorf("action/button/count = %v/%v/%d", e.Action(), e.Button(), e.Count())
	}
	assertVec(t, "Position", e.Position(), 12, 34)
	if wx, wy := e.Wheel(); wx != 0 || wy != -1 {
		t.Errorf("Wheel = %v, %v", wx, wy)
	}
	if !e.IsControlDown() || e.IsShiftDown() {
		t.Error("modifier flags mismatch")
	}
}
