package engine

import "github.com/hajimehoshi/ebiten/v2"

// Injected samples replace device input: while any are queued, Poll consumes
// one per frame and ignores the mouse and keyboard. Coordinates are window
// coordinates, the same space CursorPosition reports.

// Inject queues a raw sample. Its Millis is overwritten with the frame time
// when it is consumed.
func (p *Poller) Inject(s Sample) {
	p.injected = append(p.injected, s)
}

// InjectPress queues a left-button press at (x, y).
func (p *Poller) InjectPress(x, y float64) {
	p.Inject(Sample{X: x, Y: y, Button: ButtonLeft})
}

// InjectMove queues a pointer move to (x, y) with the left button held.
// Use it between InjectPress and InjectRelease to simulate a drag.
func (p *Poller) InjectMove(x, y float64) {
	p.Inject(Sample{X: x, Y: y, Button: ButtonLeft})
}

// InjectHover queues a pointer move to (x, y) with no button held.
func (p *Poller) InjectHover(x, y float64) {
	p.Inject(Sample{X: x, Y: y})
}

// InjectRelease queues a button release at (x, y).
func (p *Poller) InjectRelease(x, y float64) {
	p.Inject(Sample{X: x, Y: y})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (p *Poller) InjectClick(x, y float64) {
	p.InjectPress(x, y)
	p.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), evenly spaced moves, and a
// release at (toX, toY). The sequence consumes frames frames; the minimum is
// 2 (press and release).
func (p *Poller) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	p.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		p.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	p.InjectRelease(toX, toY)
}

// InjectKey queues a key press and, on the next frame, its release. A
// nonzero char is typed along with the press. The pointer stays where the
// last sample left it.
func (p *Poller) InjectKey(k ebiten.Key, char rune) {
	x, y := p.queuedPosition()
	down := Sample{X: x, Y: y, Pressed: []ebiten.Key{k}}
	if char != 0 {
		down.Chars = []rune{char}
	}
	p.Inject(down)
	p.Inject(Sample{X: x, Y: y, Released: []ebiten.Key{k}})
}

// InjectWheel queues a scroll at the current pointer position.
func (p *Poller) InjectWheel(dx, dy float64) {
	x, y := p.queuedPosition()
	p.Inject(Sample{X: x, Y: y, WheelX: dx, WheelY: dy})
}

// Pending returns the number of queued samples.
func (p *Poller) Pending() int { return len(p.injected) }

// queuedPosition is the pointer position after every queued sample.
func (p *Poller) queuedPosition() (x, y float64) {
	if n := len(p.injected); n > 0 {
		return p.injected[n-1].X, p.injected[n-1].Y
	}
	return p.lastX, p.lastY
}

// nextInjected pops the oldest queued sample.
func (p *Poller) nextInjected() (Sample, bool) {
	if len(p.injected) == 0 {
		return Sample{}, false
	}
	s := p.injected[0]
	copy(p.injected, p.injected[1:])
	p.injected = p.injected[:len(p.injected)-1]
	return s, true
}
