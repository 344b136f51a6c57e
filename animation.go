package sketch5

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// VectorTween animates every component of a vector toward a target. Call
// Update(dt) each frame; the vector is written in place, so aliased buffers
// see the new values too.
//
// There is no global animation manager; callers drive Update themselves.
type VectorTween[T Float] struct {
	tweens []*gween.Tween
	target *Vector[T]
	Done   bool
}

// TweenVector creates a tween moving v to `to` (a vector or sequence of the
// same dimension) over duration seconds using the easing function.
func TweenVector[T Float](v *Vector[T], to any, duration float32, fn ease.TweenFunc) (*VectorTween[T], error) {
	end, err := v.peer(to, "tween between")
	if err != nil {
		return nil, err
	}
	g := &VectorTween[T]{target: v, tweens: make([]*gween.Tween, v.Dim())}
	for i, c := range v.data {
		g.tweens[i] = gween.New(float32(c), float32(end[i]), duration, fn)
	}
	return g, nil
}

// Update advances the tween by dt seconds and writes the new components.
func (g *VectorTween[T]) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i, tw := range g.tweens {
		val, finished := tw.Update(dt)
		g.target.data[i] = T(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Reset rewinds the tween to its start values.
func (g *VectorTween[T]) Reset() {
	for i, tw := range g.tweens {
		tw.Reset()
		val, _ := tw.Set(0)
		g.target.data[i] = T(val)
	}
	g.Done = false
}

// ColorTween animates a packed color channel by channel, in straight alpha.
type ColorTween struct {
	tweens [4]*gween.Tween // alpha, red, green, blue
	target *Color
	Done   bool
}

// TweenColor creates a tween moving *c to `to` over duration seconds.
func TweenColor(c *Color, to Color, duration float32, fn ease.TweenFunc) *ColorTween {
	from := *c
	g := &ColorTween{target: c}
	g.tweens[0] = gween.New(float32(from.Alpha()), float32(to.Alpha()), duration, fn)
	g.tweens[1] = gween.New(float32(from.Red()), float32(to.Red()), duration, fn)
	g.tweens[2] = gween.New(float32(from.Green()), float32(to.Green()), duration, fn)
	g.tweens[3] = gween.New(float32(from.Blue()), float32(to.Blue()), duration, fn)
	return g
}

// Update advances the tween by dt seconds and writes the new color.
func (g *ColorTween) Update(dt float32) {
	if g.Done {
		return
	}
	var ch [4]uint8
	allDone := true
	for i, tw := range g.tweens {
		val, finished := tw.Update(dt)
		ch[i] = channel(val)
		if !finished {
			allDone = false
		}
	}
	*g.target = ARGB(ch[0], ch[1], ch[2], ch[3])
	g.Done = allDone
}

// channel rounds an interpolated channel value into [0, 255]. Easings such
// as elastic and back overshoot their range.
func channel(v float32) uint8 {
	return uint8(Constrain(float64(v), 0, 255) + 0.5)
}
