package sketch5

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Remap re-maps value from the range [start1, stop1] to [start2, stop2].
// Values outside the input range are extrapolated, not clamped.
func Remap(value, start1, stop1, start2, stop2 float64) float64 {
	return start2 + (stop2-start2)*((value-start1)/(stop1-start1))
}

// Constrain clamps amt to [low, high].
func Constrain(amt, low, high float64) float64 {
	return max(low, min(high, amt))
}

// Norm maps value from [start, stop] to [0, 1].
func Norm(value, start, stop float64) float64 {
	return (value - start) / (stop - start)
}

// Lerp returns the value amt of the way from start to stop.
func Lerp(start, stop, amt float64) float64 {
	return amt*(stop-start) + start
}

// Sq returns value squared.
func Sq(value float64) float64 { return value * value }

// Mag returns the length of the vector with the given components.
func Mag(components ...float64) float64 {
	var sum float64
	for _, c := range components {
		sum += c * c
	}
	return math.Sqrt(sum)
}

// Dist returns the distance between two points given as their coordinates
// one after the other, so Dist(x1, y1, x2, y2) or Dist(x1, y1, z1, x2, y2, z2).
func Dist(coords ...float64) (float64, error) {
	if len(coords)%2 != 0 {
		return 0, fmt.Errorf("sketch5: Dist needs an even number of coordinates, got %d: %w", len(coords), ErrDimension)
	}
	half := len(coords) / 2
	var sum float64
	for i := 0; i < half; i++ {
		d := coords[i] - coords[half+i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// Random is a seedable random source for sketches. It is not safe for
// concurrent use.
type Random struct {
	r *rand.Rand
}

// NewRandom returns a Random seeded from the runtime's entropy source.
func NewRandom() *Random {
	return NewRandomSeed(rand.Uint64())
}

// NewRandomSeed returns a Random with a fixed seed, for reproducible sketches.
func NewRandomSeed(seed uint64) *Random {
	return &Random{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Seed resets the source so it replays the sequence for seed.
func (r *Random) Seed(seed uint64) {
	r.r = NewRandomSeed(seed).r
}

// Float returns a uniform value in [0, high).
func (r *Random) Float(high float64) float64 {
	return high * r.r.Float64()
}

// Range returns a uniform value in [low, high).
func (r *Random) Range(low, high float64) float64 {
	return low + (high-low)*r.r.Float64()
}

// Gaussian returns a normally distributed value with mean 0 and standard
// deviation 1.
func (r *Random) Gaussian() float64 {
	return r.r.NormFloat64()
}

// Choice returns a uniform index in [0, n). It panics if n <= 0.
func (r *Random) Choice(n int) int {
	return r.r.IntN(n)
}
