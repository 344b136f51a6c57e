package sketch5

import (
	"fmt"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// NoiseMode selects the gradient noise algorithm behind Noise.At.
type NoiseMode int

// Noise modes.
const (
	SimplexNoise NoiseMode = 1 + iota
	PerlinNoise
)

func (m NoiseMode) String() string {
	switch m {
	case SimplexNoise:
		return "simplex"
	case PerlinNoise:
		return "perlin"
	}
	return fmt.Sprintf("NoiseMode(%d)", int(m))
}

// Noise is fractal gradient noise: several octaves of simplex or Perlin
// noise summed with decreasing amplitude. Values lie roughly in [-1, 1].
// It is not safe for concurrent use.
type Noise struct {
	mode        NoiseMode
	seed        int64
	octaves     int
	persistence float64
	lacunarity  float64

	simplex opensimplex.Noise
	perlin  *perlin.Perlin
}

// NewNoise returns simplex noise with 4 octaves, persistence 0.5, and
// lacunarity 2.
func NewNoise(seed int64) *Noise {
	n := &Noise{
		mode:        SimplexNoise,
		seed:        seed,
		octaves:     4,
		persistence: 0.5,
		lacunarity:  2,
	}
	n.rebuild()
	return n
}

func (n *Noise) rebuild() {
	n.simplex = opensimplex.New(n.seed)
	// go-perlin divides each octave by alpha, so alpha is 1/persistence.
	n.perlin = perlin.NewPerlin(1/n.persistence, n.lacunarity, int32(n.octaves), n.seed)
}

// Mode returns the active algorithm.
func (n *Noise) Mode() NoiseMode { return n.mode }

// SetMode switches the algorithm. Unknown modes are ignored.
func (n *Noise) SetMode(m NoiseMode) {
	if m == SimplexNoise || m == PerlinNoise {
		n.mode = m
	}
}

// Detail sets the octave count, the amplitude falloff per octave, and the
// frequency growth per octave. Non-positive arguments keep their current
// value.
func (n *Noise) Detail(octaves int, persistence, lacunarity float64) {
	if octaves > 0 {
		n.octaves = octaves
	}
	if persistence > 0 {
		n.persistence = persistence
	}
	if lacunarity > 0 {
		n.lacunarity = lacunarity
	}
	n.rebuild()
}

// Seed reseeds the noise field.
func (n *Noise) Seed(seed int64) {
	n.seed = seed
	n.rebuild()
}

// At returns the noise value at the given coordinates. Simplex noise takes
// 1 to 4 coordinates and Perlin noise 1 to 3; other counts fail with
// ErrDimension. The same seed and detail always give the same value.
func (n *Noise) At(coords ...float64) (float64, error) {
	switch n.mode {
	case PerlinNoise:
		return n.perlinAt(coords)
	default:
		return n.simplexAt(coords)
	}
}

func (n *Noise) simplexAt(c []float64) (float64, error) {
	var eval func(f float64) float64
	switch len(c) {
	case 1:
		eval = func(f float64) float64 { return n.simplex.Eval2(c[0]*f, 0) }
	case 2:
		eval = func(f float64) float64 { return n.simplex.Eval2(c[0]*f, c[1]*f) }
	case 3:
		eval = func(f float64) float64 { return n.simplex.Eval3(c[0]*f, c[1]*f, c[2]*f) }
	case 4:
		eval = func(f float64) float64 { return n.simplex.Eval4(c[0]*f, c[1]*f, c[2]*f, c[3]*f) }
	default:
		return 0, fmt.Errorf("sketch5: simplex noise takes 1 to 4 coordinates, got %d: %w", len(c), ErrDimension)
	}
	var sum, total float64
	amp, freq := 1.0, 1.0
	for range n.octaves {
		sum += amp * eval(freq)
		total += amp
		amp *= n.persistence
		freq *= n.lacunarity
	}
	return sum / total, nil
}

func (n *Noise) perlinAt(c []float64) (float64, error) {
	var v float64
	switch len(c) {
	case 1:
		v = n.perlin.Noise1D(c[0])
	case 2:
		v = n.perlin.Noise2D(c[0], c[1])
	case 3:
		v = n.perlin.Noise3D(c[0], c[1], c[2])
	default:
		return 0, fmt.Errorf("sketch5: Perlin noise takes 1 to 3 coordinates, got %d: %w", len(c), ErrDimension)
	}
	var total float64
	amp := 1.0
	for range n.octaves {
		total += amp
		amp *= n.persistence
	}
	return v / total, nil
}
