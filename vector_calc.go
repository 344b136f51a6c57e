package sketch5

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// peer expands other into v.Dim() values for binary calculations.
func (v *Vector[T]) peer(other any, name string) ([]float64, error) {
	if w, ok, err := asVector(other); ok {
		if err != nil {
			return nil, err
		}
		if w.Dim() != v.Dim() {
			return nil, fmt.Errorf("sketch5: cannot calculate the %s a %dD Vector and a %dD Vector: %w",
				name, v.Dim(), w.Dim(), ErrDimension)
		}
		return w.ToList(), nil
	}
	vals, isSeq, err := sequenceValues(other)
	if err != nil {
		return nil, fmt.Errorf("sketch5: cannot calculate the %s a Vector and %T: %w", name, other, err)
	}
	if !isSeq {
		return nil, fmt.Errorf("sketch5: cannot calculate the %s a Vector and %T: %w", name, other, ErrVectorArg)
	}
	if len(vals) != v.Dim() {
		return nil, fmt.Errorf("sketch5: cannot calculate the %s a %dD Vector and %d values: %w",
			name, v.Dim(), len(vals), ErrDimension)
	}
	return vals, nil
}

// Dot returns the dot product of v and other.
func (v *Vector[T]) Dot(other any) (float64, error) {
	o, err := v.peer(other, "dot product of")
	if err != nil {
		return 0, err
	}
	var sum float64
	for i, c := range v.data {
		sum += float64(c) * o[i]
	}
	return sum, nil
}

// Dist returns the Euclidean distance between v and other.
func (v *Vector[T]) Dist(other any) (float64, error) {
	o, err := v.peer(other, "distance between")
	if err != nil {
		return 0, err
	}
	var sum float64
	for i, c := range v.data {
		d := float64(c) - o[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// AngleBetween returns the angle in radians between v and other, in [0, pi].
// It fails if either vector is zero.
func (v *Vector[T]) AngleBetween(other any) (float64, error) {
	o, err := v.peer(other, "angle between")
	if err != nil {
		return 0, err
	}
	var dot, ma, mb float64
	for i, c := range v.data {
		a := float64(c)
		dot += a * o[i]
		ma += a * a
		mb += o[i] * o[i]
	}
	if ma == 0 || mb == 0 {
		return 0, fmt.Errorf("sketch5: angle between a Vector and a zero vector is undefined: %w", ErrZeroVector)
	}
	cos := dot / (math.Sqrt(ma) * math.Sqrt(mb))
	return math.Acos(max(-1, min(1, cos))), nil
}

// Lerp returns the point amt of the way from v to other.
func (v *Vector[T]) Lerp(other any, amt float64) (*Vector[T], error) {
	o, err := v.peer(other, "lerp of")
	if err != nil {
		return nil, err
	}
	out := make([]T, len(v.data))
	for i, c := range v.data {
		s := float64(c)
		out[i] = T(s + (o[i]-s)*amt)
	}
	return &Vector[T]{data: out}, nil
}

// crossValues pads a 2D or 3D operand to three values with z = 0.
func crossValues(vals []float64) (mgl64.Vec3, error) {
	switch len(vals) {
	case 2:
		return mgl64.Vec3{vals[0], vals[1], 0}, nil
	case 3:
		return mgl64.Vec3{vals[0], vals[1], vals[2]}, nil
	}
	return mgl64.Vec3{}, fmt.Errorf("sketch5: cannot calculate the cross product with a %dD Vector: %w", len(vals), ErrDimension)
}

// Cross returns the cross product of v and other as a 3D vector. 2D
// operands are treated as lying in the z = 0 plane, so the cross product of
// two 2D vectors is (0, 0, Wedge). 4D operands fail.
func (v *Vector[T]) Cross(other any) (*Vector[T], error) {
	a, err := crossValues(v.ToList())
	if err != nil {
		return nil, err
	}
	var ov []float64
	if w, ok, err := asVector(other); ok {
		if err != nil {
			return nil, err
		}
		ov = w.ToList()
	} else {
		vals, isSeq, err := sequenceValues(other)
		if err != nil || !isSeq {
			return nil, fmt.Errorf("sketch5: cannot calculate the cross product of a Vector and %T: %w", other, ErrVectorArg)
		}
		ov = vals
	}
	b, err := crossValues(ov)
	if err != nil {
		return nil, err
	}
	c := a.Cross(b)
	return &Vector[T]{data: []T{T(c[0]), T(c[1]), T(c[2])}}, nil
}

// Wedge returns the scalar cross product x1*y2 - y1*x2 of two 2D vectors.
func (v *Vector[T]) Wedge(other any) (float64, error) {
	if v.Dim() != 2 {
		return 0, fmt.Errorf("sketch5: wedge product needs 2D Vectors, have %dD: %w", v.Dim(), ErrDimension)
	}
	o, err := v.peer(other, "wedge product of")
	if err != nil {
		return 0, err
	}
	return float64(v.data[0])*o[1] - float64(v.data[1])*o[0], nil
}

// MagSq returns the squared magnitude of v.
func (v *Vector[T]) MagSq() float64 {
	var sum float64
	for _, c := range v.data {
		f := float64(c)
		sum += f * f
	}
	return sum
}

// Mag returns the magnitude of v.
func (v *Vector[T]) Mag() float64 {
	return math.Sqrt(v.MagSq())
}

func (v *Vector[T]) zero() {
	for i := range v.data {
		v.data[i] = 0
	}
}

func (v *Vector[T]) scale(f float64) {
	for i, c := range v.data {
		v.data[i] = T(float64(c) * f)
	}
}

// Normalize scales v in place to unit magnitude. It fails on the zero vector.
func (v *Vector[T]) Normalize() error {
	mag := v.Mag()
	if mag == 0 {
		return fmt.Errorf("sketch5: cannot normalize a Vector of zeros: %w", ErrZeroVector)
	}
	v.scale(1 / mag)
	return nil
}

// Norm returns a normalized copy of v.
func (v *Vector[T]) Norm() (*Vector[T], error) {
	c := v.Copy()
	if err := c.Normalize(); err != nil {
		return nil, err
	}
	return c, nil
}

// SetMag rescales v to the given magnitude, keeping its direction. A zero
// magnitude collapses v to the zero vector. Negative magnitudes fail, as does
// a positive magnitude on the zero vector; v is unchanged on error.
func (v *Vector[T]) SetMag(mag float64) error {
	switch {
	case mag < 0:
		return fmt.Errorf("sketch5: cannot set magnitude to %v: %w", mag, ErrNegative)
	case mag == 0:
		v.zero()
		return nil
	}
	cur := v.Mag()
	if cur == 0 {
		return fmt.Errorf("sketch5: cannot set the magnitude of a Vector of zeros: %w", ErrZeroVector)
	}
	v.scale(mag / cur)
	return nil
}

// SetMagSq rescales v so its squared magnitude is magSq. Same contract as
// SetMag.
func (v *Vector[T]) SetMagSq(magSq float64) error {
	if magSq < 0 {
		return fmt.Errorf("sketch5: cannot set squared magnitude to %v: %w", magSq, ErrNegative)
	}
	return v.SetMag(math.Sqrt(magSq))
}

// SetLimit clamps the magnitude of v to maxMag. Vectors already within the
// limit are unchanged. A negative limit fails.
func (v *Vector[T]) SetLimit(maxMag float64) error {
	switch {
	case maxMag < 0:
		return fmt.Errorf("sketch5: cannot set limit to %v: %w", maxMag, ErrNegative)
	case maxMag == 0:
		v.zero()
		return nil
	}
	magSq := v.MagSq()
	if magSq > maxMag*maxMag {
		v.scale(maxMag / math.Sqrt(magSq))
	}
	return nil
}

// Heading returns the direction of v as Dim()-1 angles in radians:
//
//	2D: the angle counter-clockwise from the positive x axis
//	3D: inclination from +z and azimuth in the xy plane (ISO convention)
//	4D: hyperspherical angles phi1, phi2, phi3
func (v *Vector[T]) Heading() []float64 {
	d := v.ToList()
	switch len(d) {
	case 2:
		return []float64{math.Atan2(d[1], d[0])}
	case 3:
		return []float64{
			math.Atan2(math.Hypot(d[0], d[1]), d[2]),
			math.Atan2(d[1], d[0]),
		}
	default:
		return []float64{
			math.Atan2(math.Sqrt(d[1]*d[1]+d[2]*d[2]+d[3]*d[3]), d[0]),
			math.Atan2(math.Hypot(d[2], d[3]), d[1]),
			math.Atan2(d[3], d[2]),
		}
	}
}

// SetHeading points v in the direction given by Dim()-1 angles, keeping its
// magnitude. See Heading for the angle conventions.
func (v *Vector[T]) SetHeading(angles ...float64) error {
	if len(angles) != v.Dim()-1 {
		return fmt.Errorf("sketch5: a %dD Vector needs %d heading angles, not %d: %w",
			v.Dim(), v.Dim()-1, len(angles), ErrDimension)
	}
	mag := v.Mag()
	switch v.Dim() {
	case 2:
		s, c := math.Sincos(angles[0])
		v.data[0], v.data[1] = T(mag*c), T(mag*s)
	case 3:
		sinT, cosT := math.Sincos(angles[0])
		sinP, cosP := math.Sincos(angles[1])
		v.data[0] = T(mag * cosP * sinT)
		v.data[1] = T(mag * sinP * sinT)
		v.data[2] = T(mag * cosT)
	case 4:
		s1, c1 := math.Sincos(angles[0])
		s2, c2 := math.Sincos(angles[1])
		s3, c3 := math.Sincos(angles[2])
		v.data[0] = T(mag * c1)
		v.data[1] = T(mag * s1 * c2)
		v.data[2] = T(mag * s1 * s2 * c3)
		v.data[3] = T(mag * s1 * s2 * s3)
	}
	return nil
}

// FromHeading returns a unit vector pointing along the given angles. One
// angle gives a 2D vector, two a 3D vector, three a 4D vector.
func FromHeading[T Float](angles ...float64) (*Vector[T], error) {
	if len(angles) < 1 || len(angles) > 3 {
		return nil, fmt.Errorf("sketch5: cannot create a Vector from %d heading angles: %w", len(angles), ErrDimension)
	}
	v := &Vector[T]{data: make([]T, len(angles)+1)}
	v.data[0] = 1
	if err := v.SetHeading(angles...); err != nil {
		return nil, err
	}
	return v, nil
}

// RandomVector returns a unit vector whose heading is uniformly distributed
// over the circle (2D) or sphere (3D, 4D). A nil rng uses a freshly seeded
// source.
func RandomVector[T Float](rng *Random, dim int) (*Vector[T], error) {
	if rng == nil {
		rng = NewRandom()
	}
	switch dim {
	case 2:
		s, c := math.Sincos(rng.Float(2 * math.Pi))
		return &Vector[T]{data: []T{T(c), T(s)}}, nil
	case 3, 4:
		for {
			v := &Vector[T]{data: make([]T, dim)}
			for i := range v.data {
				v.data[i] = T(rng.Gaussian())
			}
			if err := v.Normalize(); err == nil {
				return v, nil
			}
		}
	}
	return nil, fmt.Errorf("sketch5: cannot create a random Vector with dimension %d: %w", dim, ErrDimension)
}

// Axis selects a coordinate axis for RotateAxis.
type Axis uint8

const (
	AxisX Axis = iota + 1
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", uint8(a))
}

// ParseAxis accepts an Axis, the integers 1, 2, 3, or the strings "x", "y",
// "z" (any case).
func ParseAxis(v any) (Axis, error) {
	switch a := v.(type) {
	case Axis:
		if a >= AxisX && a <= AxisZ {
			return a, nil
		}
	case string:
		switch a {
		case "x", "X":
			return AxisX, nil
		case "y", "Y":
			return AxisY, nil
		case "z", "Z":
			return AxisZ, nil
		}
	default:
		if f, ok := scalarValue(v); ok && f == math.Trunc(f) && f >= 1 && f <= 3 {
			return Axis(f), nil
		}
	}
	return 0, fmt.Errorf("sketch5: axis must be 1, 2, 3 or one of \"x\", \"y\", \"z\", got %v: %w", v, ErrVectorArg)
}

// Rotate turns a 2D vector counter-clockwise by angle radians.
func (v *Vector[T]) Rotate(angle float64) error {
	if v.Dim() != 2 {
		return fmt.Errorf("sketch5: Rotate needs a 2D Vector, have %dD; use RotateAxis or RotateAround: %w", v.Dim(), ErrDimension)
	}
	r := mgl64.Rotate2D(angle).Mul2x1(mgl64.Vec2{float64(v.data[0]), float64(v.data[1])})
	v.data[0], v.data[1] = T(r[0]), T(r[1])
	return nil
}

// RotateAxis turns a 3D vector by angle radians about a coordinate axis,
// following the right-hand rule.
func (v *Vector[T]) RotateAxis(angle float64, axis Axis) error {
	if v.Dim() != 3 {
		return fmt.Errorf("sketch5: RotateAxis needs a 3D Vector, have %dD: %w", v.Dim(), ErrDimension)
	}
	var m mgl64.Mat3
	switch axis {
	case AxisX:
		m = mgl64.Rotate3DX(angle)
	case AxisY:
		m = mgl64.Rotate3DY(angle)
	case AxisZ:
		m = mgl64.Rotate3DZ(angle)
	default:
		return fmt.Errorf("sketch5: invalid rotation axis %v: %w", axis, ErrVectorArg)
	}
	v.setVec3(m.Mul3x1(v.vec3()))
	return nil
}

// RotateAround turns a 3D vector by angle radians about an arbitrary axis,
// following the right-hand rule. The axis must be a non-zero 3D vector.
func (v *Vector[T]) RotateAround(angle float64, axis vectorLike) error {
	if axis == nil {
		return fmt.Errorf("sketch5: RotateAround needs an axis: %w", ErrVectorArg)
	}
	if _, _, err := asVector(axis); err != nil {
		return err
	}
	if v.Dim() != 3 || axis.Dim() != 3 {
		return fmt.Errorf("sketch5: RotateAround needs two 3D Vectors: %w", ErrDimension)
	}
	a := axis.ToList()
	u := mgl64.Vec3{a[0], a[1], a[2]}
	if u.Len() == 0 {
		return fmt.Errorf("sketch5: cannot rotate around a Vector of zeros: %w", ErrZeroVector)
	}
	r := mgl64.HomogRotate3D(angle, u.Normalize()).Mul4x1(v.vec3().Vec4(0))
	v.setVec3(r.Vec3())
	return nil
}

func (v *Vector[T]) vec3() mgl64.Vec3 {
	return mgl64.Vec3{float64(v.data[0]), float64(v.data[1]), float64(v.data[2])}
}

func (v *Vector[T]) setVec3(r mgl64.Vec3) {
	v.data[0], v.data[1], v.data[2] = T(r[0]), T(r[1]), T(r[2])
}
