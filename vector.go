package sketch5

import (
	"fmt"
	"iter"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Float is the set of component precisions a Vector can carry.
type Float interface {
	~float32 | ~float64
}

// Vector is a 2D, 3D, or 4D vector used for positions, velocities, and
// directions. The dimension is fixed at construction. A Vector owns its
// backing slice unless it was created in alias (no-copy) mode, in which case
// the caller's slice is shared and mutations are visible on both sides.
//
// Vectors are mutated in place by the Set*, Normalize, Rotate*, Assign, and
// ApplyInPlace methods. All other methods return new vectors.
type Vector[T Float] struct {
	data []T
}

// VectorOptions are explicit construction hints for NewVectorWith.
type VectorOptions struct {
	// Dim is the required dimension. Zero means infer it from the arguments
	// (3 when there are none).
	Dim int
	// NoCopy stores the single []T argument as the backing slice instead of
	// copying it.
	NoCopy bool
}

const defaultDim = 3

// vectorLike is satisfied by every Vector instantiation, so operations can
// accept vectors of either precision.
type vectorLike interface {
	Dim() int
	ToList() []float64
}

// asVector reports whether x is a Vector of either precision. A nil
// *Vector is rejected with ErrVectorArg.
func asVector(x any) (vectorLike, bool, error) {
	w, ok := x.(vectorLike)
	if !ok {
		return nil, false, nil
	}
	if rv := reflect.ValueOf(w); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, true, fmt.Errorf("sketch5: nil Vector: %w", ErrVectorArg)
	}
	return w, true, nil
}

// NewVector creates a vector from explicit components, a single sequence,
// or a mix of vectors, sequences, and scalars that flatten to 2-4 values.
// With no arguments it returns a 3D zero vector.
func NewVector[T Float](args ...any) (*Vector[T], error) {
	return NewVectorWith[T](VectorOptions{}, args...)
}

// NewVectorDim is NewVector with a required dimension.
func NewVectorDim[T Float](dim int, args ...any) (*Vector[T], error) {
	return NewVectorWith[T](VectorOptions{Dim: dim}, args...)
}

// NewVector2D creates a vector that must have two components.
func NewVector2D[T Float](args ...any) (*Vector[T], error) { return NewVectorDim[T](2, args...) }

// NewVector3D creates a vector that must have three components.
func NewVector3D[T Float](args ...any) (*Vector[T], error) { return NewVectorDim[T](3, args...) }

// NewVector4D creates a vector that must have four components.
func NewVector4D[T Float](args ...any) (*Vector[T], error) { return NewVectorDim[T](4, args...) }

// AliasVector creates a vector that shares buf as its backing storage.
// The caller keeps ownership of buf and must not assume isolation from
// mutation through either side.
func AliasVector[T Float](buf []T) (*Vector[T], error) {
	return NewVectorWith[T](VectorOptions{NoCopy: true}, buf)
}

// MustVector is like NewVector but panics on error. Intended for literals.
func MustVector[T Float](args ...any) *Vector[T] {
	v, err := NewVector[T](args...)
	if err != nil {
		panic(err)
	}
	return v
}

// NewVectorWith creates a vector honoring the given hints. It fails when the
// arguments imply a dimension outside [2, 4], when an argument cannot be
// interpreted as vector data, when opts.Dim contradicts the inferred
// dimension, or when opts.NoCopy is set without exactly one []T argument.
func NewVectorWith[T Float](opts VectorOptions, args ...any) (*Vector[T], error) {
	if opts.Dim != 0 && (opts.Dim < 2 || opts.Dim > 4) {
		return nil, fmt.Errorf("sketch5: dim hint %d is outside [2, 4]: %w", opts.Dim, ErrDimension)
	}

	if opts.NoCopy {
		return aliasFrom[T](opts, args)
	}

	var values []float64
	switch {
	case len(args) == 0:
		dim := opts.Dim
		if dim == 0 {
			dim = defaultDim
		}
		return &Vector[T]{data: make([]T, dim)}, nil

	case len(args) == 1:
		vals, isSeq, err := sequenceValues(args[0])
		if err != nil {
			return nil, fmt.Errorf("sketch5: argument 0: %w", err)
		}
		if !isSeq {
			return nil, fmt.Errorf("sketch5: cannot create a Vector from the single value %v: %w", args[0], ErrDimension)
		}
		values = vals

	case len(args) <= 4:
		for i, arg := range args {
			vals, isSeq, err := sequenceValues(arg)
			if err != nil {
				return nil, fmt.Errorf("sketch5: argument %d: %w", i, err)
			}
			if isSeq {
				values = append(values, vals...)
				continue
			}
			f, ok := scalarValue(arg)
			if !ok {
				return nil, fmt.Errorf("sketch5: argument %d has type %T and cannot be used in a Vector: %w", i, arg, ErrVectorArg)
			}
			values = append(values, f)
		}

	default:
		return nil, fmt.Errorf("sketch5: cannot create a Vector from %d arguments: %w", len(args), ErrDimension)
	}

	if len(values) < 2 || len(values) > 4 {
		return nil, fmt.Errorf("sketch5: cannot create a Vector with %d values: %w", len(values), ErrDimension)
	}
	if opts.Dim != 0 && opts.Dim != len(values) {
		return nil, fmt.Errorf("sketch5: dim hint is %d but the values imply dimension %d: %w", opts.Dim, len(values), ErrDimension)
	}

	data := make([]T, len(values))
	for i, f := range values {
		data[i] = T(f)
	}
	return &Vector[T]{data: data}, nil
}

func aliasFrom[T Float](opts VectorOptions, args []any) (*Vector[T], error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("sketch5: no-copy mode needs a single []%s buffer, got %d arguments: %w",
			precisionName[T](), len(args), ErrVectorArg)
	}
	buf, ok := args[0].([]T)
	if !ok {
		switch args[0].(type) {
		case []float32, []float64:
			return nil, fmt.Errorf("sketch5: no-copy buffer %T does not match the Vector precision %s: %w",
				args[0], precisionName[T](), ErrVectorArg)
		}
		return nil, fmt.Errorf("sketch5: no-copy mode needs a []%s buffer, got %T: %w",
			precisionName[T](), args[0], ErrVectorArg)
	}
	if len(buf) < 2 || len(buf) > 4 {
		return nil, fmt.Errorf("sketch5: cannot create a Vector with %d values: %w", len(buf), ErrDimension)
	}
	if opts.Dim != 0 && opts.Dim != len(buf) {
		return nil, fmt.Errorf("sketch5: dim hint is %d but the buffer implies dimension %d: %w", opts.Dim, len(buf), ErrDimension)
	}
	return &Vector[T]{data: buf}, nil
}

// ConvertVector returns a copy of v with a different component precision.
func ConvertVector[U, T Float](v *Vector[T]) *Vector[U] {
	data := make([]U, len(v.data))
	for i, c := range v.data {
		data[i] = U(c)
	}
	return &Vector[U]{data: data}
}

// Dim returns the number of components (2, 3, or 4).
func (v *Vector[T]) Dim() int { return len(v.data) }

// Data returns the backing slice. Writes through it mutate the vector.
func (v *Vector[T]) Data() []T { return v.data }

// Slice returns a copy of the components.
func (v *Vector[T]) Slice() []T {
	out := make([]T, len(v.data))
	copy(out, v.data)
	return out
}

// ToList returns the components as float64 values.
func (v *Vector[T]) ToList() []float64 {
	out := make([]float64, len(v.data))
	for i, c := range v.data {
		out[i] = float64(c)
	}
	return out
}

// Copy returns an independent copy of v.
func (v *Vector[T]) Copy() *Vector[T] {
	return &Vector[T]{data: v.Slice()}
}

// At returns component i. It panics if i is out of range.
func (v *Vector[T]) At(i int) T { return v.data[i] }

// Set assigns component i. It panics if i is out of range.
func (v *Vector[T]) Set(i int, val T) { v.data[i] = val }

// X returns the first component.
func (v *Vector[T]) X() T { return v.data[0] }

// Y returns the second component.
func (v *Vector[T]) Y() T { return v.data[1] }

// Z returns the third component. It panics on a 2D vector.
func (v *Vector[T]) Z() T { return v.data[2] }

// W returns the fourth component. It panics unless v is 4D.
func (v *Vector[T]) W() T { return v.data[3] }

// SetX assigns the first component.
func (v *Vector[T]) SetX(val T) { v.data[0] = val }

// SetY assigns the second component.
func (v *Vector[T]) SetY(val T) { v.data[1] = val }

// SetZ assigns the third component. It panics on a 2D vector.
func (v *Vector[T]) SetZ(val T) { v.data[2] = val }

// SetW assigns the fourth component. It panics unless v is 4D.
func (v *Vector[T]) SetW(val T) { v.data[3] = val }

// Equal reports whether v and other have the same dimension and all
// components compare equal.
func (v *Vector[T]) Equal(other *Vector[T]) bool {
	if other == nil || len(v.data) != len(other.data) {
		return false
	}
	for i := range v.data {
		if v.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// ApproxEqual is Equal with an absolute per-component tolerance.
func (v *Vector[T]) ApproxEqual(other *Vector[T], tol float64) bool {
	if other == nil || len(v.data) != len(other.data) {
		return false
	}
	for i := range v.data {
		if math.Abs(float64(v.data[i]-other.data[i])) > tol {
			return false
		}
	}
	return true
}

// String formats v as "Vector3D(1, 2, 3)".
func (v *Vector[T]) String() string {
	bits := precisionBits[T]()
	parts := make([]string, len(v.data))
	for i, c := range v.data {
		parts[i] = strconv.FormatFloat(float64(c), 'g', -1, bits)
	}
	return fmt.Sprintf("Vector%dD(%s)", len(v.data), strings.Join(parts, ", "))
}

func precisionBits[T Float]() int {
	return reflect.TypeFor[T]().Bits()
}

func precisionName[T Float]() string {
	return reflect.TypeFor[T]().String()
}

// scalarValue converts a numeric scalar of any kind to float64.
func scalarValue(x any) (float64, bool) {
	switch n := x.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint32:
		return float64(n), true
	}
	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	}
	return 0, false
}

// sequenceValues flattens one level of a sequence argument. isSeq is false
// for scalars and other non-sequence values, which callers handle.
func sequenceValues(x any) (vals []float64, isSeq bool, err error) {
	if w, ok, err := asVector(x); ok {
		if err != nil {
			return nil, true, err
		}
		return w.ToList(), true, nil
	}
	switch s := x.(type) {
	case []float64:
		return append([]float64(nil), s...), true, nil
	case []float32:
		vals = make([]float64, len(s))
		for i, f := range s {
			vals[i] = float64(f)
		}
		return vals, true, nil
	case iter.Seq[float64]:
		for f := range s {
			vals = append(vals, f)
		}
		return vals, true, nil
	case string:
		return nil, false, nil
	}

	rv := reflect.ValueOf(x)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false, nil
	}
	vals = make([]float64, rv.Len())
	for i := range vals {
		f, ok := scalarValue(rv.Index(i).Interface())
		if !ok {
			return nil, true, fmt.Errorf("sequence of type %T cannot be used in a Vector: %w", x, ErrVectorArg)
		}
		vals[i] = f
	}
	return vals, true, nil
}
