package sketch5

import (
	"fmt"
	"strings"
)

const componentNames = "xyzw"

// swizzleIndices maps a component name string such as "zyx" to indices,
// checking every character against the components v actually has.
func (v *Vector[T]) swizzleIndices(name string) ([]int, error) {
	valid := componentNames[:v.Dim()]
	idx := make([]int, len(name))
	for i := 0; i < len(name); i++ {
		j := strings.IndexByte(valid, name[i])
		if j < 0 {
			return nil, fmt.Errorf("sketch5: %dD Vector has no component %q in swizzle %q (valid components are %q): %w",
				v.Dim(), name[i], name, valid, ErrSwizzle)
		}
		idx[i] = j
	}
	return idx, nil
}

// Select returns a new vector built from the components named in name, in
// that order. name must be 2-4 characters drawn from "xyzw" limited to the
// vector's dimension; repeats are allowed, so a 2D vector can produce "xyxy".
func (v *Vector[T]) Select(name string) (*Vector[T], error) {
	if len(name) < 2 || len(name) > 4 {
		return nil, fmt.Errorf("sketch5: swizzle %q must be between 2 and 4 characters: %w", name, ErrSwizzle)
	}
	idx, err := v.swizzleIndices(name)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(idx))
	for i, j := range idx {
		out[i] = v.data[j]
	}
	return &Vector[T]{data: out}, nil
}

// Assign writes value into the components named in name. name must not
// repeat a component. value may be a scalar (broadcast to every named
// component), a sequence or vector of length 1, or a sequence or vector with
// one value per named component. v is unchanged on error.
func (v *Vector[T]) Assign(name string, value any) error {
	if name == "" {
		return fmt.Errorf("sketch5: empty swizzle: %w", ErrSwizzle)
	}
	idx, err := v.swizzleIndices(name)
	if err != nil {
		return err
	}
	seen := 0
	for _, j := range idx {
		if seen&(1<<j) != 0 {
			return fmt.Errorf("sketch5: swizzle %q repeats a component; repeats are not allowed in assignments: %w", name, ErrSwizzle)
		}
		seen |= 1 << j
	}

	var vals []float64
	if f, ok := scalarValue(value); ok {
		vals = []float64{f}
	} else {
		seq, isSeq, err := sequenceValues(value)
		if err != nil {
			return fmt.Errorf("sketch5: cannot assign %T to swizzle %q: %w", value, name, err)
		}
		if !isSeq {
			return fmt.Errorf("sketch5: cannot assign %T to swizzle %q: %w", value, name, ErrSwizzle)
		}
		vals = seq
	}
	if len(vals) != 1 && len(vals) != len(idx) {
		return fmt.Errorf("sketch5: value of length %d cannot be assigned to swizzle %q of length %d: %w",
			len(vals), name, len(idx), ErrSwizzle)
	}

	for i, j := range idx {
		if len(vals) == 1 {
			v.data[j] = T(vals[0])
		} else {
			v.data[j] = T(vals[i])
		}
	}
	return nil
}
