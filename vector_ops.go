package sketch5

import (
	"fmt"
	"math"
)

// ArithOp selects an elementwise arithmetic operation.
type ArithOp uint8

const (
	OpAdd      ArithOp = iota // a + b
	OpSub                     // a - b
	OpMul                     // a * b
	OpDiv                     // a / b
	OpFloorDiv                // floor(a / b)
	OpMod                     // a mod b, with the sign of b
	OpPow                     // a ** b
)

// String returns the operation's name as used in error messages.
func (op ArithOp) String() string {
	switch op {
	case OpAdd:
		return "addition"
	case OpSub:
		return "subtraction"
	case OpMul:
		return "multiplication"
	case OpDiv:
		return "division"
	case OpFloorDiv:
		return "integer division"
	case OpMod:
		return "modular division"
	case OpPow:
		return "power"
	default:
		return fmt.Sprintf("ArithOp(%d)", uint8(op))
	}
}

func (op ArithOp) eval(a, b float64) float64 {
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		return a / b
	case OpFloorDiv:
		return math.Floor(a / b)
	case OpMod:
		return floorMod(a, b)
	case OpPow:
		return math.Pow(a, b)
	}
	return math.NaN()
}

// floorMod is the modulo whose result takes the sign of the divisor.
func floorMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

// OpOption adjusts how Apply treats its operand.
type OpOption func(*opConfig)

type opConfig struct {
	allowVectors bool
}

// AllowVectors permits elementwise multiplication, division, and the other
// non-additive operations between two vectors. Without it those operations
// fail, since they are easily confused with dot and cross products.
func AllowVectors() OpOption {
	return func(c *opConfig) { c.allowVectors = true }
}

// operand expands other into one value per component of v.
func (v *Vector[T]) operand(op ArithOp, other any, opts []OpOption) ([]float64, error) {
	var cfg opConfig
	for _, o := range opts {
		o(&cfg)
	}

	if w, ok, err := asVector(other); ok {
		if err != nil {
			return nil, err
		}
		if op != OpAdd && op != OpSub && !cfg.allowVectors {
			return nil, fmt.Errorf("sketch5: cannot perform %s on two Vectors; pass AllowVectors() for elementwise %s: %w",
				op, op, ErrVectorOp)
		}
		if w.Dim() != v.Dim() {
			return nil, fmt.Errorf("sketch5: cannot perform %s on a %dD Vector and a %dD Vector: %w",
				op, v.Dim(), w.Dim(), ErrDimension)
		}
		return w.ToList(), nil
	}

	if f, ok := scalarValue(other); ok {
		out := make([]float64, v.Dim())
		for i := range out {
			out[i] = f
		}
		return out, nil
	}

	vals, isSeq, err := sequenceValues(other)
	if err != nil {
		return nil, fmt.Errorf("sketch5: cannot perform %s on a Vector and %T: %w", op, other, err)
	}
	if !isSeq {
		return nil, fmt.Errorf("sketch5: cannot perform %s on a Vector and %T: %w", op, other, ErrVectorArg)
	}
	switch len(vals) {
	case v.Dim():
		return vals, nil
	case 1:
		out := make([]float64, v.Dim())
		for i := range out {
			out[i] = vals[0]
		}
		return out, nil
	}
	return nil, fmt.Errorf("sketch5: cannot perform %s on a %dD Vector and a %T of length %d: %w",
		op, v.Dim(), other, len(vals), ErrDimension)
}

func (v *Vector[T]) compute(op ArithOp, other any, reversed bool, opts []OpOption) ([]T, error) {
	o, err := v.operand(op, other, opts)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(v.data))
	for i, c := range v.data {
		a, b := float64(c), o[i]
		if reversed {
			a, b = b, a
		}
		out[i] = T(op.eval(a, b))
	}
	return out, nil
}

// Apply returns v op other as a new vector. other may be a scalar, a numeric
// sequence of length 1 or v.Dim(), or a vector of the same dimension.
func (v *Vector[T]) Apply(op ArithOp, other any, opts ...OpOption) (*Vector[T], error) {
	out, err := v.compute(op, other, false, opts)
	if err != nil {
		return nil, err
	}
	return &Vector[T]{data: out}, nil
}

// ApplyReversed returns other op v as a new vector, for forms such as 1 / v.
func (v *Vector[T]) ApplyReversed(op ArithOp, other any, opts ...OpOption) (*Vector[T], error) {
	out, err := v.compute(op, other, true, opts)
	if err != nil {
		return nil, err
	}
	return &Vector[T]{data: out}, nil
}

// ApplyInPlace replaces v with v op other. v is unchanged on error.
func (v *Vector[T]) ApplyInPlace(op ArithOp, other any, opts ...OpOption) error {
	out, err := v.compute(op, other, false, opts)
	if err != nil {
		return err
	}
	copy(v.data, out)
	return nil
}

// Add returns v + other.
func (v *Vector[T]) Add(other any) (*Vector[T], error) { return v.Apply(OpAdd, other) }

// Sub returns v - other.
func (v *Vector[T]) Sub(other any) (*Vector[T], error) { return v.Apply(OpSub, other) }

// Mul returns v * other.
func (v *Vector[T]) Mul(other any, opts ...OpOption) (*Vector[T], error) {
	return v.Apply(OpMul, other, opts...)
}

// Div returns v / other.
func (v *Vector[T]) Div(other any, opts ...OpOption) (*Vector[T], error) {
	return v.Apply(OpDiv, other, opts...)
}

// FloorDiv returns floor(v / other).
func (v *Vector[T]) FloorDiv(other any, opts ...OpOption) (*Vector[T], error) {
	return v.Apply(OpFloorDiv, other, opts...)
}

// Mod returns v mod other.
func (v *Vector[T]) Mod(other any, opts ...OpOption) (*Vector[T], error) {
	return v.Apply(OpMod, other, opts...)
}

// Pow returns v raised to other.
func (v *Vector[T]) Pow(other any, opts ...OpOption) (*Vector[T], error) {
	return v.Apply(OpPow, other, opts...)
}

// MatMul returns the row-vector product v @ m. m must have v.Dim() rows of
// equal length, and that length must be 2, 3, or 4.
func (v *Vector[T]) MatMul(m [][]float64) (*Vector[T], error) {
	if len(m) != v.Dim() {
		return nil, fmt.Errorf("sketch5: cannot multiply a %dD Vector by a matrix with %d rows: %w", v.Dim(), len(m), ErrDimension)
	}
	cols := len(m[0])
	if cols < 2 || cols > 4 {
		return nil, fmt.Errorf("sketch5: matrix product would have %d values: %w", cols, ErrDimension)
	}
	out := make([]T, cols)
	for j := 0; j < cols; j++ {
		var sum float64
		for i, row := range m {
			if len(row) != cols {
				return nil, fmt.Errorf("sketch5: matrix row %d has %d columns, want %d: %w", i, len(row), cols, ErrDimension)
			}
			sum += float64(v.data[i]) * row[j]
		}
		out[j] = T(sum)
	}
	return &Vector[T]{data: out}, nil
}

// ReverseMatMul returns the column-vector product m @ v. Every row of m must
// have v.Dim() entries and m must have 2, 3, or 4 rows.
func (v *Vector[T]) ReverseMatMul(m [][]float64) (*Vector[T], error) {
	if len(m) < 2 || len(m) > 4 {
		return nil, fmt.Errorf("sketch5: matrix product would have %d values: %w", len(m), ErrDimension)
	}
	out := make([]T, len(m))
	for i, row := range m {
		if len(row) != v.Dim() {
			return nil, fmt.Errorf("sketch5: matrix row %d has %d columns, want %d: %w", i, len(row), v.Dim(), ErrDimension)
		}
		var sum float64
		for j, c := range v.data {
			sum += row[j] * float64(c)
		}
		out[i] = T(sum)
	}
	return &Vector[T]{data: out}, nil
}

// MatMulInPlace replaces v with v @ m. m must be square with v.Dim() rows.
func (v *Vector[T]) MatMulInPlace(m [][]float64) error {
	r, err := v.MatMul(m)
	if err != nil {
		return err
	}
	if r.Dim() != v.Dim() {
		return fmt.Errorf("sketch5: in-place matrix product changes dimension %d to %d: %w", v.Dim(), r.Dim(), ErrDimension)
	}
	copy(v.data, r.data)
	return nil
}

// Neg returns -v.
func (v *Vector[T]) Neg() *Vector[T] {
	out := v.Slice()
	for i := range out {
		out[i] = -out[i]
	}
	return &Vector[T]{data: out}
}

// Abs returns the componentwise absolute value.
func (v *Vector[T]) Abs() *Vector[T] {
	out := v.Slice()
	for i, c := range out {
		out[i] = T(math.Abs(float64(c)))
	}
	return &Vector[T]{data: out}
}

// Round returns v with each component rounded half to even.
func (v *Vector[T]) Round() *Vector[T] {
	out := v.Slice()
	for i, c := range out {
		out[i] = T(math.RoundToEven(float64(c)))
	}
	return &Vector[T]{data: out}
}

// IsZero reports whether every component is zero.
func (v *Vector[T]) IsZero() bool {
	for _, c := range v.data {
		if c != 0 {
			return false
		}
	}
	return true
}
