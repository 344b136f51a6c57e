package sketch5

import (
	"errors"
	"math"
	"testing"
)

func TestArithmeticWithScalar(t *testing.T) {
	v := MustVector[float64](1, 2, 3)
	tests := []struct {
		op   ArithOp
		rhs  any
		want []float64
	}{
		{OpAdd, 1, []float64{2, 3, 4}},
		{OpSub, 0.5, []float64{0.5, 1.5, 2.5}},
		{OpMul, 2, []float64{2, 4, 6}},
		{OpDiv, 2, []float64{0.5, 1, 1.5}},
		{OpFloorDiv, 2, []float64{0, 1, 1}},
		{OpMod, 2, []float64{1, 0, 1}},
		{OpPow, 2, []float64{1, 4, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			got, err := v.Apply(tt.op, tt.rhs)
			if err != nil {
				t.Fatal(err)
			}
			assertVec(t, tt.op.String(), got, tt.want...)
		})
	}
	assertVec(t, "operand untouched", v, 1, 2, 3)
}

func TestFloorDivisionAndModuloSigns(t *testing.T) {
	v := MustVector[float64](-7, 7)
	q, _ := v.FloorDiv(2)
	assertVec(t, "-7 // 2, 7 // 2", q, -4, 3)

	m, _ := v.Mod(3)
	assertVec(t, "-7 % 3, 7 % 3", m, 2, 1)

	m, _ = v.Mod(-3)
	assertVec(t, "-7 % -3, 7 % -3", m, -1, -2)
}

func TestArithmeticWithSequences(t *testing.T) {
	v := MustVector[float64](1, 2)
	got, err := v.Add([]float64{10, 20})
	if err != nil {
		t.Fatal(err)
	}
	assertVec(t, "add slice", got, 11, 22)

	got, err = v.Mul([]int{3})
	if err != nil {
		t.Fatal(err)
	}
	assertVec(t, "broadcast length-1", got, 3, 6)

	if _, err := v.Add([]float64{1, 2, 3}); !errors.Is(err, ErrDimension) {
		t.Errorf("length mismatch err = %v, want ErrDimension", err)
	}
	if _, err := v.Add("nope"); !errors.Is(err, ErrVectorArg) {
		t.Errorf("string operand err = %v, want ErrVectorArg", err)
	}
}

func TestVectorVectorOperations(t *testing.T) {
	a := MustVector[float64](1, 2, 3)
	b := MustVector[float32](4, 5, 6)

	sum, err := a.Add(b)
	if err != nil {
		t.Fatal(err)
	}
	assertVec(t, "a + b", sum, 5, 7, 9)

	diff, err := a.Sub(b)
	if err != nil {
		t.Fatal(err)
	}
	assertVec(t, "a - b", diff, -3, -3, -3)

	if _, err := a.Mul(b); !errors.Is(err, ErrVectorOp) {
		t.Errorf("a * b err = %v, want ErrVectorOp", err)
	}
	prod, err := a.Mul(b, AllowVectors())
	if err != nil {
		t.Fatal(err)
	}
	assertVec(t, "a * b elementwise", prod, 4, 10, 18)

	if _, err := a.Add(MustVector[float64](1, 2)); !errors.Is(err, ErrDimension) {
		t.Errorf("dim mismatch err = %v, want ErrDimension", err)
	}
}

func TestApplyReversed(t *testing.T) {
	v := MustVector[float64](1, 2, 4)
	got, err := v.ApplyReversed(OpDiv, 8)
	if err != nil {
		t.Fatal(err)
	}
	assertVec(t, "8 / v", got, 8, 4, 2)

	got, err = v.ApplyReversed(OpSub, 10)
	if err != nil {
		t.Fatal(err)
	}
	assertVec(t, "10 - v", got, 9, 8, 6)
}

func TestApplyInPlaceLeavesVectorOnError(t *testing.T) {
	v := MustVector[float64](1, 2, 3)
	if err := v.ApplyInPlace(OpMul, []float64{1, 2}); err == nil {
		t.Fatal("expected error")
	}
	assertVec(t, "unchanged", v, 1, 2, 3)

	if err := v.ApplyInPlace(OpAdd, 1); err != nil {
		t.Fatal(err)
	}
	assertVec(t, "in place add", v, 2, 3, 4)
}

func TestDivisionByZeroFollowsIEEE(t *testing.T) {
	v := MustVector[float64](1, -1)
	got, err := v.Div(0)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(got.X(), 1) || !math.IsInf(got.Y(), -1) {
		t.Errorf("v / 0 = %v, want [+Inf -Inf]", got)
	}
}

func TestMatMul(t *testing.T) {
	v := MustVector[float64](1, 2)
	m := [][]float64{
		{1, 0, 2},
		{0, 1, 3},
	}
	got, err := v.MatMul(m)
	if err != nil {
		t.Fatal(err)
	}
	assertVec(t, "v @ m", got, 1, 2, 8)

	w := MustVector[float64](1, 2, 3)
	got, err = w.ReverseMatMul(m)
	if err != nil {
		t.Fatal(err)
	}
	assertVec(t, "m @ w", got, 7, 11)

	if _, err := w.MatMul(m); !errors.Is(err, ErrDimension) {
		t.Errorf("row count mismatch err = %v, want ErrDimension", err)
	}
}

func TestMatMulInPlace(t *testing.T) {
	v := MustVector[float64](1, 2)
	rot := Rotation2D(math.Pi / 2).Rows()
	// v @ R for a row vector rotates by -angle.
	square := [][]float64{rot[0][:2], rot[1][:2]}
	if err := v.MatMulInPlace(square); err != nil {
		t.Fatal(err)
	}
	assertVec(t, "v @ R", v, 2, -1)

	if err := v.MatMulInPlace([][]float64{{1, 0, 0}, {0, 1, 0}}); !errors.Is(err, ErrDimension) {
		t.Errorf("non-square err = %v, want ErrDimension", err)
	}
	assertVec(t, "unchanged after error", v, 2, -1)
}

func TestUnaryOperations(t *testing.T) {
	v := MustVector[float64](-1.5, 2.5, 0.5)
	assertVec(t, "Neg", v.Neg(), 1.5, -2.5, -0.5)
	assertVec(t, "Abs", v.Abs(), 1.5, 2.5, 0.5)
	assertVec(t, "Round", v.Round(), -2, 2, 0)

	if v.IsZero() {
		t.Error("IsZero on non-zero vector")
	}
	if !MustVector[float64](0, 0).IsZero() {
		t.Error("IsZero on zero vector")
	}
}
