package sketch5

import (
	"errors"
	"math"
	"slices"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got *Vector[float64], want ...float64) {
	t.Helper()
	if got == nil {
		t.Fatalf("%s = nil, want %v", name, want)
	}
	if got.Dim() != len(want) {
		t.Fatalf("%s has dim %d, want %d (%v)", name, got.Dim(), len(want), got)
	}
	for i, w := range want {
		if math.Abs(got.At(i)-w) > 1e-6 {
			t.Errorf("%s = %v, want %v", name, got.ToList(), want)
			return
		}
	}
}

func assertErrIs(t *testing.T, name string, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("%s: err = %v, want %v", name, err, target)
	}
}

// --- Construction ---

func TestNewVectorNoArgsIs3DZero(t *testing.T) {
	v, err := NewVector[float64]()
	if err != nil {
		t.Fatal(err)
	}
	assertVec(t, "zero", v, 0, 0, 0)
}

func TestNewVectorForms(t *testing.T) {
	v2 := MustVector[float64](1, 2)
	tests := []struct {
		name string
		args []any
		want []float64
	}{
		{"scalars", []any{1, 2.5, float32(3)}, []float64{1, 2.5, 3}},
		{"float64 slice", []any{[]float64{4, 5}}, []float64{4, 5}},
		{"int array", []any{[4]int{1, 2, 3, 4}}, []float64{1, 2, 3, 4}},
		{"vector", []any{v2}, []float64{1, 2}},
		{"vector and scalar", []any{v2, 7}, []float64{1, 2, 7}},
		{"slice and scalar", []any{[]float32{1, 2}, 3, 4}, []float64{1, 2, 3, 4}},
		{"float32 vector", []any{MustVector[float32](1, 2, 3)}, []float64{1, 2, 3}},
		{"iterator", []any{slices.Values([]float64{9, 8, 7})}, []float64{9, 8, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewVector[float64](tt.args...)
			if err != nil {
				t.Fatalf("NewVector(%v): %v", tt.args, err)
			}
			assertVec(t, tt.name, v, tt.want...)
		})
	}
}

func TestNewVectorErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []any
		target error
	}{
		{"single scalar", []any{1}, ErrDimension},
		{"too long", []any{[]float64{1, 2, 3, 4, 5}}, ErrDimension},
		{"too short", []any{[]float64{1}}, ErrDimension},
		{"five args", []any{1, 2, 3, 4, 5}, ErrDimension},
		{"flattens to five", []any{[]float64{1, 2, 3}, 4, 5}, ErrDimension},
		{"string", []any{"ab", 1}, ErrVectorArg},
		{"bad sequence", []any{[]string{"a", "b"}}, ErrVectorArg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewVector[float64](tt.args...)
			assertErrIs(t, tt.name, err, tt.target)
		})
	}
}

func TestNewVectorDimHint(t *testing.T) {
	v, err := NewVectorDim[float64](4)
	if err != nil {
		t.Fatal(err)
	}
	assertVec(t, "4D zero", v, 0, 0, 0, 0)

	if _, err := NewVector2D[float64](1, 2, 3); !errors.Is(err, ErrDimension) {
		t.Errorf("dim conflict err = %v, want ErrDimension", err)
	}
	if _, err := NewVectorDim[float64](5); !errors.Is(err, ErrDimension) {
		t.Errorf("dim 5 err = %v, want ErrDimension", err)
	}
	v3, err := NewVector3D[float32](1, 2, 3)
	if err != nil || v3.Dim() != 3 {
		t.Errorf("NewVector3D = %v, %v", v3, err)
	}
}

func TestAliasVectorSharesBuffer(t *testing.T) {
	buf := []float64{1, 2, 3}
	v, err := AliasVector(buf)
	if err != nil {
		t.Fatal(err)
	}
	v.SetX(10)
	if buf[0] != 10 {
		t.Errorf("buf[0] = %v after SetX, want 10", buf[0])
	}
	buf[2] = 30
	if v.Z() != 30 {
		t.Errorf("Z = %v after buffer write, want 30", v.Z())
	}
	if err := v.ApplyInPlace(OpMul, 2); err != nil {
		t.Fatal(err)
	}
	if buf[1] != 4 {
		t.Errorf("buf[1] = %v after in-place multiply, want 4", buf[1])
	}
}

func TestAliasVectorErrors(t *testing.T) {
	if _, err := NewVectorWith[float32](VectorOptions{NoCopy: true}, []float64{1, 2}); !errors.Is(err, ErrVectorArg) {
		t.Errorf("precision mismatch err = %v, want ErrVectorArg", err)
	}
	if _, err := NewVectorWith[float64](VectorOptions{NoCopy: true}, []int{1, 2}); !errors.Is(err, ErrVectorArg) {
		t.Errorf("int buffer err = %v, want ErrVectorArg", err)
	}
	if _, err := NewVectorWith[float64](VectorOptions{NoCopy: true}, 1.0, 2.0); !errors.Is(err, ErrVectorArg) {
		t.Errorf("scalars err = %v, want ErrVectorArg", err)
	}
	if _, err := AliasVector([]float64{1}); !errors.Is(err, ErrDimension) {
		t.Errorf("short buffer err = %v, want ErrDimension", err)
	}
	if _, err := NewVectorWith[float64](VectorOptions{NoCopy: true, Dim: 2}, []float64{1, 2, 3}); !errors.Is(err, ErrDimension) {
		t.Errorf("dim conflict err = %v, want ErrDimension", err)
	}
}

func TestNewVectorCopiesInput(t *testing.T) {
	buf := []float64{1, 2}
	v, _ := NewVector[float64](buf)
	buf[0] = 99
	if v.X() != 1 {
		t.Errorf("X = %v, want 1 (input must be copied)", v.X())
	}
}

func TestMustVectorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustVector[float64](1)
}

// --- Accessors ---

func TestVectorAccessors(t *testing.T) {
	v := MustVector[float64](1, 2, 3, 4)
	if v.X() != 1 || v.Y() != 2 || v.Z() != 3 || v.W() != 4 {
		t.Errorf("components = %v", v.ToList())
	}
	v.SetW(8)
	v.Set(1, 5)
	assertVec(t, "after set", v, 1, 5, 3, 8)

	s := v.Slice()
	s[0] = 100
	if v.X() != 1 {
		t.Error("Slice must return a copy")
	}
	d := v.Data()
	d[0] = 100
	if v.X() != 100 {
		t.Error("Data must return the backing slice")
	}

	c := v.Copy()
	c.SetX(0)
	if v.X() != 100 {
		t.Error("Copy must be independent")
	}
}

func TestVectorString(t *testing.T) {
	if got := MustVector[float64](1, 2.5, -3).String(); got != "Vector3D(1, 2.5, -3)" {
		t.Errorf("String = %q", got)
	}
	if got := MustVector[float32](0.1, 2).String(); got != "Vector2D(0.1, 2)" {
		t.Errorf("float32 String = %q", got)
	}
}

func TestConvertVector(t *testing.T) {
	v := MustVector[float64](1.5, 2.5)
	f := ConvertVector[float32](v)
	if f.Dim() != 2 || f.X() != 1.5 || f.Y() != 2.5 {
		t.Errorf("ConvertVector = %v", f)
	}
}

func TestVectorEquality(t *testing.T) {
	a := MustVector[float64](1, 2, 3)
	if !a.Equal(MustVector[float64](1, 2, 3)) {
		t.Error("equal vectors compare unequal")
	}
	if a.Equal(MustVector[float64](1, 2)) {
		t.Error("different dims compare equal")
	}
	if a.Equal(nil) {
		t.Error("nil compares equal")
	}
	if !a.ApproxEqual(MustVector[float64](1, 2, 3+1e-10), 1e-9) {
		t.Error("ApproxEqual within tolerance failed")
	}
	if a.ApproxEqual(MustVector[float64](1, 2, 3.1), 1e-9) {
		t.Error("ApproxEqual outside tolerance passed")
	}
}

func TestToListRoundTrip(t *testing.T) {
	for _, vals := range [][]float64{{1.5, -2}, {0.25, 3, -7}, {1, 2, 3, 4.125}} {
		v64 := MustVector[float64](vals)
		back64, err := NewVector[float64](v64.ToList())
		if err != nil {
			t.Fatal(err)
		}
		if !back64.Equal(v64) {
			t.Errorf("float64 %dD: NewVector(ToList()) = %v, want %v", v64.Dim(), back64, v64)
		}

		v32 := MustVector[float32](vals)
		back32, err := NewVector[float32](v32.ToList())
		if err != nil {
			t.Fatal(err)
		}
		if !back32.Equal(v32) {
			t.Errorf("float32 %dD: NewVector(ToList()) = %v, want %v", v32.Dim(), back32, v32)
		}
		if !slices.Equal(back32.ToList(), vals) {
			t.Errorf("float32 %dD: ToList() = %v, want %v", v32.Dim(), back32.ToList(), vals)
		}
	}
}
