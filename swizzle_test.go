package sketch5

import (
	"errors"
	"strings"
	"testing"
)

func TestSelect(t *testing.T) {
	v := MustVector[float64](1, 2, 3, 4)
	tests := []struct {
		name string
		want []float64
	}{
		{"xy", []float64{1, 2}},
		{"wzyx", []float64{4, 3, 2, 1}},
		{"xxx", []float64{1, 1, 1}},
		{"zw", []float64{3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Select(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			assertVec(t, tt.name, got, tt.want...)
		})
	}

	got, _ := v.Select("xy")
	got.SetX(100)
	if v.X() != 1 {
		t.Error("Select must return a copy")
	}
}

func TestSelect2DRepeats(t *testing.T) {
	v := MustVector[float64](5, 6)
	got, err := v.Select("xyxy")
	if err != nil {
		t.Fatal(err)
	}
	assertVec(t, "xyxy", got, 5, 6, 5, 6)
}

func TestSelectErrors(t *testing.T) {
	v := MustVector[float64](1, 2)
	for _, name := range []string{"x", "xyzwx", "xz", "ab", ""} {
		if _, err := v.Select(name); !errors.Is(err, ErrSwizzle) {
			t.Errorf("Select(%q) err = %v, want ErrSwizzle", name, err)
		}
	}
}

func TestSelectErrorNamesValidComponents(t *testing.T) {
	_, err := MustVector[float64](1, 2).Select("xz")
	if err == nil || !strings.Contains(err.Error(), `"xy"`) {
		t.Errorf("error %v should list the valid components", err)
	}
}

func TestAssign(t *testing.T) {
	v := MustVector[float64](1, 2, 3)

	if err := v.Assign("zx", []float64{30, 10}); err != nil {
		t.Fatal(err)
	}
	assertVec(t, "zx", v, 10, 2, 30)

	if err := v.Assign("xy", 0); err != nil {
		t.Fatal(err)
	}
	assertVec(t, "broadcast scalar", v, 0, 0, 30)

	if err := v.Assign("yz", []int{7}); err != nil {
		t.Fatal(err)
	}
	assertVec(t, "broadcast length-1", v, 0, 7, 7)

	if err := v.Assign("xyz", MustVector[float32](4, 5, 6)); err != nil {
		t.Fatal(err)
	}
	assertVec(t, "from vector", v, 4, 5, 6)

	if err := v.Assign("y", 9); err != nil {
		t.Fatal(err)
	}
	assertVec(t, "single component", v, 4, 9, 6)
}

func TestAssignErrorsLeaveVector(t *testing.T) {
	v := MustVector[float64](1, 2, 3)
	tests := []struct {
		name  string
		value any
	}{
		{"xx", []float64{1, 2}},
		{"xw", []float64{1, 2}},
		{"xy", []float64{1, 2, 3}},
		{"xy", "nope"},
		{"", 1},
	}
	for _, tt := range tests {
		if err := v.Assign(tt.name, tt.value); !errors.Is(err, ErrSwizzle) {
			t.Errorf("Assign(%q, %v) err = %v, want ErrSwizzle", tt.name, tt.value, err)
		}
	}
	assertVec(t, "unchanged", v, 1, 2, 3)
}

func TestSwizzleIdentities(t *testing.T) {
	tests := []struct {
		name  string
		v     *Vector[float64]
		ident string
		perm  string
	}{
		{"2D", MustVector[float64](1, 2), "xy", "yx"},
		{"3D", MustVector[float64](1, 2, 3), "xyz", "zyx"},
		{"4D", MustVector[float64](1, 2, 3, 4), "xyzw", "wzyx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			same, err := tt.v.Select(tt.ident)
			if err != nil {
				t.Fatal(err)
			}
			if !same.Equal(tt.v) {
				t.Errorf("Select(%q) = %v, want %v", tt.ident, same, tt.v)
			}

			want := tt.v.Copy()
			perm, err := tt.v.Select(tt.perm)
			if err != nil {
				t.Fatal(err)
			}
			if err := tt.v.Assign(tt.perm, perm); err != nil {
				t.Fatal(err)
			}
			if !tt.v.Equal(want) {
				t.Errorf("Assign(%q, Select(%q)) changed the vector to %v, want %v", tt.perm, tt.perm, tt.v, want)
			}
		})
	}
}
