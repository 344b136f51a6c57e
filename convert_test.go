package sketch5

import (
	"errors"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sketch5/engine"
)

func TestDefaultRegistryOutbound(t *testing.T) {
	r := NewDefaultRegistry()

	v2 := MustVector[float64](1, 2)
	got, err := r.ToNative(v2)
	if err != nil {
		t.Fatal(err)
	}
	if got != (mgl64.Vec3{1, 2, 0}) {
		t.Errorf("2D vector -> %v", got)
	}

	v3 := MustVector[float32](1, 2, 3)
	got, _ = r.ToNative(v3)
	if got != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("3D float32 vector -> %v", got)
	}

	got, _ = r.ToNative(MustVector[float64](1, 2, 3, 4))
	if s, ok := got.([]float64); !ok || !slices.Equal(s, []float64{1, 2, 3, 4}) {
		t.Errorf("4D vector -> %#v", got)
	}

	got, _ = r.ToNative(Translation2D(3, 4))
	g, ok := got.(ebiten.GeoM)
	if !ok || g.Element(0, 2) != 3 || g.Element(1, 2) != 4 {
		t.Errorf("Matrix2D -> %#v", got)
	}

	got, _ = r.ToNative(IdentityMatrix3D())
	if got != mgl64.Ident4() {
		t.Errorf("Matrix3D -> %#v", got)
	}

	got, _ = r.ToNative([][]float64{{2, 0, 0}, {0, 2, 0}})
	if _, ok := got.(ebiten.GeoM); !ok {
		t.Errorf("2x3 rows -> %T", got)
	}

	got, _ = r.ToNative(Path("out/frame.png"))
	if got != "out/frame.png" {
		t.Errorf("Path -> %#v", got)
	}

	// Unmatched values pass through.
	got, err = r.ToNative(42)
	if err != nil || got != 42 {
		t.Errorf("int -> %v, %v", got, err)
	}
}

func TestDefaultRegistryOutboundErrors(t *testing.T) {
	r := NewDefaultRegistry()
	if _, err := r.ToNative([][]float64{{1, 2}, {3, 4}}); !errors.Is(err, ErrConversion) {
		t.Errorf("2x2 rows err = %v, want ErrConversion", err)
	}
}

func TestDefaultRegistryInbound(t *testing.T) {
	r := NewDefaultRegistry()

	if v, ok := r.FromNative(mgl64.Vec3{1, 2, 3}).(*Vector[float64]); !ok {
		t.Errorf("Vec3 -> %T", r.FromNative(mgl64.Vec3{}))
	} else {
		assertVec(t, "Vec3", v, 1, 2, 3)
	}
	if v, ok := r.FromNative(mgl64.Vec2{5, 6}).(*Vector[float64]); ok {
		assertVec(t, "Vec2", v, 5, 6)
	} else {
		t.Error("Vec2 not converted")
	}

	var g ebiten.GeoM
	g.Scale(2, 3)
	if m, ok := r.FromNative(g).(Matrix2D); !ok || m != Scaling2D(2, 3) {
		t.Errorf("GeoM -> %#v", r.FromNative(g))
	}
	if m, ok := r.FromNative(mgl64.Ident4()).(Matrix3D); !ok || m != IdentityMatrix3D() {
		t.Errorf("Mat4 -> %#v", r.FromNative(mgl64.Ident4()))
	}

	if _, ok := r.FromNative(engine.KeyEvent{Action: engine.KeyPressed}).(*KeyEvent); !ok {
		t.Error("engine.KeyEvent not wrapped")
	}
	if _, ok := r.FromNative(engine.MouseEvent{Action: engine.MouseMoved}).(*MouseEvent); !ok {
		t.Error("engine.MouseEvent not wrapped")
	}

	if got := r.FromNative("plain"); got != "plain" {
		t.Errorf("string -> %v", got)
	}

	all := r.FromNativeAll([]any{mgl64.Vec2{1, 1}, 7})
	if _, ok := all[0].(*Vector[float64]); !ok || all[1] != 7 {
		t.Errorf("FromNativeAll = %#v", all)
	}
}

func TestWrapperRoundTrip(t *testing.T) {
	r := NewDefaultRegistry()
	native := engine.MouseEvent{Action: engine.MousePressed, X: 3}
	wrapped := r.FromNative(native)
	back, err := r.ToNative(wrapped)
	if err != nil {
		t.Fatal(err)
	}
	if back != native {
		t.Errorf("round trip = %#v, want %#v", back, native)
	}
}

func TestRegistrySealed(t *testing.T) {
	r := NewDefaultRegistry()
	err := RegisterInbound(r, func(b bool) any { return b })
	if !errors.Is(err, ErrConfig) {
		t.Errorf("register on sealed registry err = %v, want ErrConfig", err)
	}
}

func TestRegistryFirstMatchWins(t *testing.T) {
	r := NewRegistry()
	if err := RegisterOutbound(r, func(n int) (any, error) { return "first", nil }); err != nil {
		t.Fatal(err)
	}
	if err := RegisterOutbound(r, func(n int) (any, error) { return "second", nil }); err != nil {
		t.Fatal(err)
	}
	if err := RegisterOutbound(r, func(s string) (any, error) { return nil, ErrConversion }); err != nil {
		t.Fatal(err)
	}

	if got, _ := r.ToNative(1); got != "first" {
		t.Errorf("ToNative(1) = %v, want first", got)
	}
	if _, err := r.ToNative("x"); !errors.Is(err, ErrConversion) {
		t.Errorf("rule error not propagated: %v", err)
	}
	if got := r.OutboundTypes(); !slices.Equal(got, []string{"int", "int", "string"}) {
		t.Errorf("OutboundTypes = %v", got)
	}
	if len(r.InboundTypes()) != 0 {
		t.Errorf("InboundTypes = %v", r.InboundTypes())
	}
}
