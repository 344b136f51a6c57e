// Package sketch5 binds creative-coding sketches to [Ebitengine].
//
// It owns the values that cross between sketch code and the engine: a
// generic [Vector] type, packed [Color] values with a pluggable
// [ColorCoercer], wrappers for engine handles ([Image], [Shader], [Font],
// [KeyEvent], [MouseEvent]), and the [Registry] and [Bridge] that convert
// arguments and results at the single call boundary.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window and calls
// your handlers every frame:
//
//	sketch5.Run(nil, sketch5.Handlers{
//		Setup: func(s *sketch5.Sketch) error {
//			_, err := s.Call("background", "#202030")
//			return err
//		},
//		Draw: func(s *sketch5.Sketch) error {
//			x, y := s.Mouse()
//			_, err := s.Call("circle", x, y, 20)
//			return err
//		},
//	})
//
// # Vectors
//
// [Vector] is generic over its precision and has a dimension of 2, 3, or 4
// fixed at construction. Constructors accept scalars, slices, arrays, other
// vectors, and iterators:
//
//	v, err := sketch5.NewVector[float64](1, 2, 3)
//	w, err := sketch5.NewVector[float32]([]float64{1, 2})
//	xy, err := v.Select("xy")
//
// [AliasVector] wraps a caller's buffer without copying, so writes through
// the vector are visible in the buffer and vice versa.
//
// Operations that are only defined for some dimensions (Cross, Rotate,
// RotateAxis) return an error wrapping [ErrDimension] instead of guessing.
//
// # Colors
//
// [Color] is a packed ARGB integer. [ColorCoercer] turns hex strings, CSS
// names, any color.Color, colormap scalars, and packed integers into Colors,
// in that order. Coerce reports ok == false for inputs it does not handle,
// so integers below 0x80000000 can keep their meaning as gray levels.
//
// # Engine calls
//
// [Bridge.Call] looks up an engine function by name, coerces color
// arguments, converts every argument with the [Registry], fits the result
// to the function's parameter types, and converts results back into
// wrappers. Failures inside the engine come back as [*EngineError].
//
// # Scripted input
//
// A [Script] replays clicks, drags, key presses, and scroll steps through
// the input poller and can save frames along the way. Set the config's
// script field to a JSON file to run one from the first frame:
//
//	{"steps": [
//		{"action": "click", "x": 320, "y": 240},
//		{"action": "wait", "frames": 30},
//		{"action": "save", "label": "after-click"},
//		{"action": "exit"}
//	]}
//
// # Noise, data, and threads
//
// [Noise] gives seeded simplex or Perlin noise, seeded from the config's
// random_seed. [LoadJSON], [ParseJSON], and [SaveJSON] read and write
// sketch data. [Sketch.Threads] runs background work such as loading or
// polling; a thread that fails stops the sketch:
//
//	s.Threads().LaunchRepeating("poll", time.Second, func(ctx context.Context) error {
//		return SaveJSON("state.json", state)
//	})
//
// # Logging
//
// sketch5 logs through [log/slog]. Nothing is logged until [SetLogger] is
// called, except that [Run] installs a stderr logger at the configured
// level when none is set.
//
// [Ebitengine]: https://ebitengine.org
package sketch5
