package sketch5

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"reflect"
	"slices"
	"strings"
)

// SignatureError reports arguments that fit none of an engine function's
// signatures.
type SignatureError struct {
	Func       string
	Passed     []string // argument types after conversion
	Signatures []string
}

func (e *SignatureError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "sketch5: the parameter types (%s) are invalid for %s.\n", strings.Join(e.Passed, ", "), e.Func)
	if len(e.Signatures) == 1 {
		b.WriteString("Your parameters must match the following signature:\n")
	} else {
		b.WriteString("Your parameters must match one of the following signatures:\n")
	}
	for i, s := range e.Signatures {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(" * " + s)
	}
	return b.String()
}

// Is makes errors.Is(err, ErrSignature) true.
func (e *SignatureError) Is(target error) bool { return target == ErrSignature }

var (
	errorType = reflect.TypeFor[error]()
	colorType = reflect.TypeFor[color.Color]()
)

type overload struct {
	fn        reflect.Value
	colorArgs []int
}

func (o *overload) signature(name string) string {
	t := o.fn.Type()
	params := make([]string, t.NumIn())
	for i := range params {
		if t.IsVariadic() && i == t.NumIn()-1 {
			params[i] = "..." + t.In(i).Elem().String()
		} else {
			params[i] = t.In(i).String()
		}
	}
	return name + "(" + strings.Join(params, ", ") + ")"
}

func (o *overload) isColorArg(i int) bool {
	t := o.fn.Type()
	if t.IsVariadic() && i >= t.NumIn()-1 && slices.Contains(o.colorArgs, t.NumIn()-1) {
		return true
	}
	return slices.Contains(o.colorArgs, i)
}

// paramType returns the type argument i binds to, or nil when there is no
// such parameter.
func (o *overload) paramType(i int) reflect.Type {
	t := o.fn.Type()
	switch {
	case t.IsVariadic() && i >= t.NumIn()-1:
		return t.In(t.NumIn() - 1).Elem()
	case i < t.NumIn():
		return t.In(i)
	}
	return nil
}

func (o *overload) accepts(n int) bool {
	t := o.fn.Type()
	if t.IsVariadic() {
		return n >= t.NumIn()-1
	}
	return n == t.NumIn()
}

// FuncOption configures a registered engine function.
type FuncOption func(*overload)

// ColorArgs marks the parameters at the given indices as colors. Arguments
// in those positions go through the bridge's ColorCoercer first; values it
// does not recognize are passed on unchanged. For a variadic function, the
// index of the last parameter covers every variadic argument.
func ColorArgs(indices ...int) FuncOption {
	return func(o *overload) { o.colorArgs = append(o.colorArgs, indices...) }
}

// Bridge is the single entry point for calls into the engine. Each call
// converts its arguments to engine representations, fits them to one of the
// function's registered signatures, invokes it, and converts the results
// back.
type Bridge struct {
	reg   *Registry
	cc    *ColorCoercer
	funcs map[string][]*overload
}

// NewBridge returns a bridge with no functions. reg and cc must not be nil.
func NewBridge(reg *Registry, cc *ColorCoercer) *Bridge {
	return &Bridge{reg: reg, cc: cc, funcs: make(map[string][]*overload)}
}

// Register adds fn as an overload of name. Overloads are tried in
// registration order. fn may return a trailing error, which the bridge
// reports as an *EngineError.
func (b *Bridge) Register(name string, fn any, opts ...FuncOption) error {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return fmt.Errorf("sketch5: engine function %q must be a func, got %T: %w", name, fn, ErrConfig)
	}
	o := &overload{fn: v}
	for _, opt := range opts {
		opt(o)
	}
	for _, i := range o.colorArgs {
		if i < 0 || i >= v.Type().NumIn() {
			return fmt.Errorf("sketch5: color argument %d out of range for %s: %w", i, o.signature(name), ErrConfig)
		}
	}
	b.funcs[name] = append(b.funcs[name], o)
	Logger().Debug("engine function registered", "name", name, "signature", o.signature(name))
	return nil
}

// Names returns the registered function names, sorted.
func (b *Bridge) Names() []string {
	names := make([]string, 0, len(b.funcs))
	for n := range b.funcs {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Call invokes the engine function name. The result is nil for functions
// without results, the converted value for one result, and a []any of
// converted values for several. A trailing error result is not included.
func (b *Bridge) Call(name string, args ...any) (result any, err error) {
	overloads, ok := b.funcs[name]
	if !ok {
		return nil, fmt.Errorf("sketch5: %s: %w", unknownNameMsg("engine function", name, b.Names()), ErrUnknownFunction)
	}

	var in []reflect.Value
	var chosen *overload
	for _, o := range overloads {
		in, err = b.fit(o, args)
		if err != nil {
			return nil, err
		}
		if in != nil {
			chosen = o
			break
		}
	}
	if chosen == nil {
		return nil, b.signatureError(name, overloads, args)
	}

	defer func() {
		if r := recover(); r != nil {
			err = &EngineError{Func: name, Err: recoveredError(r)}
			result = nil
			Logger().Warn("engine call panicked", "func", name, "error", err)
		}
	}()
	out := chosen.fn.Call(in)
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if e, _ := out[n-1].Interface().(error); e != nil {
			Logger().Warn("engine call failed", "func", name, "error", e)
			return nil, &EngineError{Func: name, Err: e}
		}
		out = out[:n-1]
	}

	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return b.reg.FromNative(out[0].Interface()), nil
	}
	vals := make([]any, len(out))
	for i, v := range out {
		vals[i] = v.Interface()
	}
	return b.reg.FromNativeAll(vals), nil
}

// fit converts args for o. It returns nil values and a nil error when the
// arguments do not fit, and an error only when an outbound conversion
// itself fails.
func (b *Bridge) fit(o *overload, args []any) ([]reflect.Value, error) {
	if !o.accepts(len(args)) {
		return nil, nil
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		native, err := b.prepare(o.isColorArg(i), a)
		if err != nil {
			return nil, err
		}
		v, ok := box(native, o.paramType(i))
		if !ok {
			return nil, nil
		}
		in[i] = v
	}
	return in, nil
}

func (b *Bridge) prepare(isColor bool, a any) (any, error) {
	if isColor {
		if c, ok := b.cc.Coerce(a); ok {
			a = c
		}
	}
	native, err := b.reg.ToNative(a)
	if err != nil {
		return nil, fmt.Errorf("sketch5: argument %v: %w", a, err)
	}
	return native, nil
}

func (b *Bridge) signatureError(name string, overloads []*overload, args []any) error {
	e := &SignatureError{Func: name}
	for _, a := range args {
		native, err := b.prepare(false, a)
		if err != nil {
			native = a
		}
		e.Passed = append(e.Passed, typeName(native))
	}
	for _, o := range overloads {
		e.Signatures = append(e.Signatures, o.signature(name))
	}
	Logger().Debug("engine call rejected", "func", name, "passed", e.Passed)
	return e
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// box converts v to a value of type t. Numbers convert between kinds when
// no information is lost in the integer direction; floats narrow to
// float32. Colors fit color.Color, uint32, and int32 parameters.
func box(v any, t reflect.Type) (reflect.Value, bool) {
	if v == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return reflect.Zero(t), true
		}
		return reflect.Value{}, false
	}
	if c, ok := v.(Color); ok {
		switch {
		case t == colorType:
			return reflect.ValueOf(color.Color(c)), true
		case t.Kind() == reflect.Uint32:
			return reflect.ValueOf(uint32(c)).Convert(t), true
		case t.Kind() == reflect.Int32:
			return reflect.ValueOf(c.Int32()).Convert(t), true
		}
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, true
	}
	switch k := t.Kind(); {
	case isFloatKind(k):
		switch {
		case isFloatKind(rv.Kind()):
			return rv.Convert(t), true
		case isIntKind(rv.Kind()) || isUintKind(rv.Kind()):
			return rv.Convert(t), true
		}
	case isIntKind(k):
		switch {
		case isIntKind(rv.Kind()):
			if n := rv.Int(); !t.OverflowInt(n) {
				return reflect.ValueOf(n).Convert(t), true
			}
		case isUintKind(rv.Kind()):
			if n := rv.Uint(); n <= math.MaxInt64 && !t.OverflowInt(int64(n)) {
				return reflect.ValueOf(int64(n)).Convert(t), true
			}
		}
	case isUintKind(k):
		switch {
		case isUintKind(rv.Kind()):
			if n := rv.Uint(); !t.OverflowUint(n) {
				return reflect.ValueOf(n).Convert(t), true
			}
		case isIntKind(rv.Kind()):
			if n := rv.Int(); n >= 0 && !t.OverflowUint(uint64(n)) {
				return reflect.ValueOf(uint64(n)).Convert(t), true
			}
		}
	case k == reflect.String:
		if rv.Kind() == reflect.String {
			return rv.Convert(t), true
		}
	case k == reflect.Slice && t.Elem().Kind() == reflect.Float32:
		if f, ok := v.([]float64); ok {
			return reflect.ValueOf(toFloat32s(f)).Convert(t), true
		}
	}
	return reflect.Value{}, false
}

func isFloatKind(k reflect.Kind) bool { return k == reflect.Float32 || k == reflect.Float64 }

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUintKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// IsEngineError reports whether err came from inside the engine.
func IsEngineError(err error) bool {
	var e *EngineError
	return errors.As(err, &e)
}
