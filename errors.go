package sketch5

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by this package wraps one of these,
// so callers can test with errors.Is.
var (
	// ErrDimension reports a vector length outside [2, 4] or two operands
	// whose dimensions disagree.
	ErrDimension = errors.New("dimension mismatch")
	// ErrVectorArg reports a constructor argument that cannot become vector data.
	ErrVectorArg = errors.New("invalid vector argument")
	// ErrNegative reports a negative magnitude, squared magnitude, or limit.
	ErrNegative = errors.New("negative value")
	// ErrZeroVector reports an operation that is undefined on the zero vector.
	ErrZeroVector = errors.New("zero vector")
	// ErrSwizzle reports an invalid swizzle name or assignment.
	ErrSwizzle = errors.New("invalid swizzle")
	// ErrVectorOp reports an arithmetic operation not allowed between two vectors.
	ErrVectorOp = errors.New("invalid vector operation")
	// ErrConversion reports a value that cannot cross the engine boundary.
	ErrConversion = errors.New("conversion failed")
	// ErrNoColor reports a value no color strategy could interpret.
	ErrNoColor = errors.New("not a color")
	// ErrUnknownFunction reports a call to a name the bridge does not know.
	ErrUnknownFunction = errors.New("unknown function")
	// ErrSignature reports arguments that do not fit an engine function.
	ErrSignature = errors.New("invalid parameter types")
	// ErrConfig reports an invalid configuration value.
	ErrConfig = errors.New("invalid config")
)

// EngineError is a failure raised inside the native engine during a bridged
// call. The message carries the engine's own text behind a library prefix.
type EngineError struct {
	Func string // bridged function name
	Err  error  // engine error, or the recovered panic value as an error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("sketch5: engine error in %s: %v", e.Func, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// recoveredError converts a recovered panic value into an error.
func recoveredError(r any) error {
	switch v := r.(type) {
	case error:
		return v
	case string:
		return errors.New(v)
	default:
		return fmt.Errorf("%v", v)
	}
}
