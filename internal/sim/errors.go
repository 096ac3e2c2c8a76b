package sim

import (
	"errors"
	"fmt"
)

// Domain errors shared by the simulation engines.
var (
	// ErrInvalidParameter indicates a non-positive size, a negative or non-finite
	// delta time, or an option outside its valid range.
	ErrInvalidParameter = errors.New("sim: invalid parameter")

	// ErrRangeOverflow indicates an intensity outside [0,1] reached the quantizer.
	// It is reported, never fatal: the offending values are clamped.
	ErrRangeOverflow = errors.New("sim: value outside quantization range")
)

// TickError wraps a failure of a single tick with its position in the run.
type TickError struct {
	Tick    int
	Time    float64
	Wrapped error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d (t=%.4f): %v", e.Tick, e.Time, e.Wrapped)
}

func (e *TickError) Unwrap() error {
	return e.Wrapped
}

// InvalidParameter returns an error wrapping ErrInvalidParameter.
func InvalidParameter(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidParameter)
}
