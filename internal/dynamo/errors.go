package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state holding NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrUnstable indicates the time step violates the explicit scheme's stability bound.
	ErrUnstable = errors.New("dynamo: time step exceeds stability bound")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrDimensionMismatch indicates per-body arrays of different lengths.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between body arrays")

	// ErrTooFewBodies indicates a body set with fewer than two bodies.
	ErrTooFewBodies = errors.New("dynamo: at least two bodies are required")
)

// SimError wraps an error with the step at which a run failed.
type SimError struct {
	Step    int
	Time    float64
	Message string
	Err     error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

func (e *SimError) Unwrap() error {
	return e.Err
}
