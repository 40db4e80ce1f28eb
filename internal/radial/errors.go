package radial

import (
	"errors"
	"fmt"
)

// Domain errors for solver construction.
var (
	// ErrInvalidParams indicates a parameter set that cannot build a grid.
	ErrInvalidParams = errors.New("radial: invalid parameters")

	// ErrUnstable indicates dt is too large for the grid spacing.
	ErrUnstable = errors.New("radial: explicit scheme unstable")
)

// ParamError names the offending parameter.
type ParamError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParams
}
