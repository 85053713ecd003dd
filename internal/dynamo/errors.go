package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrAllocation indicates the position storage could not be obtained.
	ErrAllocation = errors.New("dynamo: cannot allocate configuration")

	// ErrOutput indicates a snapshot or run artifact could not be written.
	ErrOutput = errors.New("dynamo: cannot write output")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownMode indicates an unrecognised potential, rewrap or distance mode.
	ErrUnknownMode = errors.New("dynamo: unknown mode")
)

// OutputError wraps an I/O failure with the artifact it concerns.
type OutputError struct {
	Path    string
	Wrapped error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrOutput, e.Path, e.Wrapped)
}

func (e *OutputError) Unwrap() []error {
	return []error{ErrOutput, e.Wrapped}
}

// Bounds reports a parameter outside its valid range.
func Bounds(name string, value any, want string) error {
	return fmt.Errorf("%w: %s=%v, want %s", ErrParameterBounds, name, value, want)
}
