package interpolate

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for substitution.
var (
	// ErrCycleDetected indicates a key was re-entered while it was still being resolved.
	ErrCycleDetected = errors.New("cycle detected")

	// ErrUndefinedVariable indicates a key was absent under MissingError.
	ErrUndefinedVariable = errors.New("undefined variable")
)

// CycleError reports a key that was reached again while being resolved.
type CycleError struct {
	// Key is the key that closed the cycle.
	Key string
	// Chain is the in-flight keys in resolution order, ending with Key.
	Chain []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected resolving %q: %s", e.Key, strings.Join(e.Chain, " -> "))
}

// Unwrap returns ErrCycleDetected for errors.Is support.
func (e *CycleError) Unwrap() error {
	return ErrCycleDetected
}

// UndefinedVariableError is returned under MissingError when one or more
// keys resolve to nothing and carry no default.
type UndefinedVariableError struct {
	// Names lists the missing keys in template order.
	Names []string
}

// Error implements the error interface.
func (e *UndefinedVariableError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("undefined variable: %s", e.Names[0])
	}
	return fmt.Sprintf("undefined variables: %s", strings.Join(e.Names, ", "))
}

// Unwrap returns ErrUndefinedVariable for errors.Is support.
func (e *UndefinedVariableError) Unwrap() error {
	return ErrUndefinedVariable
}
