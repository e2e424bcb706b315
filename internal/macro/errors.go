package macro

import (
	"errors"
	"fmt"
)

// Errors returned by the macro engine.
var (
	// ErrUnknownKey indicates a key name with no mapping.
	ErrUnknownKey = errors.New("unknown key")

	// ErrUnknownAction indicates an action definition of an unrecognized kind.
	ErrUnknownAction = errors.New("unknown action kind")

	// ErrExecutionAborted indicates an action was cut short by shutdown.
	ErrExecutionAborted = errors.New("execution aborted")

	// ErrQueueFull indicates a trigger's execution lane could not accept
	// another queued firing.
	ErrQueueFull = errors.New("execution queue full")
)

// InjectionError wraps a refused OS injection call.
type InjectionError struct {
	// Op is the primitive that failed: "press", "release", or "type".
	Op string

	// Key is the key name or character involved.
	Key string

	// Err is the underlying error from the injection capability.
	Err error
}

// Error implements the error interface.
func (e *InjectionError) Error() string {
	return fmt.Sprintf("injection %s %q: %v", e.Op, e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *InjectionError) Unwrap() error {
	return e.Err
}
