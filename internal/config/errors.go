package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration loading.
var (
	// ErrNotFound indicates no configuration document could be located.
	ErrNotFound = errors.New("config file not found")

	// ErrMissingTrigger indicates a binding with neither key nor button.
	ErrMissingTrigger = errors.New("binding has no key or button")

	// ErrAmbiguousTrigger indicates a binding with both key and button.
	ErrAmbiguousTrigger = errors.New("binding has both key and button")

	// ErrReservedTrigger indicates a binding on the global toggle identity.
	ErrReservedTrigger = errors.New("trigger is reserved for the global toggle")

	// ErrUnknownAction indicates an unrecognized action kind.
	ErrUnknownAction = errors.New("unknown action")

	// ErrInvalidDelay indicates a malformed delay specification, including
	// ranges with min > max.
	ErrInvalidDelay = errors.New("invalid delay")
)

// ValidationError describes one rejected binding or step. Rejections are
// per-binding: the loader reports the error and continues with the rest of
// the document.
type ValidationError struct {
	// Index is the binding's position in the document, starting at 0.
	Index int

	// Trigger is the binding's trigger spelling, when one was given.
	Trigger string

	// Field names the offending field, e.g. "delay" or "steps[2].key".
	Field string

	// Message describes the problem.
	Message string

	// Err is the underlying sentinel, if any.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	where := fmt.Sprintf("hotkeys[%d]", e.Index)
	if e.Trigger != "" {
		where += " (" + e.Trigger + ")"
	}
	if e.Field != "" {
		where += "." + e.Field
	}
	return fmt.Sprintf("%s: %s", where, e.Message)
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
