// Package typing implements the typing practice engine: text comparison,
// results, durations, the session state machine, and live feedback.
package typing

import (
	"errors"
	"fmt"
)

// Illegal-state errors indicate a caller protocol violation; they are never
// retryable.
var (
	// ErrSessionCompleted is returned when completing a session twice.
	ErrSessionCompleted = errors.New("session already completed")
	// ErrSessionActive is returned when reading a result before completion.
	ErrSessionActive = errors.New("session still active")
)

// ValidationError reports an argument that violates an engine invariant.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
