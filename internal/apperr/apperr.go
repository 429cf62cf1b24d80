// Package apperr classifies the errors the data layer hands back to its
// callers. The core never formats user-facing messages; handlers (or any
// other collaborator) decide how a classified error is surfaced.
package apperr

import (
	"errors"
	"fmt"

	"atelierledger/internal/validation"
)

var (
	// ErrNotFound signals an operation targeting a non-existent id.
	ErrNotFound = errors.New("record not found")

	// ErrTerminalState signals a status change requested on a sale that
	// already reached its terminal state.
	ErrTerminalState = errors.New("sale already delivered")
)

// ValidationError carries the specific violated constraints. It is always
// detected before any write.
type ValidationError struct {
	Violations validation.Violations
}

func NewValidation(v validation.Violations) *ValidationError {
	return &ValidationError{Violations: v}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%d violation(s))", len(e.Violations))
}

// PersistenceError wraps a storage failure that happened after validation
// passed. For multi-row writes the transaction has already rolled back by
// the time this is returned.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *PersistenceError) Unwrap() error { return e.Err }
