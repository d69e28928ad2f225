// Package domain holds errors shared by every admin domain.
package domain

import (
	"errors"
	"fmt"
)

// ErrConflict reports a write that would clash with existing data.
var ErrConflict = errors.New("conflict")

// ValidationError is a user-visible rejection raised before any storage or
// network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Invalid builds a ValidationError.
func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// AsValidation extracts a ValidationError from err.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// Conflict wraps ErrConflict with a user-visible message.
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}
