package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a unique key is already taken.
	ErrAlreadyExists = errors.New("already exists")
	// ErrConflict indicates the entity changed underneath the caller.
	ErrConflict = errors.New("conflict")

	// ErrOrderNotFound and ErrMenuNotFound name the missing entity and
	// match ErrNotFound.
	ErrOrderNotFound = fmt.Errorf("order %w", ErrNotFound)
	ErrMenuNotFound  = fmt.Errorf("menu %w", ErrNotFound)
)

// ValidationError is a locally detected input problem. It is raised before
// any storage or network call so callers can surface it inline.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid builds a ValidationError for field.
func Invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
