// Package apperr holds the error kinds every layer agrees on. Adapters
// translate store errors into these; the HTTP layer maps them to statuses.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("you do not have permission to perform this action")
	ErrUnauthorized = errors.New("authentication credentials were not provided")
	ErrValidation   = errors.New("validation failed")
	// ErrConflict is a unique constraint hit. Services decide what it means.
	ErrConflict = errors.New("conflict")
)

// ValidationError describes one rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is makes errors.Is(err, ErrValidation) true for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a ValidationError.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFound reports a missing entity, e.g. NotFound("post") -> "post not found".
func NotFound(what string) error {
	return fmt.Errorf("%s %w", what, ErrNotFound)
}
