// Package errors defines the error taxonomy shared by the service layers.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrCartUnavailable is returned when the request has no active cart or session.
	ErrCartUnavailable = errors.New("no active cart for session")

	// ErrConfigOrData is returned when the cart's monetary data cannot be read.
	ErrConfigOrData = errors.New("cart monetary data is malformed or missing")

	// ErrNotFound is returned by repositories when a row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned when a caller fails authentication.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError reports an invalid request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Is wraps errors.Is so callers need only one errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
