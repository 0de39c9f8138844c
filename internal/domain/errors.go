// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidURL is returned when a URL field is not a well-formed
	// http or https URL.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrUnauthorized is returned when an operation requires an
	// authenticated caller and none is present.
	ErrUnauthorized = errors.New("unauthorized operation")

	// ErrForbidden is returned when an authenticated caller attempts to
	// mutate a resource they do not own.
	ErrForbidden = errors.New("forbidden operation")
)

// ValidationError carries the field that failed validation alongside the
// underlying sentinel, so handlers can produce a precise message while
// callers still match with errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s %s", e.Field, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped sentinel to support errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}
