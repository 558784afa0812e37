// Package common defines shared constants and sentinel errors used across
// the adboard services and presentation layers. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")

	// Validation errors (empty required field, malformed price).
	ErrorValidation = errors.New("validation error")

	// Conflict errors (email already registered).
	ErrorAlreadyExists = errors.New("already exists")

	// Authorization errors (operation needs a signed-in user).
	ErrorUnauthorized = errors.New("unauthorized")

	// Authentication errors. Never says which credential was wrong.
	ErrorInvalidCredentials = errors.New("invalid email or password")
)

// FieldError reports which form field failed validation. It unwraps to
// ErrorValidation.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return "field " + e.Field + " is required"
}

func (e *FieldError) Unwrap() error {
	return ErrorValidation
}

// NewFieldError returns a validation error for the named field.
func NewFieldError(field string) error {
	return &FieldError{Field: field}
}

// IsDomainError reports whether err is one of the user-facing failures
// (validation, conflict, authorization, authentication) rather than an
// infrastructure error.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrorValidation) ||
		errors.Is(err, ErrorAlreadyExists) ||
		errors.Is(err, ErrorUnauthorized) ||
		errors.Is(err, ErrorInvalidCredentials)
}
