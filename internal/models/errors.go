package models

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	// ErrValidation marks malformed or inconsistent input.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a referenced user, group or expense that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks an actor that is not allowed to act on a group.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthenticated marks a call without a resolvable acting user.
	ErrUnauthenticated = errors.New("authentication required")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NotFound returns an error wrapping ErrNotFound for the given kind and ID.
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}

// Forbidden returns an error wrapping ErrForbidden.
func Forbidden(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrForbidden)
}
