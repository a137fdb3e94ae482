package services

import (
	"errors"
	"fmt"
)

// Define common service errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict") // e.g., duplicate application, state conflict
	ErrValidation         = errors.New("validation failed")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidState       = errors.New("invalid state for operation")
	ErrInvalidTransition  = errors.New("invalid state transition")

	// Refinements that still match their parent with errors.Is.
	ErrQuotaExceeded     = fmt.Errorf("%w: active job limit reached", ErrForbidden)
	ErrDuplicateEmail    = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrDuplicateDocument = fmt.Errorf("%w: document already registered", ErrConflict)
)

// FieldError is a validation failure attached to a single input field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error { return ErrValidation }

func fieldError(field, message string) error {
	return &FieldError{Field: field, Message: message}
}
