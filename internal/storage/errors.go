package storage

import "errors"

var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource conflict (e.g., duplicate key)")

	// Unique violations the services report with a dedicated message.
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateDocument = errors.New("document already registered")
)
