package store

import (
	"errors"
	"fmt"
)

// Common store errors.
var (
	// ErrNotFound is returned when an operation references an id with no
	// matching record. The operation is a no-op.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidCredentials is returned on login failure. It never reveals
	// whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationError reports a rejected input. No mutation has occurred when one
// is returned.
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

// NewValidationError builds a validation failure for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PersistenceError signals that the durable write failed after the in-memory
// document was mutated. The document remains valid and usable; callers should
// warn the user and carry on.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist document: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistence reports whether err is a degraded-durability failure.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
