package inventory

import (
	"errors"
	"fmt"
)

// ValidationErrorCode categorizes construction-time validation failures.
type ValidationErrorCode string

const (
	// ErrCodeEmptyName indicates an item was constructed with a blank name.
	ErrCodeEmptyName ValidationErrorCode = "EMPTY_NAME"
)

// ValidationError reports an item that could not be constructed.
//
// It is only ever returned by constructors. AdvanceOneDay has no error path.
type ValidationError struct {
	Code    ValidationErrorCode
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(code ValidationErrorCode, field, message string) *ValidationError {
	return &ValidationError{Code: code, Field: field, Message: message}
}

// IsValidationError reports whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
