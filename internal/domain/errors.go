package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrJobNotFound is a sentinel error returned when a listing does not exist.
var ErrJobNotFound = errors.New("job not found")

// ErrEmailMismatch is returned when ownership verification fails. The
// message is deliberately generic so the stored email is never leaked.
var ErrEmailMismatch = errors.New("email verification failed")

// ValidationError reports which required listing fields were missing or
// empty on create.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s are required", strings.Join(e.Fields, ", "))
}

// NewValidationError builds a ValidationError for the given field names.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}
