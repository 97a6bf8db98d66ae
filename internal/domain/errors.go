package domain

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is deliberately generic: login and recovery failures all
// collapse to it so a caller cannot tell an unknown email from a bad, expired
// or superseded token.
var ErrUnauthorized = errors.New("unauthorized")

// NotFoundError reports an absent entity by name ("course", "student", ...).
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

func NotFound(entity string) error { return &NotFoundError{Entity: entity} }

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ConflictError reports a uniqueness or active-state violation.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func Conflict(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// ValidationError reports malformed input rejected before touching storage.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
