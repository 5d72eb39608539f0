// Package errors provides structured error types and error handling utilities.
package errors

import (
	"errors"
	"fmt"
)

// Wrap creates a new error by wrapping an existing error with additional context.
// This uses fmt.Errorf with %w verb for proper error chain support.
func Wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// New creates a new error using fmt.Errorf.
func New(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Error kinds. Every constructor below wraps one of these so callers can
// branch with Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrSecurity      = errors.New("security error")
	ErrConfiguration = errors.New("configuration error")
	ErrExecution     = errors.New("execution error")
	ErrNotFound      = errors.New("not found error")
)

func Validation(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

func ValidationWithDetails(message, details string) error {
	return fmt.Errorf("%w: %s (%s)", ErrValidation, message, details)
}

func SecurityWithDetails(message, details string) error {
	return fmt.Errorf("%w: %s (%s)", ErrSecurity, message, details)
}

func Configuration(message string) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, message)
}

func ConfigurationWithCause(message string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrConfiguration, message, cause)
}

func ExecutionWithCause(message string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrExecution, message, cause)
}

func NotFoundWithCause(message string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrNotFound, message, cause)
}
