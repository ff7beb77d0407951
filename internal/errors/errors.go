// Package errors provides the error categories shared by every module. Module
// errors wrap one of these categories so transports can map them to a status
// without knowing the module.
package errors

import (
	"errors"
	"fmt"
)

// Error categories.
var (
	// ErrNotFound indicates the requested resource (for example an identifier kind) is unknown.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input was rejected permanently; retrying it cannot succeed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMisconfigured indicates the process was started with an unusable configuration.
	ErrMisconfigured = errors.New("misconfigured")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap prefixes err with message, keeping err in the chain. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
