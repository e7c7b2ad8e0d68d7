package errors

import (
	"fmt"
)

// Common error types
var (
	// Configuration errors
	ErrInvalidConfig  = New("invalid configuration")
	ErrInvalidOptions = New("invalid options")

	// Provider errors
	ErrProviderNotFound  = New("provider not found")
	ErrMissingDependency = New("missing external dependency")

	// Input errors
	ErrNoAudioFiles = New("no audio files to transcribe")

	// File errors
	ErrFileNotFound    = New("file not found")
	ErrFileReadFailed  = New("file read failed")
	ErrFileWriteFailed = New("file write failed")

	// Database errors
	ErrDatabaseConnection = New("database connection failed")
	ErrQueryFailed        = New("query failed")
	ErrInsertFailed       = New("insert failed")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// MissingDependency reports an external requirement that is not installed or configured.
func MissingDependency(what string, hint string) error {
	if hint == "" {
		return fmt.Errorf("%w: %s", ErrMissingDependency, what)
	}
	return fmt.Errorf("%w: %s (%s)", ErrMissingDependency, what, hint)
}
