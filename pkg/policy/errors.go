package policy

import (
	"errors"
	"fmt"
)

// ErrInvalidEncoding is returned when a policy document is not valid UTF-8.
var ErrInvalidEncoding = errors.New("document is not valid UTF-8")

// LoadError reports a policy file that could not be read: missing files,
// permission problems, size or encoding violations.
type LoadError struct {
	// FilePath is the path to the file that failed to load.
	FilePath string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load policy file %q: %s: %v", e.FilePath, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load policy file %q: %s", e.FilePath, e.Message)
}

// Unwrap implements the errors.Unwrap interface for error chain support.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ParseError reports a policy file whose contents could not be decoded as a
// Document. The YAML position of the problem is part of the cause's message.
type ParseError struct {
	// FilePath is the path to the file that failed to parse.
	FilePath string

	// Cause is the underlying decoding error.
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %q: %v", e.FilePath, e.Cause)
}

// Unwrap implements the errors.Unwrap interface for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}
