package cmcd

import (
	"errors"
	"fmt"
)

// Errors returned by NewConfiguration, checkable with errors.Is().
var (
	// ErrIDTooLong is returned when a session or content id exceeds MaxIDLength.
	ErrIDTooLong = errors.New("id exceeds maximum length")

	// ErrNilRequestConfig is returned when no RequestConfig is supplied.
	ErrNilRequestConfig = errors.New("request config is nil")
)

// IDLengthError reports which id violated the MaxIDLength bound and by how
// much.
type IDLengthError struct {
	// Field names the offending id, "session id" or "content id".
	Field string

	// Length is the id's length in characters.
	Length int
}

// Error implements the error interface.
func (e *IDLengthError) Error() string {
	return fmt.Sprintf("%s is %d characters long, maximum is %d", e.Field, e.Length, MaxIDLength)
}

// Is implements error matching for errors.Is().
func (e *IDLengthError) Is(target error) bool {
	return target == ErrIDTooLong
}
