package coords

import (
	"errors"
	"fmt"
)

var (
	ErrEmpty          = errors.New("empty input")
	ErrMalformed      = errors.New("malformed coordinate")
	ErrLengthMismatch = errors.New("length mismatch")
	ErrOutOfRange     = errors.New("coordinate out of range")
	ErrUnsupported    = errors.New("unsupported geometry")
)

// ValidationError names the offending input. It matches its sentinel
// through errors.Is.
type ValidationError struct {
	Err    error
	Value  any
	Field  string
	Reason string
}

func newError(field string, value any, sentinel error, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Err: sentinel, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %v: %s", e.Err, e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Empty reports an empty input for field. Callers outside this package use
// it to reject empty collections the same way.
func Empty(field string) error {
	return newError(field, "[]", ErrEmpty, "nothing to plot")
}

// Mismatch reports that field holds got entries where want were expected.
func Mismatch(field string, got, want int) error {
	return newError(field, got, ErrLengthMismatch, fmt.Sprintf("want %d entries", want))
}

// TooShort reports a path in field with fewer than want coordinates.
func TooShort(field string, got, want int) error {
	return newError(field, got, ErrMalformed, fmt.Sprintf("need at least %d coordinates", want))
}
