package notation

import (
	"errors"
	"fmt"
)

// ErrInvalid matches every notation parse failure.
var ErrInvalid = errors.New("invalid roll notation")

// Error reports why an input could not be parsed.
type Error struct {
	Input  string // Original, unmodified input
	Reason string
	Cause  error // Optional dice error describing the violated rule
}

func newError(input, reason string, cause error) *Error {
	return &Error{Input: input, Reason: reason, Cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("parse roll %q: %s", e.Input, e.Reason)
}

// Unwrap exposes ErrInvalid and, when present, the underlying dice rule.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalid}
	}
	return []error{ErrInvalid, e.Cause}
}
