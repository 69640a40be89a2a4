package element

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by every [ArgumentError].
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError reports a required argument that is missing or out of range.
type ArgumentError struct {
	Field  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func newArgumentError(field, reason string) *ArgumentError {
	return &ArgumentError{Field: field, Reason: reason}
}
