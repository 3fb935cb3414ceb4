package calc

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the only failure Compute reports
var ErrInvalidInput = errors.New("invalid input")

// InputError names the offending field
type InputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

func invalid(field string, value float64, reason string) *InputError {
	return &InputError{Field: field, Value: fmt.Sprintf("%g", value), Reason: reason}
}
