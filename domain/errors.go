package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID means an insert collided on a unique external
	// identifier. Callers allocating sequential IDs retry on it.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrInsufficientStock means a conditional stock decrement found less
	// stock than requested.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ValidationError marks a failure caused by bad client input, as opposed
// to an infrastructure fault. The REST layer reports it as 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
