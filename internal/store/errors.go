package store

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the store operations.
//
// ErrInvalidTransition signals that a status change lost a conditional
// update: the request was no longer in the expected prior status (or the
// acting manager does not manage the owner). Callers should reload and
// re-attempt rather than retry blindly.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError reports invalid caller input: empty cart, bad quantity,
// missing required field. The operation aborts with no partial state.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// validationf builds a ValidationError with a formatted reason.
func validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
