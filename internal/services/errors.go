package services

import "errors"

// ValidationError carries a user-displayable message. Raised before any
// write; the handler maps it to a 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(msg string) error { return &ValidationError{Msg: msg} }

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var (
	// ErrForbidden: the actor lacks the capability for the requested
	// operation. Rejected before validation.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound: the requested record does not exist.
	ErrNotFound = errors.New("not found")
)
