package service

import (
	"errors"
)

var (
	// ErrInvalidStatus is returned when a status value is not one the entity accepts.
	ErrInvalidStatus = errors.New("invalid_status")
	// ErrInvalidTransition is returned when a booking cannot move to the requested status.
	ErrInvalidTransition = errors.New("invalid_transition")
	// ErrAlreadyConverted is returned when a contact message was already turned into a client.
	ErrAlreadyConverted = errors.New("already_converted")
)

// ValidationError reports a rejected input field. Code is the machine-readable
// code handlers return to the client, e.g. "email_required".
type ValidationError struct {
	Field string
	Code  string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Code
}

func invalid(field, code string) error {
	return &ValidationError{Field: field, Code: code}
}

// AsValidation extracts a ValidationError from err.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
