package service

import "errors"

// Service-level error taxonomy. Controllers map these onto HTTP statuses:
// validation and duplicate-email to 400, wrong credentials to 401, not-found
// to 404, anything else to 500.
var (
	ErrValidation       = errors.New("invalid input")
	ErrDuplicateEmail   = errors.New("a user with this email already exists")
	ErrWrongCredentials = errors.New("wrong email or password")
	ErrNotFound         = errors.New("record not found")
)

// validationError wraps a human-readable message so errors.Is(err,
// ErrValidation) still holds.
type validationError struct {
	msg string
}

func (e *validationError) Error() string {
	return e.msg
}

func (e *validationError) Unwrap() error {
	return ErrValidation
}

func newValidationError(msg string) error {
	return &validationError{msg: msg}
}
