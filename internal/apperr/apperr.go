// Package apperr holds the error kinds shared by every module. Modules wrap these with
// context and callers classify with errors.Is.
package apperr

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// Invalid wraps msg as an ErrInvalidInput.
func Invalid(msg string) error {
	return &kindError{msg: msg, kind: ErrInvalidInput}
}

// NotFound reports that entity id did not resolve.
func NotFound(entity, id string) error {
	return &kindError{msg: entity + " not found: " + id, kind: ErrNotFound}
}

type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// Unauthorized wraps msg as an ErrUnauthorized.
func Unauthorized(msg string) error {
	return &kindError{msg: msg, kind: ErrUnauthorized}
}
