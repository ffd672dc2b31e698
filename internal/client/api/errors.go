package api

import "errors"

// Sentinel errors for the conditions callers branch on. Match with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("server unavailable")
	ErrInternal     = errors.New("internal error")
)

// Error pairs one of the sentinel kinds with the normalized human-readable
// message extracted from the backend response. errors.Is against the
// sentinels keeps working through Unwrap.
type Error struct {
	kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.kind }

func newError(kind error, message string) *Error {
	return &Error{kind: kind, Message: message}
}

// NewValidationError builds a validation failure with a display-ready
// message. Used by callers that reject input before it reaches the wire.
func NewValidationError(message string) *Error {
	return newError(ErrValidation, message)
}
