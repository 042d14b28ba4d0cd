package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error for the session loop and for logging.
type Kind string

const (
	KindAuth        Kind = "AUTH"
	KindValidation  Kind = "VALIDATION"
	KindNotFound    Kind = "NOT_FOUND"
	KindConflict    Kind = "CONFLICT"
	KindPersistence Kind = "PERSISTENCE"
)

// Error represents a typed domain error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrInvalidCredentials = New(KindAuth, "invalid username or password")
	ErrValidation         = New(KindValidation, "validation failed")
	ErrNotFound           = New(KindNotFound, "record not found")
	ErrConflict           = New(KindConflict, "conflict")
	ErrPersistence        = New(KindPersistence, "storage operation failed")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, KindPersistence, ErrPersistence.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	e := FromError(err)
	return e != nil && e.Kind == kind
}
