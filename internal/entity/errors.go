package entity

import "errors"

var (
	// ErrValidation is the kind of every error caused by malformed input.
	ErrValidation = errors.New("validation error")
	// ErrNotFound is the kind of every error caused by a reference to a missing record.
	ErrNotFound = errors.New("not found")
)

// Error is a domain error with a caller-facing message and a kind
// (ErrValidation or ErrNotFound) reachable through errors.Is.
type Error struct {
	kind error
	msg  string
}

func newError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.kind
}

var (
	// ErrInvalidURL is returned when a URL submitted for shortening is not a well-formed absolute URL.
	ErrInvalidURL = newError(ErrValidation, "invalid url")
	// ErrEmptyUsername is returned when a user is created without a username.
	ErrEmptyUsername = newError(ErrValidation, "username is required")
	// ErrEmptyDescription is returned when an exercise is created without a description.
	ErrEmptyDescription = newError(ErrValidation, "description is required")
	// ErrInvalidDuration is returned when an exercise duration is not an integer.
	ErrInvalidDuration = newError(ErrValidation, "duration must be a number")

	// ErrURLNotFound is returned when no URL is mapped to the requested short URL.
	ErrURLNotFound = newError(ErrNotFound, "not found")
	// ErrUserNotFound is returned when the referenced user doesn't exist.
	ErrUserNotFound = newError(ErrNotFound, "user not found")
)

// ErrURLExists is returned by repositories when a URL with the same original URL
// has already been stored.
var ErrURLExists = errors.New("url exists")
