package apperr

import (
	"errors"
	"fmt"
)

// Kind is the machine-checkable category of a service error. Handlers map
// kinds to HTTP-ish response codes; callers branch on kinds, never on
// message text.
type Kind string

const (
	KindInvalidArgument Kind = "invalid_argument"
	KindNotFound        Kind = "not_found"
	KindForbidden       Kind = "forbidden"
	KindConflict        Kind = "conflict"
	KindUnauthorized    Kind = "unauthorized"
	KindInternal        Kind = "internal"
)

// Error carries a kind, a human-readable message safe to return to clients,
// and an optional wrapped cause that stays server-side.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind and client-safe message to an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func InvalidArgument(message string) *Error { return New(KindInvalidArgument, message) }
func NotFound(message string) *Error        { return New(KindNotFound, message) }
func Forbidden(message string) *Error       { return New(KindForbidden, message) }
func Conflict(message string) *Error        { return New(KindConflict, message) }
func Unauthorized(message string) *Error    { return New(KindUnauthorized, message) }

// Internal wraps an unanticipated failure. The cause is logged server-side;
// only the message is returned to the caller.
func Internal(message string, err error) *Error {
	return Wrap(KindInternal, message, err)
}

// KindOf reports the kind of err, or KindInternal when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the client-safe message of err, or a generic fallback for
// errors without one.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
