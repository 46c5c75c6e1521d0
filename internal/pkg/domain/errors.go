package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error for transport mapping.
type ErrorKind string

const (
	KindInvalidRequest   ErrorKind = "invalid_request"
	KindInvalidDateRange ErrorKind = "invalid_date_range"
	KindNotFound         ErrorKind = "not_found"
	KindConflict         ErrorKind = "conflict"
	KindInvalidState     ErrorKind = "invalid_state"
	KindTooLate          ErrorKind = "too_late"
	KindUnauthorized     ErrorKind = "unauthorized"
	KindForbidden        ErrorKind = "forbidden"
	KindInternal         ErrorKind = "internal_error"
)

// Error is a domain error with a machine-readable kind and a short
// human-readable message safe to return to callers.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the wrapped cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf returns the kind of a domain error, or KindInternal for anything else.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// NewValidationError signals missing or malformed input.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindInvalidRequest, Message: message}
}

// NewInvalidDateRangeError signals an unparseable, inverted or past date range.
func NewInvalidDateRangeError(message string) *Error {
	return &Error{Kind: KindInvalidDateRange, Message: message}
}

// NewNotFoundError signals an absent (or not visible to the caller) resource.
func NewNotFoundError(resource, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", resource, id)}
}

// NewConflictError signals a double-booking or concurrent-modification conflict.
func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewInvalidStateError signals a disallowed lifecycle transition.
func NewInvalidStateError(from, to string) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf("cannot transition from %s to %s", from, to)}
}

// NewTooLateError signals an operation attempted past its allowed window.
func NewTooLateError(message string) *Error {
	return &Error{Kind: KindTooLate, Message: message}
}

// NewUnauthorizedError signals a missing or invalid caller identity.
func NewUnauthorizedError(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// NewForbiddenError signals an authenticated caller lacking privilege.
func NewForbiddenError(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NewInternalError wraps an unexpected failure behind a generic message so
// internal diagnostics never leak to callers.
func NewInternalError(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", cause: cause}
}
