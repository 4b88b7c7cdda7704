// Package apperr carries domain errors with an explicit kind so handlers can
// map them to HTTP statuses without string matching.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error
type Kind int

const (
	// Validation is a malformed or out-of-range input; no store access happened
	Validation Kind = iota
	// NotFound covers both absent entities and entities owned by another
	// account, which must be indistinguishable to the caller
	NotFound
	// Conflict is a duplicate unique field or an illegal state transition
	Conflict
	// Integrity is a store-level failure mid-transaction; the whole operation
	// was rolled back
	Integrity
)

// Error is a domain error with a kind and a human-readable message
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a domain error with the given kind and message
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a domain error with a formatted message
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a domain error wrapping an underlying cause
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// Message returns the domain message of err, or a fallback for unclassified
// errors so internal detail never leaks to the caller
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
