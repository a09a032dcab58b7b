// Package apperr classifies the failures the service surfaces to callers.
// Every public operation returns exactly one of the three kinds; storage
// errors never escape unclassified.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the failure classification.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation marks malformed or missing input. Always client
	// recoverable.
	KindValidation
	// KindNotFound marks a referenced entity that is absent.
	KindNotFound
	// KindStorage marks an underlying store failure. Never retried here;
	// retry policy belongs to the caller.
	KindStorage
)

// Error carries a client-facing message and, for storage failures, the
// underlying cause for diagnostics.
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

// Validation returns a KindValidation error.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a KindNotFound error.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Storage wraps an underlying store failure.
func Storage(message string, err error) *Error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}

// KindOf reports the classification of err, walking wrapped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
