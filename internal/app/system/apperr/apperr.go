// Package apperr defines the error kinds the tracker surfaces to handlers.
//
// Each kind wraps an underlying cause so callers can use errors.As to pick
// the kind and errors.Is to match sentinels such as ErrNotFound.
package apperr

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation targets a record that does not exist.
var ErrNotFound = errors.New("record not found")

// ValidationError means a caller-supplied value was rejected before any
// store call was made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validation builds a ValidationError.
func Validation(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// PersistenceError means the record store rejected or failed an operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Err == nil {
		return e.Op + " failed"
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps err as a PersistenceError for op. A nil err yields nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// AuthError is a sign-in or session failure. Message is safe to show the user.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return e.Err }

// Auth builds an AuthError with a user-facing message.
func Auth(msg string, cause error) error {
	return &AuthError{Message: msg, Err: cause}
}

// SubscriptionError means the change channel could not be opened or broke.
type SubscriptionError struct {
	Err error
}

func (e *SubscriptionError) Error() string {
	return "change subscription: " + e.Err.Error()
}

func (e *SubscriptionError) Unwrap() error { return e.Err }

// Subscription wraps err as a SubscriptionError. A nil err yields nil.
func Subscription(err error) error {
	if err == nil {
		return nil
	}
	return &SubscriptionError{Err: err}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Message returns the text a handler should show for err.
func Message(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
