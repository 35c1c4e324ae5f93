// Package errs defines the error classes shared across the store.
//
// Every failure the store reports belongs to one of the sentinel classes
// below. Callers classify errors with errors.Is; details such as the name of
// a missing item travel in typed errors that unwrap to their class.
package errs

import (
	"fmt"

	"github.com/go-faster/errors"
)

var (
	// ErrAccessDenied is returned when the actor is nil or lacks administrator rights.
	ErrAccessDenied = errors.New("access denied")
	// ErrNotFound is returned when a referenced item, component, customer or snapshot is absent.
	ErrNotFound = errors.New("not found")
	// ErrDuplicatePhone is returned when a phone number is already registered.
	ErrDuplicatePhone = errors.New("phone number already registered")
	// ErrInvalidPhone is returned when a phone number does not match +40XXXXXXXXX.
	ErrInvalidPhone = errors.New("invalid phone number")
	// ErrPersistence is returned when a snapshot cannot be written.
	ErrPersistence = errors.New("persistence failure")
	// ErrDeserialization is returned when a snapshot cannot be parsed.
	ErrDeserialization = errors.New("deserialization failure")
)

// NotFoundError names the missing object. It unwraps to ErrNotFound.
type NotFoundError struct {
	Kind string
	Name string
}

// NewNotFoundError returns a NotFoundError for the given kind and name.
func NewNotFoundError(kind, name string) *NotFoundError {
	return &NotFoundError{Kind: kind, Name: name}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// classified attaches a class to an error without changing its message.
type classified struct {
	class error
	err   error
}

func (c *classified) Error() string {
	return c.class.Error() + ": " + c.err.Error()
}

func (c *classified) Unwrap() []error {
	return []error{c.class, c.err}
}

// Classify marks err as belonging to class so that errors.Is matches both.
// It returns nil for a nil err.
func Classify(class, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, class) {
		return err
	}
	return &classified{class: class, err: err}
}
