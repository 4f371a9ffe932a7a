package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent migration failures.
// Structural and transport errors are fatal for the object being migrated.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStructural indicates legacy data with an unexpected shape, such as
	// a RELS-EXT statement about another subject or an unparsable DC record.
	ErrStructural = errors.New("structural error")

	// ErrTransport indicates a failed call to the target repository or a
	// failure reading datastream content.
	ErrTransport = errors.New("transport error")

	// ErrNoContent indicates a datastream version without readable content.
	ErrNoContent = errors.New("no content")

	// ErrNotConfigured indicates a required collaborator was not provided.
	ErrNotConfigured = errors.New("not configured")
)

// ObjectError reports the object whose migration aborted the run.
type ObjectError struct {
	PID string
	Err error
}

// Error implements the error interface.
func (e *ObjectError) Error() string {
	return fmt.Sprintf("migrate %s: %v", e.PID, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ObjectError) Unwrap() error {
	return e.Err
}

// IsStructural reports whether err is caused by malformed legacy data.
func IsStructural(err error) bool {
	return errors.Is(err, ErrStructural)
}

// IsTransport reports whether err is caused by a repository or I/O failure.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}
