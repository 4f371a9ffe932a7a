package driven

import (
	"context"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
)

// ObjectSource produces legacy objects one at a time.
// The sequence is finite and single-pass.
type ObjectSource interface {
	// Next returns the processor for the next object.
	// Returns io.EOF when the source is exhausted.
	Next(ctx context.Context) (ObjectProcessor, error)

	// Close releases resources.
	Close() error
}

// ObjectProcessor exposes one legacy object's history.
type ObjectProcessor interface {
	// Object returns the identity of the object.
	Object() domain.ObjectInfo

	// Versions returns the object's versions in chronological order.
	// It may be called more than once; each call starts from the beginning.
	Versions(ctx context.Context) ([]domain.ObjectVersion, error)
}
