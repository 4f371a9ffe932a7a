package driven

import (
	"context"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
)

// TargetRepository creates resources in the repository objects are migrated to.
type TargetRepository interface {
	// CreateObject creates a container resource at path.
	CreateObject(ctx context.Context, path string) (ObjectResource, error)

	// CreateDatastream creates a binary resource at path holding content.
	CreateDatastream(ctx context.Context, path string, content domain.Content) (DatastreamResource, error)

	// CreateOrUpdateRedirectDatastream creates or replaces a resource at path
	// that redirects to url when fetched.
	CreateOrUpdateRedirectDatastream(ctx context.Context, path, url string) error
}

// Resource is a target resource whose properties can be updated.
type Resource interface {
	// Path returns the resource path.
	Path() string

	// UpdateProperties applies a delta as one atomic delete-then-insert update.
	UpdateProperties(ctx context.Context, delta *domain.Delta) error
}

// ObjectResource is a migrated object.
type ObjectResource interface {
	Resource

	// CreateVersionSnapshot records an immutable snapshot of the resource's
	// current state under label.
	CreateVersionSnapshot(ctx context.Context, label string) error
}

// DatastreamResource is a migrated datastream.
type DatastreamResource interface {
	Resource

	// UpdateContent replaces the binary content.
	UpdateContent(ctx context.Context, content domain.Content) error
}
