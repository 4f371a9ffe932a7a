// Package pathmap maps legacy identifiers to target repository paths.
package pathmap

import (
	"net/url"
	"path"
	"strings"

	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driven"
)

// Ensure Mapper implements the interface.
var _ driven.PathMapper = (*Mapper)(nil)

// Mapper places each object at <root>/<namespace>/<id> and each datastream
// directly beneath its object.
type Mapper struct {
	root string
}

// NewMapper creates a mapper under root. An empty root maps objects to the
// top of the repository.
func NewMapper(root string) *Mapper {
	return &Mapper{root: path.Join("/", root)}
}

// MapObjectPath returns the target path of the object with the given pid.
// "demo:1" under root "/migrated" yields "/migrated/demo/1".
func (m *Mapper) MapObjectPath(pid string) string {
	ns, id, ok := strings.Cut(pid, ":")
	if !ok || ns == "" || id == "" {
		return path.Join(m.root, url.PathEscape(pid))
	}
	return path.Join(m.root, url.PathEscape(ns), url.PathEscape(id))
}

// MapDatastreamPath returns the target path of a datastream of an object.
func (m *Mapper) MapDatastreamPath(pid, datastreamID string) string {
	return m.MapObjectPath(pid) + "/" + url.PathEscape(datastreamID)
}
