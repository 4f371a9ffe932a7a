package driven

import (
	"io"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
)

// RDFParser reads the statements of an RDF graph.
// Used for RELS-EXT and RELS-INT datastreams.
type RDFParser interface {
	// Parse returns every statement in r.
	// Malformed input yields an error wrapping domain.ErrStructural.
	Parse(r io.Reader) ([]domain.Statement, error)
}

// DCParser reads a Dublin Core record.
type DCParser interface {
	// Parse returns the element URIs and values in r.
	// Malformed input yields an error wrapping domain.ErrStructural.
	Parse(r io.Reader) (*domain.DCRecord, error)
}
