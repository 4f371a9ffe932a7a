package services

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driven"
	"github.com/custodia-labs/fedora-migrate/internal/logger"
)

// DCShredder decomposes a Dublin Core datastream into object properties.
type DCShredder struct {
	parser driven.DCParser
}

// NewDCShredder creates a shredder using parser.
func NewDCShredder(parser driven.DCParser) *DCShredder {
	return &DCShredder{parser: parser}
}

// Shred adds the record's elements to delta. Every element present clears
// the predicate's current values and inserts each value as a literal.
// Nothing is added when the record cannot be read.
func (s *DCShredder) Shred(v domain.DatastreamVersion, delta *domain.Delta) error {
	rc, err := v.OpenContent()
	if err != nil {
		return fmt.Errorf("%w: read DC datastream %s: %w", domain.ErrTransport, v.VersionID, err)
	}
	defer rc.Close()

	record, err := s.parser.Parse(rc)
	if err != nil {
		if errors.Is(err, domain.ErrStructural) {
			return fmt.Errorf("parse DC datastream %s: %w", v.VersionID, err)
		}
		return fmt.Errorf("%w: parse DC datastream %s: %w", domain.ErrStructural, v.VersionID, err)
	}

	fork := delta.Fork()
	for _, uri := range record.Elements {
		pred := domain.IRI(uri)
		fork.AddRemove(domain.Triple{Subject: domain.Self, Predicate: pred, Object: fork.Placeholder()})
		for _, value := range record.Values[uri] {
			logger.Debug("Adding %s value %s", uri, value)
			fork.AddInsert(domain.Triple{Subject: domain.Self, Predicate: pred, Object: domain.Literal(value)})
		}
	}
	delta.Merge(fork)
	return nil
}
