package services

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driven"
	"github.com/custodia-labs/fedora-migrate/internal/vocabulary"
)

// readStatements opens a relationship datastream and parses its graph.
func readStatements(parser driven.RDFParser, v domain.DatastreamVersion) ([]domain.Statement, error) {
	rc, err := v.OpenContent()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrTransport, v.VersionID, err)
	}
	defer rc.Close()

	statements, err := parser.Parse(rc)
	if err != nil {
		if errors.Is(err, domain.ErrStructural) {
			return nil, fmt.Errorf("parse %s: %w", v.VersionID, err)
		}
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrStructural, v.VersionID, err)
	}
	return statements, nil
}

// mapStatement forwards a statement's predicate and object through mapper.
// Objects must be literals or URI references.
func mapStatement(mapper PropertyMapper, delta *domain.Delta, st domain.Statement) error {
	switch st.Object.Kind {
	case domain.TermLiteral:
		mapper.MapProperty(delta, st.Predicate, st.Object.Value, true)
	case domain.TermIRI:
		mapper.MapProperty(delta, st.Predicate, st.Object.Value, false)
	default:
		return fmt.Errorf("%w: no handling for non-URI, non-literal object %s of %s",
			domain.ErrStructural, st.Object, st.Predicate)
	}
	return nil
}

// RelsExtShredder decomposes an outbound relationship graph into
// properties of the object it describes.
type RelsExtShredder struct {
	parser driven.RDFParser
	mapper PropertyMapper
}

// NewRelsExtShredder creates a shredder using parser and mapper.
func NewRelsExtShredder(parser driven.RDFParser, mapper PropertyMapper) *RelsExtShredder {
	return &RelsExtShredder{parser: parser, mapper: mapper}
}

// Shred adds the graph's statements about the object pid to delta.
// Every statement must have the object's canonical URI as subject.
// Nothing is added when any statement is rejected.
func (s *RelsExtShredder) Shred(pid string, v domain.DatastreamVersion, delta *domain.Delta) error {
	statements, err := readStatements(s.parser, v)
	if err != nil {
		return err
	}

	objectURI := vocabulary.ObjectURI(pid)
	fork := delta.Fork()
	for _, st := range statements {
		if st.Subject.Kind != domain.TermIRI || st.Subject.Value != objectURI {
			return fmt.Errorf("%w: non-resource subject found: %s", domain.ErrStructural, st.Subject)
		}
		if err := mapStatement(s.mapper, fork, st); err != nil {
			return err
		}
	}
	delta.Merge(fork)
	return nil
}

// InboundUpdate is the delta for one datastream described by RELS-INT.
type InboundUpdate struct {
	DatastreamID string
	Delta        *domain.Delta
}

// RelsIntShredder decomposes an inbound relationship graph into
// property updates of the object's other datastreams.
type RelsIntShredder struct {
	parser driven.RDFParser
	mapper PropertyMapper
}

// NewRelsIntShredder creates a shredder using parser and mapper.
func NewRelsIntShredder(parser driven.RDFParser, mapper PropertyMapper) *RelsIntShredder {
	return &RelsIntShredder{parser: parser, mapper: mapper}
}

// Shred returns one standalone update per statement, addressed to the
// datastream named by the final path segment of the statement's subject.
// No updates are returned when any statement is rejected.
func (s *RelsIntShredder) Shred(v domain.DatastreamVersion) ([]InboundUpdate, error) {
	statements, err := readStatements(s.parser, v)
	if err != nil {
		return nil, err
	}

	updates := make([]InboundUpdate, 0, len(statements))
	for _, st := range statements {
		if st.Subject.Kind != domain.TermIRI {
			return nil, fmt.Errorf("%w: non-resource subject found: %s", domain.ErrStructural, st.Subject)
		}
		delta := domain.NewDelta()
		if err := mapStatement(s.mapper, delta, st); err != nil {
			return nil, err
		}
		updates = append(updates, InboundUpdate{
			DatastreamID: vocabulary.LastSegment(st.Subject.Value),
			Delta:        delta,
		})
	}
	return updates, nil
}
