// Package rdfgraph reads relationship datastreams.
//
// RDF/XML, the serialisation of RELS-EXT and RELS-INT, is decoded by this
// package so that non-hierarchical IRIs like info:fedora/demo:1 survive
// intact. Turtle and N-Triples go through github.com/knakk/rdf.
package rdfgraph

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/knakk/rdf"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.RDFParser = (*Parser)(nil)

// Parser decodes an RDF graph in a fixed serialisation.
type Parser struct {
	format rdf.Format
}

// NewParser creates a parser for format.
func NewParser(format rdf.Format) *Parser {
	return &Parser{format: format}
}

// NewRDFXMLParser creates a parser for RDF/XML, the serialisation of
// RELS-EXT and RELS-INT.
func NewRDFXMLParser() *Parser {
	return NewParser(rdf.RDFXML)
}

// Parse returns every statement in r in document order.
func (p *Parser) Parse(r io.Reader) ([]domain.Statement, error) {
	if p.format == rdf.RDFXML {
		return decodeRDFXML(r)
	}

	dec := rdf.NewTripleDecoder(r, p.format)

	var statements []domain.Statement
	for {
		triple, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return statements, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: decode rdf: %w", domain.ErrStructural, err)
		}

		subject, err := convertTerm(triple.Subj)
		if err != nil {
			return nil, err
		}
		object, err := convertTerm(triple.Obj)
		if err != nil {
			return nil, err
		}
		statements = append(statements, domain.Statement{
			Subject:   subject,
			Predicate: triple.Pred.String(),
			Object:    object,
		})
	}
}

// convertTerm maps a decoded term onto the domain term kinds.
func convertTerm(t rdf.Term) (domain.Term, error) {
	switch t.Type() {
	case rdf.TermIRI:
		return domain.IRI(t.String()), nil
	case rdf.TermBlank:
		return domain.Blank(strings.TrimPrefix(t.String(), "_:")), nil
	case rdf.TermLiteral:
		if lit, ok := t.(rdf.Literal); ok && lit.DataType.String() != "" && lit.DataType.String() != xsdString {
			return domain.TypedLiteral(lit.String(), lit.DataType.String()), nil
		}
		return domain.Literal(t.String()), nil
	default:
		return domain.Term{}, fmt.Errorf("%w: unsupported term %s", domain.ErrStructural, t)
	}
}

const xsdString = "http://www.w3.org/2001/XMLSchema#string"
