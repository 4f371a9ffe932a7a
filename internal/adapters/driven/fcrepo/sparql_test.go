package fcrepo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/vocabulary"
)

func TestBuildUpdate(t *testing.T) {
	delta := domain.NewDelta()
	title := domain.IRI(vocabulary.DCTermsTitle)
	delta.AddRemove(domain.Triple{Subject: domain.Self, Predicate: title, Object: delta.Placeholder()})
	delta.AddInsert(domain.Triple{Subject: domain.Self, Predicate: title, Object: domain.Literal("Say \"hi\"")})
	event := delta.NewBlank()
	delta.AddInsert(domain.Triple{Subject: domain.Self, Predicate: domain.IRI(vocabulary.PremisHasEvent), Object: event})
	delta.AddInsert(domain.Triple{
		Subject:   event,
		Predicate: domain.IRI(vocabulary.PremisHasEventDateTime),
		Object:    domain.TypedLiteral("2024-01-02T03:04:05.000Z", vocabulary.XSDDateTime),
	})

	want := strings.Join([]string{
		"PREFIX dcterms: <http://purl.org/dc/terms/>",
		"PREFIX fedora3model: <info:fedora/fedora-system:def/model#>",
		"PREFIX fedoraaccess: <http://fedora.info/definitions/1/0/access/>",
		"",
		"DELETE WHERE {",
		"  <> <http://purl.org/dc/terms/title> ?o0 .",
		"} ;",
		"INSERT DATA {",
		"  <> <http://purl.org/dc/terms/title> \"Say \\\"hi\\\"\" .",
		"  <> <http://www.loc.gov/premis/rdf/v1#hasEvent> _:b0 .",
		"  _:b0 <http://www.loc.gov/premis/rdf/v1#hasEventDateTime> \"2024-01-02T03:04:05.000Z\"^^<http://www.w3.org/2001/XMLSchema#dateTime> .",
		"}",
		"",
	}, "\n")

	assert.Equal(t, want, BuildUpdate(delta))
}
