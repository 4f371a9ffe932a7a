package services

import (
	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/vocabulary"
)

// UpdateLiteralTriple replaces the current values of predicate with a literal.
func UpdateLiteralTriple(delta *domain.Delta, predicate, value string) {
	updateTriple(delta, predicate, domain.Literal(value))
}

// UpdateURITriple replaces the current values of predicate with a URI reference.
func UpdateURITriple(delta *domain.Delta, predicate, value string) {
	updateTriple(delta, predicate, domain.IRI(value))
}

// UpdateDateTriple replaces the current values of predicate with an xsd:dateTime literal.
func UpdateDateTriple(delta *domain.Delta, predicate, value string) {
	updateTriple(delta, predicate, domain.TypedLiteral(value, vocabulary.XSDDateTime))
}

// updateTriple adds a remove pattern with a fresh placeholder and the
// insert triple carrying the new value.
func updateTriple(delta *domain.Delta, predicate string, object domain.Term) {
	pred := domain.IRI(predicate)
	delta.AddRemove(domain.Triple{Subject: domain.Self, Predicate: pred, Object: delta.Placeholder()})
	delta.AddInsert(domain.Triple{Subject: domain.Self, Predicate: pred, Object: object})
}

// AddDateEvent appends a PREMIS event of the given type and time.
// Events are insert-only and never retracted.
func AddDateEvent(delta *domain.Delta, eventType, timestamp string) {
	event := delta.NewBlank()
	delta.AddInsert(domain.Triple{
		Subject:   domain.Self,
		Predicate: domain.IRI(vocabulary.PremisHasEvent),
		Object:    event,
	})
	delta.AddInsert(domain.Triple{
		Subject:   event,
		Predicate: domain.IRI(vocabulary.PremisHasEventType),
		Object:    domain.IRI(eventType),
	})
	delta.AddInsert(domain.Triple{
		Subject:   event,
		Predicate: domain.IRI(vocabulary.PremisHasEventDateTime),
		Object:    domain.TypedLiteral(timestamp, vocabulary.XSDDateTime),
	})
}

// ShouldApplyDelta reports whether a delta is sent to the target.
//
// A delta is applied only when both its remove-set and insert-set are
// non-empty. Pure additions (such as a lone audit event) and pure removals
// are withheld.
func ShouldApplyDelta(delta *domain.Delta) bool {
	return delta.RemoveCount() > 0 && delta.InsertCount() > 0
}
