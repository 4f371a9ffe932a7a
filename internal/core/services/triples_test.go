package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/vocabulary"
)

// eventsOfType returns the blank nodes typed as eventType in delta.
func eventsOfType(delta *domain.Delta, eventType string) []domain.Term {
	var events []domain.Term
	for _, t := range delta.Inserts() {
		if t.Predicate.Value == vocabulary.PremisHasEventType && t.Object == domain.IRI(eventType) {
			events = append(events, t.Subject)
		}
	}
	return events
}

// insertsFor returns the objects inserted for predicate on the resource itself.
func insertsFor(delta *domain.Delta, predicate string) []domain.Term {
	var objects []domain.Term
	for _, t := range delta.Inserts() {
		if t.Subject == domain.Self && t.Predicate.Value == predicate {
			objects = append(objects, t.Object)
		}
	}
	return objects
}

func TestUpdateTriples(t *testing.T) {
	tests := []struct {
		name   string
		update func(*domain.Delta, string, string)
		value  string
		want   domain.Term
	}{
		{"literal", UpdateLiteralTriple, "A", domain.Literal("A")},
		{"uri", UpdateURITriple, "info:fedora/demo:2", domain.IRI("info:fedora/demo:2")},
		{"date", UpdateDateTriple, "2020-01-01T00:00:00.000Z",
			domain.TypedLiteral("2020-01-01T00:00:00.000Z", vocabulary.XSDDateTime)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta := domain.NewDelta()
			tt.update(delta, vocabulary.DCTermsTitle, tt.value)

			removes := delta.Removes()
			inserts := delta.Inserts()
			require.Len(t, removes, 1)
			require.Len(t, inserts, 1)

			assert.Equal(t, domain.Self, removes[0].Subject)
			assert.Equal(t, vocabulary.DCTermsTitle, removes[0].Predicate.Value)
			assert.Equal(t, domain.TermVariable, removes[0].Object.Kind)
			assert.Equal(t, tt.want, inserts[0].Object)
		})
	}
}

func TestUpdateTriples_PlaceholdersUnique(t *testing.T) {
	delta := domain.NewDelta()
	UpdateLiteralTriple(delta, vocabulary.DCTermsTitle, "one")
	UpdateLiteralTriple(delta, vocabulary.DCTermsTitle, "two")
	fork := delta.Fork()
	UpdateURITriple(fork, vocabulary.DCTermsTitle, "urn:three")
	delta.Merge(fork)

	seen := make(map[string]bool)
	for _, r := range delta.Removes() {
		assert.False(t, seen[r.Object.Value], "placeholder %s reused", r.Object)
		seen[r.Object.Value] = true
	}
	assert.Len(t, seen, 3)
}

func TestAddDateEvent(t *testing.T) {
	delta := domain.NewDelta()
	AddDateEvent(delta, vocabulary.EventMigration, "2024-01-02T03:04:05.000Z")

	assert.Zero(t, delta.RemoveCount())
	inserts := delta.Inserts()
	require.Len(t, inserts, 3)

	event := inserts[0].Object
	assert.Equal(t, domain.Self, inserts[0].Subject)
	assert.Equal(t, vocabulary.PremisHasEvent, inserts[0].Predicate.Value)
	assert.Equal(t, domain.TermBlank, event.Kind)

	assert.Equal(t, event, inserts[1].Subject)
	assert.Equal(t, domain.IRI(vocabulary.EventMigration), inserts[1].Object)

	assert.Equal(t, event, inserts[2].Subject)
	assert.Equal(t, vocabulary.PremisHasEventDateTime, inserts[2].Predicate.Value)
	assert.Equal(t, domain.TypedLiteral("2024-01-02T03:04:05.000Z", vocabulary.XSDDateTime), inserts[2].Object)
}

func TestAddDateEvent_DistinctNodes(t *testing.T) {
	delta := domain.NewDelta()
	AddDateEvent(delta, vocabulary.EventMigration, "2024-01-02T03:04:05.000Z")
	AddDateEvent(delta, vocabulary.EventMigration, "2024-01-02T03:04:05.000Z")

	events := eventsOfType(delta, vocabulary.EventMigration)
	require.Len(t, events, 2)
	assert.NotEqual(t, events[0], events[1])
}

func TestShouldApplyDelta(t *testing.T) {
	tests := []struct {
		name  string
		build func(*domain.Delta)
		want  bool
	}{
		{"empty", func(*domain.Delta) {}, false},
		{"insert only", func(d *domain.Delta) {
			AddDateEvent(d, vocabulary.EventMigration, "2024-01-02T03:04:05.000Z")
		}, false},
		{"remove only", func(d *domain.Delta) {
			d.AddRemove(domain.Triple{Subject: domain.Self, Predicate: domain.IRI(vocabulary.DCTermsTitle), Object: d.Placeholder()})
		}, false},
		{"both", func(d *domain.Delta) {
			UpdateLiteralTriple(d, vocabulary.DCTermsTitle, "x")
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta := domain.NewDelta()
			tt.build(delta)
			assert.Equal(t, tt.want, ShouldApplyDelta(delta))
		})
	}
}

func TestFormatXSDDateTime(t *testing.T) {
	ts, err := formatXSDDateTime(time.Date(2024, 1, 2, 3, 4, 5, 6000000, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02T03:04:05.006Z", ts)

	_, err = formatXSDDateTime(time.Time{})
	assert.Error(t, err)

	_, err = formatXSDDateTime(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)
}

func TestCurrentTimestamp_Unformattable(t *testing.T) {
	ts, ok := currentTimestamp(func() time.Time { return time.Time{} })
	assert.False(t, ok)
	assert.Empty(t, ts)
}
