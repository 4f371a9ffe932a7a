package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/vocabulary"
)

// ValueKind is how a mapped property value is written.
type ValueKind int

const (
	// ValueAsGiven writes a literal or URI according to the statement the value came from.
	ValueAsGiven ValueKind = iota

	// ValueLiteral always writes a plain literal.
	ValueLiteral

	// ValueURI always writes a URI reference.
	ValueURI

	// ValueDate writes an xsd:dateTime literal.
	ValueDate
)

// String returns the kind name used in mapping files.
func (k ValueKind) String() string {
	switch k {
	case ValueLiteral:
		return "literal"
	case ValueURI:
		return "uri"
	case ValueDate:
		return "date"
	default:
		return "as-given"
	}
}

// ParseValueKind parses a kind name. The empty string means as-given.
func ParseValueKind(s string) (ValueKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "as-given":
		return ValueAsGiven, nil
	case "literal":
		return ValueLiteral, nil
	case "uri":
		return ValueURI, nil
	case "date":
		return ValueDate, nil
	default:
		return ValueAsGiven, fmt.Errorf("%w: unknown value kind %q", domain.ErrInvalidInput, s)
	}
}

// MappingEntry maps one legacy predicate.
type MappingEntry struct {
	// Target is the predicate written to the target resource.
	Target string

	// Kind is how the value is written.
	Kind ValueKind

	// Event, when set, turns the value into an audit event of this type
	// instead of a property.
	Event string
}

// MappingTable maps legacy predicate URIs to target predicates.
type MappingTable map[string]MappingEntry

// DefaultMappingTable returns the standard Fedora 3 to Fedora 4 mappings.
func DefaultMappingTable() MappingTable {
	return MappingTable{
		vocabulary.Fedora3CreatedDate: {
			Target: vocabulary.PremisDateCreatedByApplication,
			Kind:   ValueDate,
		},
		vocabulary.Fedora3State: {
			Target: vocabulary.AccessObjState,
		},
		vocabulary.Fedora3LastModifiedDate: {
			Event: vocabulary.EventMetadataModification,
		},
		vocabulary.PremisDateCreatedByApplication: {
			Target: vocabulary.PremisDateCreatedByApplication,
			Kind:   ValueDate,
		},
		vocabulary.PremisHasEventDateTime: {
			Target: vocabulary.PremisHasEventDateTime,
			Kind:   ValueDate,
		},
	}
}

// Merge returns a copy of the table with overrides applied on top.
func (t MappingTable) Merge(overrides MappingTable) MappingTable {
	merged := make(MappingTable, len(t)+len(overrides))
	for k, v := range t {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// Lookup resolves the mapping of predicate. Unrecognised predicates map to
// themselves. An as-given kind is resolved from isLiteral, unless the target
// predicate is itself a date predicate of the table.
func (t MappingTable) Lookup(predicate string, isLiteral bool) MappingEntry {
	entry, ok := t[predicate]
	if !ok {
		entry = MappingEntry{Target: predicate}
	}
	if entry.Event != "" {
		return entry
	}
	if entry.Target == "" {
		entry.Target = predicate
	}
	if entry.Kind != ValueAsGiven {
		return entry
	}

	if target, ok := t[entry.Target]; ok && target.Kind == ValueDate && target.Event == "" {
		entry.Kind = ValueDate
	} else if isLiteral {
		entry.Kind = ValueLiteral
	} else {
		entry.Kind = ValueURI
	}
	return entry
}

// PropertyMapper translates one legacy property into delta triples.
// Alternate mapping policies implement this interface.
type PropertyMapper interface {
	MapProperty(delta *domain.Delta, predicate, value string, isLiteral bool)
}

// Ensure TableMapper implements the interface.
var _ PropertyMapper = (*TableMapper)(nil)

// TableMapper is a PropertyMapper driven by a MappingTable.
type TableMapper struct {
	table MappingTable
}

// NewTableMapper creates a mapper over table.
// A nil table uses DefaultMappingTable.
func NewTableMapper(table MappingTable) *TableMapper {
	if table == nil {
		table = DefaultMappingTable()
	}
	return &TableMapper{table: table}
}

// MapProperty adds the triples for one property to delta.
// Event predicates add an audit event and no direct property.
func (m *TableMapper) MapProperty(delta *domain.Delta, predicate, value string, isLiteral bool) {
	entry := m.table.Lookup(predicate, isLiteral)
	if entry.Event != "" {
		AddDateEvent(delta, entry.Event, value)
		return
	}

	switch entry.Kind {
	case ValueDate:
		UpdateDateTriple(delta, entry.Target, value)
	case ValueURI:
		UpdateURITriple(delta, entry.Target, value)
	default:
		UpdateLiteralTriple(delta, entry.Target, value)
	}
}
