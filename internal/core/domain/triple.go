package domain

import (
	"fmt"
	"strings"
)

// TermKind distinguishes the node types that can appear in a triple.
type TermKind int

const (
	// TermIRI is a URI reference. The empty IRI denotes the resource being updated.
	TermIRI TermKind = iota

	// TermLiteral is a plain or datatyped literal.
	TermLiteral

	// TermBlank is an anonymous node.
	TermBlank

	// TermVariable is a placeholder matched against existing values.
	TermVariable
)

// Term is a node in a triple.
type Term struct {
	Kind     TermKind
	Value    string
	Datatype string
}

// Self is the subject used for properties of the resource being updated.
var Self = IRI("")

// IRI returns a URI reference term.
func IRI(value string) Term {
	return Term{Kind: TermIRI, Value: value}
}

// Literal returns a plain literal term.
func Literal(value string) Term {
	return Term{Kind: TermLiteral, Value: value}
}

// TypedLiteral returns a literal term with a datatype.
func TypedLiteral(value, datatype string) Term {
	return Term{Kind: TermLiteral, Value: value, Datatype: datatype}
}

// Blank returns an anonymous node term with the given label.
func Blank(label string) Term {
	return Term{Kind: TermBlank, Value: label}
}

// Variable returns a placeholder term.
func Variable(name string) Term {
	return Term{Kind: TermVariable, Value: name}
}

// String renders the term in SPARQL syntax.
func (t Term) String() string {
	switch t.Kind {
	case TermIRI:
		return "<" + t.Value + ">"
	case TermBlank:
		return "_:" + t.Value
	case TermVariable:
		return "?" + t.Value
	default:
		lit := `"` + escapeLiteral(t.Value) + `"`
		if t.Datatype != "" {
			lit += "^^<" + t.Datatype + ">"
		}
		return lit
	}
}

// escapeLiteral escapes characters that may not appear raw in a quoted literal.
func escapeLiteral(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}

// Triple is a single RDF statement.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// String renders the triple as a SPARQL triple pattern.
func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.Subject, t.Predicate, t.Object)
}

// Delta is the remove-set and insert-set of a single property update.
//
// The remove-set holds patterns whose object is a placeholder so that the
// current value of a predicate can be cleared without knowing it. Every
// placeholder and blank label handed out by a delta is unique across the
// delta and all of its forks.
type Delta struct {
	seq    *labelSequence
	remove []Triple
	insert []Triple
}

// labelSequence hands out placeholder and blank node labels.
type labelSequence struct {
	placeholders int
	blanks       int
}

// NewDelta returns an empty delta with its own label sequence.
func NewDelta() *Delta {
	return &Delta{seq: &labelSequence{}}
}

// Fork returns an empty delta sharing this delta's label sequence, so its
// triples can later be merged without label collisions.
func (d *Delta) Fork() *Delta {
	return &Delta{seq: d.seq}
}

// Merge appends the triples of a fork to this delta.
func (d *Delta) Merge(other *Delta) {
	d.remove = append(d.remove, other.remove...)
	d.insert = append(d.insert, other.insert...)
}

// Placeholder returns a fresh variable term.
func (d *Delta) Placeholder() Term {
	v := Variable(fmt.Sprintf("o%d", d.seq.placeholders))
	d.seq.placeholders++
	return v
}

// NewBlank returns a fresh anonymous node term.
func (d *Delta) NewBlank() Term {
	b := Blank(fmt.Sprintf("b%d", d.seq.blanks))
	d.seq.blanks++
	return b
}

// AddRemove appends a pattern to the remove-set.
func (d *Delta) AddRemove(t Triple) {
	d.remove = append(d.remove, t)
}

// AddInsert appends a triple to the insert-set.
func (d *Delta) AddInsert(t Triple) {
	d.insert = append(d.insert, t)
}

// Removes returns a copy of the remove-set.
func (d *Delta) Removes() []Triple {
	return append([]Triple(nil), d.remove...)
}

// Inserts returns a copy of the insert-set.
func (d *Delta) Inserts() []Triple {
	return append([]Triple(nil), d.insert...)
}

// RemoveCount returns the size of the remove-set.
func (d *Delta) RemoveCount() int {
	return len(d.remove)
}

// InsertCount returns the size of the insert-set.
func (d *Delta) InsertCount() int {
	return len(d.insert)
}

// IsEmpty reports whether both sets are empty.
func (d *Delta) IsEmpty() bool {
	return len(d.remove) == 0 && len(d.insert) == 0
}
