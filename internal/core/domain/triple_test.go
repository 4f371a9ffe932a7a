package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerm_String(t *testing.T) {
	tests := []struct {
		name string
		term Term
		want string
	}{
		{"self", Self, "<>"},
		{"iri", IRI("http://purl.org/dc/terms/title"), "<http://purl.org/dc/terms/title>"},
		{"literal", Literal("hello"), `"hello"`},
		{"escaped literal", Literal("a \"quoted\"\nline\\"), `"a \"quoted\"\nline\\"`},
		{"typed literal", TypedLiteral("2015-01-01T00:00:00Z", "http://www.w3.org/2001/XMLSchema#dateTime"),
			`"2015-01-01T00:00:00Z"^^<http://www.w3.org/2001/XMLSchema#dateTime>`},
		{"blank", Blank("b0"), "_:b0"},
		{"variable", Variable("o3"), "?o3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.term.String())
		})
	}
}

func TestTriple_String(t *testing.T) {
	tr := Triple{Subject: Self, Predicate: IRI("http://example.org/p"), Object: Variable("o0")}
	assert.Equal(t, "<> <http://example.org/p> ?o0 .", tr.String())
}

func TestDelta_PlaceholdersAreUnique(t *testing.T) {
	d := NewDelta()

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		p := d.Placeholder()
		assert.Equal(t, TermVariable, p.Kind)
		assert.False(t, seen[p.Value], "placeholder %s handed out twice", p.Value)
		seen[p.Value] = true
	}
}

func TestDelta_SeparateDeltasHaveSeparateSequences(t *testing.T) {
	a := NewDelta()
	b := NewDelta()

	assert.Equal(t, "o0", a.Placeholder().Value)
	assert.Equal(t, "o0", b.Placeholder().Value)
	assert.Equal(t, "o1", a.Placeholder().Value)
}

func TestDelta_ForkSharesSequence(t *testing.T) {
	parent := NewDelta()
	parent.AddRemove(Triple{Self, IRI("http://example.org/a"), parent.Placeholder()})

	child := parent.Fork()
	child.AddRemove(Triple{Self, IRI("http://example.org/b"), child.Placeholder()})
	child.AddInsert(Triple{Self, IRI("http://example.org/b"), Literal("x")})
	blank := child.NewBlank()

	assert.True(t, parent.Fork().IsEmpty())
	assert.Equal(t, "b0", blank.Value)
	assert.Equal(t, "b1", parent.NewBlank().Value)

	parent.Merge(child)

	removes := parent.Removes()
	require.Len(t, removes, 2)
	assert.Equal(t, "o0", removes[0].Object.Value)
	assert.Equal(t, "o1", removes[1].Object.Value)
	assert.Len(t, parent.Inserts(), 1)
}

func TestDelta_CopiesAreIndependent(t *testing.T) {
	d := NewDelta()
	d.AddInsert(Triple{Self, IRI("http://example.org/a"), Literal("x")})

	inserts := d.Inserts()
	inserts[0].Object = Literal("changed")

	assert.Equal(t, "x", d.Inserts()[0].Object.Value)
}

func TestDelta_IsEmpty(t *testing.T) {
	d := NewDelta()
	assert.True(t, d.IsEmpty())

	d.AddInsert(Triple{Self, IRI("http://example.org/a"), Literal("x")})
	assert.False(t, d.IsEmpty())
}
