package fcrepo

import (
	"sort"
	"strings"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/vocabulary"
)

// BuildUpdate renders delta as a SPARQL update against the resource it is
// sent to. The remove-set becomes a single DELETE WHERE, so it only matches
// when every pattern matches.
func BuildUpdate(delta *domain.Delta) string {
	var b strings.Builder

	prefixes := make([]string, 0, len(vocabulary.UpdatePrefixes))
	for prefix := range vocabulary.UpdatePrefixes {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)
	for _, prefix := range prefixes {
		b.WriteString("PREFIX " + prefix + ": <" + vocabulary.UpdatePrefixes[prefix] + ">\n")
	}
	b.WriteString("\n")

	writeBlock(&b, "DELETE WHERE", delta.Removes())
	b.WriteString(" ;\n")
	writeBlock(&b, "INSERT DATA", delta.Inserts())
	b.WriteString("\n")

	return b.String()
}

func writeBlock(b *strings.Builder, operation string, triples []domain.Triple) {
	b.WriteString(operation + " {\n")
	for _, t := range triples {
		b.WriteString("  " + t.String() + "\n")
	}
	b.WriteString("}")
}
