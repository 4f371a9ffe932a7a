package dublincore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/vocabulary"
)

const oaiDC = `<oai_dc:dc xmlns:oai_dc="http://www.openarchives.org/OAI/2.0/oai_dc/"
    xmlns:dc="http://purl.org/dc/elements/1.1/">
  <dc:title>Map of Ohio</dc:title>
  <dc:subject>maps</dc:subject>
  <dc:identifier>demo:1</dc:identifier>
  <dc:subject>
    charts
  </dc:subject>
  <dc:description/>
</oai_dc:dc>`

func TestParser_Parse(t *testing.T) {
	record, err := NewParser().Parse(strings.NewReader(oaiDC))
	require.NoError(t, err)

	dc := vocabulary.DCElementsNamespace
	assert.Equal(t, []string{dc + "title", dc + "subject", dc + "identifier", dc + "description"}, record.Elements)
	assert.Equal(t, []string{"maps", "charts"}, record.Values[dc+"subject"])
	assert.Equal(t, []string{"Map of Ohio"}, record.Values[dc+"title"])
	assert.Equal(t, []string{""}, record.Values[dc+"description"])
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"truncated", `<oai_dc:dc xmlns:dc="http://purl.org/dc/elements/1.1/"><dc:title>x</dc:title>`},
		{"mismatched", `<dc><title>x</subject></dc>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrStructural)
		})
	}
}

func TestParser_EmptyRecord(t *testing.T) {
	record, err := NewParser().Parse(strings.NewReader(`<oai_dc:dc xmlns:oai_dc="http://www.openarchives.org/OAI/2.0/oai_dc/"/>`))
	require.NoError(t, err)
	assert.Empty(t, record.Elements)
}
