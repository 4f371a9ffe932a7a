package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/core/services"
	"github.com/custodia-labs/fedora-migrate/internal/vocabulary"
)

func writeMappingFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mappings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadMappingFile(t *testing.T) {
	path := writeMappingFile(t, `
mappings:
  - from: info:fedora/fedora-system:def/relations-external#isMemberOf
    to: http://pcdm.org/models#memberOf
    kind: uri
  - from: http://example.org/legacy#touched
    event: http://example.org/events#touch
`)

	table, err := LoadMappingFile(path)
	require.NoError(t, err)
	require.Len(t, table, 2)

	assert.Equal(t, services.MappingEntry{
		Target: "http://pcdm.org/models#memberOf",
		Kind:   services.ValueURI,
	}, table["info:fedora/fedora-system:def/relations-external#isMemberOf"])
	assert.Equal(t, "http://example.org/events#touch", table["http://example.org/legacy#touched"].Event)
}

func TestLoadMappingFile_MergesOverDefaults(t *testing.T) {
	path := writeMappingFile(t, `
mappings:
  - from: `+vocabulary.Fedora3State+`
    to: http://example.org/state
    kind: literal
`)

	overrides, err := LoadMappingFile(path)
	require.NoError(t, err)

	merged := services.DefaultMappingTable().Merge(overrides)
	entry := merged.Lookup(vocabulary.Fedora3State, false)
	assert.Equal(t, "http://example.org/state", entry.Target)
	assert.Equal(t, services.ValueLiteral, entry.Kind)

	// untouched defaults survive
	assert.Equal(t, vocabulary.EventMetadataModification, merged.Lookup(vocabulary.Fedora3LastModifiedDate, true).Event)
}

func TestLoadMappingFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing from", "mappings:\n  - to: http://example.org/x\n"},
		{"unknown kind", "mappings:\n  - from: http://a\n    kind: number\n"},
		{"to and event", "mappings:\n  - from: http://a\n    to: http://b\n    event: http://c\n"},
		{"duplicate", "mappings:\n  - from: http://a\n  - from: http://a\n"},
		{"not yaml", "mappings: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadMappingFile(writeMappingFile(t, tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestLoadMappingFile_Missing(t *testing.T) {
	_, err := LoadMappingFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMappingFile_Empty(t *testing.T) {
	table, err := LoadMappingFile(writeMappingFile(t, ""))
	require.NoError(t, err)
	assert.Empty(t, table)
}
