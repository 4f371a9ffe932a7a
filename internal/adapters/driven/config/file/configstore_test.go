package file

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, DefaultDirName, "config.toml"), store.Path())
}

func TestNewConfigStore_NestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	_, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestConfigStore_Getters(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set(domain.ConfigKeyTargetURL, "http://localhost:8080/rest"))
	require.NoError(t, store.Set(domain.ConfigKeyLimit, 25))
	require.NoError(t, store.Set(domain.ConfigKeyTargetRateLimit, 2.5))
	require.NoError(t, store.Set(domain.ConfigKeyImportExternal, true))
	require.NoError(t, store.Set("source.extra", []string{"a", "b"}))

	assert.Equal(t, "http://localhost:8080/rest", store.GetString(domain.ConfigKeyTargetURL))
	assert.Equal(t, 25, store.GetInt(domain.ConfigKeyLimit))
	assert.InDelta(t, 2.5, store.GetFloat(domain.ConfigKeyTargetRateLimit), 1e-9)
	assert.InDelta(t, 25.0, store.GetFloat(domain.ConfigKeyLimit), 1e-9)
	assert.True(t, store.GetBool(domain.ConfigKeyImportExternal))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("source.extra"))

	// wrong types fall back to zero values
	assert.Equal(t, "", store.GetString(domain.ConfigKeyLimit))
	assert.Equal(t, 0, store.GetInt(domain.ConfigKeyTargetURL))
	assert.Zero(t, store.GetFloat(domain.ConfigKeyTargetURL))
	assert.False(t, store.GetBool(domain.ConfigKeyTargetURL))
	assert.Nil(t, store.GetStringSlice(domain.ConfigKeyLimit))

	_, ok := store.Get(domain.ConfigKeyMetricsAddr)
	assert.False(t, ok)
}

func TestConfigStore_PersistsNestedTables(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set(domain.ConfigKeyTargetURL, "http://fcrepo:8080/rest"))
	require.NoError(t, store.Set(domain.ConfigKeyTargetUsername, "fedoraAdmin"))
	require.NoError(t, store.Set(domain.ConfigKeyLimit, 10))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[target]")
	assert.Contains(t, string(raw), "[migration]")

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://fcrepo:8080/rest", reloaded.GetString(domain.ConfigKeyTargetURL))
	assert.Equal(t, "fedoraAdmin", reloaded.GetString(domain.ConfigKeyTargetUsername))
	assert.Equal(t, 10, reloaded.GetInt(domain.ConfigKeyLimit))
}

func TestConfigStore_LoadHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[source]
dir = "/exports/foxml"

[target]
url = "http://localhost:8080/rest"
rate_limit = 4

[migration]
import_external = true
limit = -1
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "/exports/foxml", store.GetString(domain.ConfigKeySourceDir))
	assert.InDelta(t, 4.0, store.GetFloat(domain.ConfigKeyTargetRateLimit), 1e-9)
	assert.True(t, store.GetBool(domain.ConfigKeyImportExternal))
	assert.Equal(t, -1, store.GetInt(domain.ConfigKeyLimit))
}

func TestConfigStore_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Empty(t, store.GetString(domain.ConfigKeyTargetURL))
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[target\nurl ="), 0600))

	_, err := NewConfigStore(dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestConfigStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	store := newTestStore(t)
	require.NoError(t, store.Set(domain.ConfigKeyTargetPassword, "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set(domain.ConfigKeyLimit, n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt(domain.ConfigKeyLimit)
		}()
	}
	wg.Wait()

	_, ok := store.Get(domain.ConfigKeyLimit)
	assert.True(t, ok)
}

func TestIsSecretConfigKey(t *testing.T) {
	assert.True(t, domain.IsSecretConfigKey(domain.ConfigKeyTargetPassword))
	assert.True(t, domain.IsSecretConfigKey(domain.ConfigKeyTargetToken))
	assert.False(t, domain.IsSecretConfigKey(domain.ConfigKeyTargetUsername))
}

func TestExpandMap_InvertsFlatten(t *testing.T) {
	flat := map[string]any{"a.b": 1, "a.c": "x", "d": true}

	assert.Equal(t, flat, flattenMap(expandMap(flat), ""))
}
