package cli

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driving"
)

// migMockMigrator implements driving.Migrator for testing.
type migMockMigrator struct {
	mu     sync.Mutex
	status driving.MigrationStatus
	runErr error
	ran    bool
}

func (m *migMockMigrator) Run(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ran = true
	m.status.RunID = "run-1"
	m.status.ObjectsProcessed = 3
	m.status.ObjectsSkipped = 1
	return m.runErr
}

func (m *migMockMigrator) Status() driving.MigrationStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// setupMigrateTest installs a factory that records the options it was given.
func setupMigrateTest(t *testing.T, cfg map[string]any, migrator *migMockMigrator) *MigrateOptions {
	t.Helper()
	got := &MigrateOptions{}
	cleaned := false
	withServices(t, &Services{
		Config: newRootMockConfig(cfg),
		NewMigrator: func(_ context.Context, opts MigrateOptions) (driving.Migrator, func() error, error) {
			*got = opts
			return migrator, func() error {
				cleaned = true
				return nil
			}, nil
		},
	})
	t.Cleanup(func() {
		if migrator.ran {
			assert.True(t, cleaned, "cleanup not called")
		}
	})
	return got
}

func TestMigrateCmd_Use(t *testing.T) {
	assert.Equal(t, "migrate", migrateCmd.Use)
	assert.Contains(t, migrateCmd.Long, "--dry-run")
}

func TestMigrateCmd_UsesConfig(t *testing.T) {
	migrator := &migMockMigrator{}
	got := setupMigrateTest(t, map[string]any{
		domain.ConfigKeySourceDir:       "/exports",
		domain.ConfigKeyTargetURL:       "http://localhost:8080/rest",
		domain.ConfigKeyTargetUsername:  "fedoraAdmin",
		domain.ConfigKeyTargetPassword:  "secret",
		domain.ConfigKeyTargetRateLimit: 2.0,
		domain.ConfigKeyTargetTimeout:   int64(5),
		domain.ConfigKeyLimit:           int64(7),
		domain.ConfigKeyImportExternal:  true,
		domain.ConfigKeyRootPath:        "/migrated",
	}, migrator)

	out, err := executeCommand(t, "migrate")

	require.NoError(t, err)
	assert.True(t, migrator.ran)
	assert.Contains(t, out, "Migrating objects from /exports...")
	assert.Contains(t, out, "3 objects migrated, 1 skipped (run run-1)")

	assert.Equal(t, "/exports", got.SourceDir)
	assert.Equal(t, "http://localhost:8080/rest", got.TargetURL)
	assert.Equal(t, "fedoraAdmin", got.Username)
	assert.Equal(t, "secret", got.Password)
	assert.InDelta(t, 2.0, got.RateLimit, 1e-9)
	assert.Equal(t, 5*time.Second, got.Timeout)
	assert.Equal(t, "/migrated", got.RootPath)
	assert.Equal(t, 7, got.Settings.Limit)
	assert.True(t, got.Settings.ImportExternal)
	assert.False(t, got.Settings.ImportRedirect)
	assert.False(t, got.DryRun)
}

func TestMigrateCmd_FlagsOverrideConfig(t *testing.T) {
	migrator := &migMockMigrator{}
	got := setupMigrateTest(t, map[string]any{
		domain.ConfigKeySourceDir:      "/exports",
		domain.ConfigKeyTargetURL:      "http://localhost:8080/rest",
		domain.ConfigKeyLimit:          int64(7),
		domain.ConfigKeyImportExternal: true,
	}, migrator)

	_, err := executeCommand(t, "migrate",
		"--source", "/other",
		"--limit", "2",
		"--import-external=false",
		"--skip-completed",
		"--mapping-file", "/etc/map.yaml",
		"--metrics-addr", ":9100",
	)

	require.NoError(t, err)
	assert.Equal(t, "/other", got.SourceDir)
	assert.Equal(t, 2, got.Settings.Limit)
	assert.False(t, got.Settings.ImportExternal)
	assert.True(t, got.Settings.SkipCompleted)
	assert.Equal(t, "/etc/map.yaml", got.MappingFile)
	assert.Equal(t, ":9100", got.MetricsAddr)
}

func TestMigrateCmd_DefaultLimitIsUnlimited(t *testing.T) {
	migrator := &migMockMigrator{}
	got := setupMigrateTest(t, nil, migrator)

	_, err := executeCommand(t, "migrate", "--source", "/exports", "--dry-run")

	require.NoError(t, err)
	assert.Equal(t, -1, got.Settings.Limit)
	assert.True(t, got.DryRun)
	assert.Zero(t, got.Timeout, "zero leaves the client default in place")
}

func TestMigrateCmd_DryRunNeedsNoTarget(t *testing.T) {
	migrator := &migMockMigrator{}
	setupMigrateTest(t, nil, migrator)

	out, err := executeCommand(t, "migrate", "--source", "/exports", "--dry-run")

	require.NoError(t, err)
	assert.Contains(t, out, "Dry run")
}

func TestMigrateCmd_MissingSettings(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no source", []string{"migrate", "--target-url", "http://x"}, "no source directory"},
		{"no target", []string{"migrate", "--source", "/exports"}, "no target repository"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			migrator := &migMockMigrator{}
			setupMigrateTest(t, nil, migrator)

			_, err := executeCommand(t, tt.args...)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.want)
			assert.False(t, migrator.ran)
		})
	}
}

func TestMigrateCmd_PasswordPrompt(t *testing.T) {
	migrator := &migMockMigrator{}
	got := setupMigrateTest(t, nil, migrator)
	oldReader := passwordReader
	passwordReader = func(io.Reader) string { return "typed-secret" }
	defer func() { passwordReader = oldReader }()

	out, err := executeCommand(t, "migrate", "--source", "/e", "--target-url", "http://x", "--password-prompt")

	require.NoError(t, err)
	assert.Equal(t, "typed-secret", got.Password)
	assert.Contains(t, out, "Target password:")
	assert.NotContains(t, out, "typed-secret")
}

func TestMigrateCmd_RunError(t *testing.T) {
	migrator := &migMockMigrator{
		runErr: &domain.ObjectError{PID: "demo:1", Err: domain.ErrTransport},
	}
	setupMigrateTest(t, nil, migrator)

	_, err := executeCommand(t, "migrate", "--source", "/e", "--dry-run")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration failed")
	assert.Contains(t, err.Error(), "demo:1")
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestMigrateCmd_FactoryError(t *testing.T) {
	withServices(t, &Services{
		NewMigrator: func(context.Context, MigrateOptions) (driving.Migrator, func() error, error) {
			return nil, nil, errors.New("source dir missing")
		},
	})

	_, err := executeCommand(t, "migrate", "--source", "/e", "--dry-run")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "source dir missing")
}

func TestMigrateCmd_NotConfigured(t *testing.T) {
	withServices(t, nil)

	_, err := executeCommand(t, "migrate")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration service not configured")
}

func TestReadPassword_FallsBackToLine(t *testing.T) {
	r, w := io.Pipe()
	go func() {
		_, _ = w.Write([]byte("pw123\n"))
		_ = w.Close()
	}()

	assert.Equal(t, "pw123", readPassword(r))
}
