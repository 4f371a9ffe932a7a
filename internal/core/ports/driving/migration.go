package driving

import (
	"context"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
)

// VersionHandler migrates the full version history of one object.
type VersionHandler interface {
	// ProcessObjectVersions replays versions, oldest first, against the
	// target repository and snapshots each one.
	ProcessObjectVersions(ctx context.Context, versions []domain.ObjectVersion) error
}

// Migrator drives a migration over every object of a source.
type Migrator interface {
	// Run migrates objects until the source is exhausted, the limit is
	// reached, or an object fails.
	Run(ctx context.Context) error

	// Status returns the progress of the current or last run.
	Status() MigrationStatus
}

// MigrationStatus represents the progress of a migration run.
type MigrationStatus struct {
	// RunID identifies the run.
	RunID string

	// Running indicates if the run is in progress.
	Running bool

	// ObjectsProcessed is the count of objects migrated.
	ObjectsProcessed int

	// ObjectsSkipped is the count of objects skipped as already completed.
	ObjectsSkipped int

	// CurrentPID is the object being migrated.
	CurrentPID string

	// LastError is the error that ended the run, if any.
	LastError string
}

// HistoryService exposes recorded migration runs.
type HistoryService interface {
	// ListRuns returns runs, most recent first.
	ListRuns(ctx context.Context) ([]domain.MigrationRun, error)

	// RunDetails returns a run and its object outcomes.
	RunDetails(ctx context.Context, runID string) (*domain.MigrationRun, []domain.ObjectOutcome, error)
}
