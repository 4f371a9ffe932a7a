package driven

import (
	"context"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
)

// MigrationLedger persists the history of migration runs.
type MigrationLedger interface {
	// SaveRun stores or updates a run.
	SaveRun(ctx context.Context, run domain.MigrationRun) error

	// GetRun retrieves a run by ID.
	GetRun(ctx context.Context, id string) (*domain.MigrationRun, error)

	// ListRuns returns runs, most recent first.
	ListRuns(ctx context.Context) ([]domain.MigrationRun, error)

	// RecordObject stores the outcome of one object in a run.
	RecordObject(ctx context.Context, outcome domain.ObjectOutcome) error

	// ListObjects returns the outcomes recorded for a run in recording order.
	ListObjects(ctx context.Context, runID string) ([]domain.ObjectOutcome, error)

	// IsCompleted reports whether any run recorded pid as completed.
	IsCompleted(ctx context.Context, pid string) (bool, error)
}
