package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driven"
)

// ledgerStore implements driven.MigrationLedger.
type ledgerStore struct {
	store *Store
}

var _ driven.MigrationLedger = (*ledgerStore)(nil)

// SaveRun stores or updates a run.
func (s *ledgerStore) SaveRun(ctx context.Context, run domain.MigrationRun) error {
	if run.ID == "" {
		return fmt.Errorf("%w: run ID is required", domain.ErrInvalidInput)
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO migration_runs (id, status, item_limit, objects_processed, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			objects_processed = excluded.objects_processed,
			error = excluded.error,
			finished_at = excluded.finished_at
	`, run.ID, string(run.Status), run.Limit, run.ObjectsProcessed, run.Error,
		run.StartedAt.UTC(), nullTime(run.FinishedAt))
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *ledgerStore) GetRun(ctx context.Context, id string) (*domain.MigrationRun, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, status, item_limit, objects_processed, error, started_at, finished_at
		FROM migration_runs WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns runs, most recent first.
func (s *ledgerStore) ListRuns(ctx context.Context) ([]domain.MigrationRun, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, status, item_limit, objects_processed, error, started_at, finished_at
		FROM migration_runs ORDER BY started_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.MigrationRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// RecordObject stores the outcome of one object in a run.
func (s *ledgerStore) RecordObject(ctx context.Context, outcome domain.ObjectOutcome) error {
	if outcome.RecordedAt.IsZero() {
		outcome.RecordedAt = time.Now()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO object_outcomes (run_id, pid, status, versions, error, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, outcome.RunID, outcome.PID, string(outcome.Status), outcome.Versions, outcome.Error,
		outcome.RecordedAt.UTC())
	if err != nil {
		return fmt.Errorf("recording object %s: %w", outcome.PID, err)
	}
	return nil
}

// ListObjects returns the outcomes recorded for a run in recording order.
func (s *ledgerStore) ListObjects(ctx context.Context, runID string) ([]domain.ObjectOutcome, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT run_id, pid, status, versions, error, recorded_at
		FROM object_outcomes WHERE run_id = ? ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying objects: %w", err)
	}
	defer rows.Close()

	var outcomes []domain.ObjectOutcome //nolint:prealloc // size unknown from query
	for rows.Next() {
		var o domain.ObjectOutcome
		var status string
		if err := rows.Scan(&o.RunID, &o.PID, &status, &o.Versions, &o.Error, &o.RecordedAt); err != nil {
			return nil, fmt.Errorf("scanning object outcome: %w", err)
		}
		o.Status = domain.ObjectStatus(status)
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating objects: %w", err)
	}
	return outcomes, nil
}

// IsCompleted reports whether any run recorded pid as completed.
func (s *ledgerStore) IsCompleted(ctx context.Context, pid string) (bool, error) {
	var exists bool
	err := s.store.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM object_outcomes WHERE pid = ? AND status = ?)
	`, pid, string(domain.ObjectCompleted)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking object %s: %w", pid, err)
	}
	return exists, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRun scans a run from a row.
func scanRun(row rowScanner) (*domain.MigrationRun, error) {
	var run domain.MigrationRun
	var status string
	var finishedAt sql.NullTime

	if err := row.Scan(&run.ID, &status, &run.Limit, &run.ObjectsProcessed, &run.Error,
		&run.StartedAt, &finishedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	run.Status = domain.RunStatus(status)
	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}
	return &run, nil
}

// nullTime converts a zero time to NULL.
func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
