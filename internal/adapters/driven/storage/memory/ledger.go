package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driven"
)

// Ensure Ledger implements the interface.
var _ driven.MigrationLedger = (*Ledger)(nil)

// Ledger is an in-memory implementation of driven.MigrationLedger.
// It backs dry runs, where nothing should be written to disk.
type Ledger struct {
	mu       sync.RWMutex
	runs     map[string]domain.MigrationRun
	outcomes []domain.ObjectOutcome
}

// NewLedger creates a new in-memory ledger.
func NewLedger() *Ledger {
	return &Ledger{
		runs: make(map[string]domain.MigrationRun),
	}
}

// SaveRun stores or updates a run.
func (l *Ledger) SaveRun(_ context.Context, run domain.MigrationRun) error {
	if run.ID == "" {
		return fmt.Errorf("%w: run ID is required", domain.ErrInvalidInput)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.runs[run.ID] = run
	return nil
}

// GetRun retrieves a run by ID.
func (l *Ledger) GetRun(_ context.Context, id string) (*domain.MigrationRun, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	run, ok := l.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}

// ListRuns returns runs, most recent first.
func (l *Ledger) ListRuns(_ context.Context) ([]domain.MigrationRun, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	runs := make([]domain.MigrationRun, 0, len(l.runs))
	for _, run := range l.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	return runs, nil
}

// RecordObject stores the outcome of one object in a run.
func (l *Ledger) RecordObject(_ context.Context, outcome domain.ObjectOutcome) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.runs[outcome.RunID]; !ok {
		return fmt.Errorf("record object %s: run %s: %w", outcome.PID, outcome.RunID, domain.ErrNotFound)
	}
	if outcome.RecordedAt.IsZero() {
		outcome.RecordedAt = time.Now()
	}
	l.outcomes = append(l.outcomes, outcome)
	return nil
}

// ListObjects returns the outcomes recorded for a run in recording order.
func (l *Ledger) ListObjects(_ context.Context, runID string) ([]domain.ObjectOutcome, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var outcomes []domain.ObjectOutcome
	for _, o := range l.outcomes {
		if o.RunID == runID {
			outcomes = append(outcomes, o)
		}
	}
	return outcomes, nil
}

// IsCompleted reports whether any run recorded pid as completed.
func (l *Ledger) IsCompleted(_ context.Context, pid string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, o := range l.outcomes {
		if o.PID == pid && o.Status == domain.ObjectCompleted {
			return true, nil
		}
	}
	return false, nil
}
