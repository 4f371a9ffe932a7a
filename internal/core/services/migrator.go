package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driven"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driving"
	"github.com/custodia-labs/fedora-migrate/internal/logger"
)

// Ensure MigrationService implements the interface.
var _ driving.Migrator = (*MigrationService)(nil)

// MigrationService walks an object source and hands each object's history
// to a version handler, stopping at the configured item limit.
type MigrationService struct {
	source   driven.ObjectSource
	handler  driving.VersionHandler
	ledger   driven.MigrationLedger
	metrics  driven.MetricsRecorder
	settings domain.MigrationSettings

	mu     sync.RWMutex
	status driving.MigrationStatus
}

// NewMigrationService creates a migrator. The ledger is optional; without it
// runs are not recorded and skip_completed has no effect.
func NewMigrationService(
	source driven.ObjectSource,
	handler driving.VersionHandler,
	ledger driven.MigrationLedger,
	settings domain.MigrationSettings,
) *MigrationService {
	return &MigrationService{
		source:   source,
		handler:  handler,
		ledger:   ledger,
		metrics:  driven.NopMetrics{},
		settings: settings,
	}
}

// SetMetrics sets the metrics recorder.
func (m *MigrationService) SetMetrics(metrics driven.MetricsRecorder) {
	if metrics == nil {
		metrics = driven.NopMetrics{}
	}
	m.metrics = metrics
}

// Status returns the progress of the current or last run.
func (m *MigrationService) Status() driving.MigrationStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Run migrates objects in source order. A negative limit means no limit;
// otherwise at most limit objects are attempted. The first object failure
// ends the run with an *domain.ObjectError.
func (m *MigrationService) Run(ctx context.Context) error {
	if m.source == nil || m.handler == nil {
		return fmt.Errorf("%w: object source and version handler are required", domain.ErrNotConfigured)
	}

	run := domain.MigrationRun{
		ID:        uuid.New().String(),
		Status:    domain.RunRunning,
		Limit:     m.settings.Limit,
		StartedAt: time.Now(),
	}
	m.mu.Lock()
	m.status = driving.MigrationStatus{RunID: run.ID, Running: true}
	m.mu.Unlock()

	m.saveRun(ctx, run)
	logger.Section("Migration " + run.ID)

	err := m.migrateAll(ctx, run.ID)

	status := m.finish(err)
	run.ObjectsProcessed = status.ObjectsProcessed
	run.FinishedAt = time.Now()
	run.Status = domain.RunCompleted
	if err != nil {
		run.Status = domain.RunFailed
		run.Error = err.Error()
	}
	m.saveRun(context.WithoutCancel(ctx), run)
	return err
}

// migrateAll iterates the source until it is exhausted or the limit is hit.
func (m *MigrationService) migrateAll(ctx context.Context, runID string) error {
	limit := m.settings.Limit
	for index := 0; ; index++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if limit >= 0 && index >= limit {
			logger.Info("Reached limit of %d objects", limit)
			return nil
		}

		processor, err := m.source.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read next object: %w", err)
		}

		pid := processor.Object().PID
		if err := m.migrateObject(ctx, runID, pid, processor); err != nil {
			return err
		}
	}
}

// migrateObject migrates or skips one object and records the outcome.
func (m *MigrationService) migrateObject(ctx context.Context, runID, pid string, processor driven.ObjectProcessor) error {
	m.setCurrent(pid)

	if m.settings.SkipCompleted && m.ledger != nil {
		done, err := m.ledger.IsCompleted(ctx, pid)
		if err != nil {
			logger.Warn("Could not check ledger for %s: %v", pid, err)
		} else if done {
			logger.Info("Skipping \"%s\": already migrated", pid)
			m.recordOutcome(ctx, runID, pid, domain.ObjectSkipped, 0, nil)
			m.metrics.ObjectFinished(domain.ObjectSkipped)
			m.mu.Lock()
			m.status.ObjectsSkipped++
			m.mu.Unlock()
			return nil
		}
	}

	logger.Info("Processing \"%s\"...", pid)

	versions, err := processor.Versions(ctx)
	if err == nil {
		err = m.handler.ProcessObjectVersions(ctx, versions)
	}
	if err != nil {
		logger.Error("Failed to migrate %s: %v", pid, err)
		m.recordOutcome(ctx, runID, pid, domain.ObjectFailed, 0, err)
		m.metrics.ObjectFinished(domain.ObjectFailed)
		return &domain.ObjectError{PID: pid, Err: err}
	}

	m.recordOutcome(ctx, runID, pid, domain.ObjectCompleted, len(versions), nil)
	m.metrics.ObjectFinished(domain.ObjectCompleted)
	m.mu.Lock()
	m.status.ObjectsProcessed++
	m.mu.Unlock()
	return nil
}

func (m *MigrationService) setCurrent(pid string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status.CurrentPID = pid
}

// finish marks the run as stopped and returns the final status.
func (m *MigrationService) finish(err error) driving.MigrationStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status.Running = false
	m.status.CurrentPID = ""
	if err != nil {
		m.status.LastError = err.Error()
	}
	return m.status
}

// saveRun persists run. Ledger failures are logged, never fatal.
func (m *MigrationService) saveRun(ctx context.Context, run domain.MigrationRun) {
	if m.ledger == nil {
		return
	}
	if err := m.ledger.SaveRun(ctx, run); err != nil {
		logger.Warn("Failed to save run %s: %v", run.ID, err)
	}
}

func (m *MigrationService) recordOutcome(
	ctx context.Context,
	runID, pid string,
	status domain.ObjectStatus,
	versions int,
	cause error,
) {
	if m.ledger == nil {
		return
	}
	outcome := domain.ObjectOutcome{
		RunID:      runID,
		PID:        pid,
		Status:     status,
		Versions:   versions,
		RecordedAt: time.Now(),
	}
	if cause != nil {
		outcome.Error = cause.Error()
	}
	if err := m.ledger.RecordObject(context.WithoutCancel(ctx), outcome); err != nil {
		logger.Warn("Failed to record outcome for %s: %v", pid, err)
	}
}
