package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driven"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService reads recorded migration runs from the ledger.
type HistoryService struct {
	ledger driven.MigrationLedger
}

// NewHistoryService creates a history service.
func NewHistoryService(ledger driven.MigrationLedger) *HistoryService {
	return &HistoryService{ledger: ledger}
}

// ListRuns returns runs, most recent first.
func (s *HistoryService) ListRuns(ctx context.Context) ([]domain.MigrationRun, error) {
	if s.ledger == nil {
		return nil, fmt.Errorf("%w: migration ledger", domain.ErrNotConfigured)
	}
	runs, err := s.ledger.ListRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// RunDetails returns a run and its object outcomes.
func (s *HistoryService) RunDetails(ctx context.Context, runID string) (*domain.MigrationRun, []domain.ObjectOutcome, error) {
	if s.ledger == nil {
		return nil, nil, fmt.Errorf("%w: migration ledger", domain.ErrNotConfigured)
	}
	if runID == "" {
		return nil, nil, fmt.Errorf("%w: run ID is required", domain.ErrInvalidInput)
	}

	run, err := s.ledger.GetRun(ctx, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("get run: %w", err)
	}
	outcomes, err := s.ledger.ListObjects(ctx, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("list objects: %w", err)
	}
	return run, outcomes, nil
}
