package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fedora-migrate/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
)

func TestHistoryService(t *testing.T) {
	ctx := context.Background()
	ledger := memory.NewLedger()
	require.NoError(t, ledger.SaveRun(ctx, domain.MigrationRun{ID: "run-1", Status: domain.RunCompleted, StartedAt: time.Now()}))
	require.NoError(t, ledger.RecordObject(ctx, domain.ObjectOutcome{RunID: "run-1", PID: "demo:1", Status: domain.ObjectCompleted}))

	svc := NewHistoryService(ledger)

	runs, err := svc.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run, outcomes, err := svc.RunDetails(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RunCompleted, run.Status)
	require.Len(t, outcomes, 1)
	assert.Equal(t, "demo:1", outcomes[0].PID)

	_, _, err = svc.RunDetails(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = svc.RunDetails(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryService_NoLedger(t *testing.T) {
	_, err := NewHistoryService(nil).ListRuns(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}
