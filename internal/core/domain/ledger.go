package domain

import "time"

// RunStatus is the state of a migration run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// MigrationRun records one invocation of the migrator.
type MigrationRun struct {
	// ID is the unique identifier for the run.
	ID string

	// Status is the current state of the run.
	Status RunStatus

	// Limit is the item limit the run was started with (-1 for none).
	Limit int

	// ObjectsProcessed counts objects migrated successfully.
	ObjectsProcessed int

	// Error holds the fatal error message of a failed run.
	Error string

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run ended. Zero while running.
	FinishedAt time.Time
}

// ObjectStatus is the outcome of migrating one object.
type ObjectStatus string

const (
	ObjectCompleted ObjectStatus = "completed"
	ObjectFailed    ObjectStatus = "failed"
	ObjectSkipped   ObjectStatus = "skipped"
)

// ObjectOutcome records what happened to one object in a run.
type ObjectOutcome struct {
	RunID  string
	PID    string
	Status ObjectStatus

	// Versions is the number of versions checkpointed.
	Versions int

	// Error holds the failure message for failed objects.
	Error string

	RecordedAt time.Time
}
