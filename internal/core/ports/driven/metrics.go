package driven

import "github.com/custodia-labs/fedora-migrate/internal/core/domain"

// MetricsRecorder receives migration counters.
// Implementations must be safe to call with no metrics backend configured.
type MetricsRecorder interface {
	// ObjectFinished counts an object by outcome.
	ObjectFinished(status domain.ObjectStatus)

	// VersionCheckpointed counts a snapshot taken for a version.
	VersionCheckpointed()

	// DatastreamProcessed counts a datastream version by kind.
	DatastreamProcessed(kind domain.DatastreamKind)

	// DeltaApplied counts a delta sent to the target. Target is "object" or "datastream".
	DeltaApplied(target string)

	// DeltaSkipped counts a delta withheld by the apply policy.
	DeltaSkipped(target string)
}

// NopMetrics discards all metrics.
type NopMetrics struct{}

func (NopMetrics) ObjectFinished(domain.ObjectStatus)        {}
func (NopMetrics) VersionCheckpointed()                      {}
func (NopMetrics) DatastreamProcessed(domain.DatastreamKind) {}
func (NopMetrics) DeltaApplied(string)                       {}
func (NopMetrics) DeltaSkipped(string)                       {}
