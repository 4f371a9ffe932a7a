// Package prometheus exposes migration counters to Prometheus.
package prometheus

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driven"
	"github.com/custodia-labs/fedora-migrate/internal/logger"
)

// Ensure Recorder implements the interface.
var _ driven.MetricsRecorder = (*Recorder)(nil)

// Recorder counts migration progress in a Prometheus registry.
type Recorder struct {
	objects     *prometheus.CounterVec
	versions    prometheus.Counter
	datastreams *prometheus.CounterVec
	deltas      *prometheus.CounterVec
}

// NewRecorder registers the migration counters with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		objects: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fedora_migrate_objects_total",
			Help: "Objects finished, by outcome",
		}, []string{"status"}),
		versions: factory.NewCounter(prometheus.CounterOpts{
			Name: "fedora_migrate_versions_checkpointed_total",
			Help: "Version snapshots taken in the target repository",
		}),
		datastreams: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fedora_migrate_datastream_versions_total",
			Help: "Datastream versions processed, by kind",
		}, []string{"kind"}),
		deltas: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fedora_migrate_deltas_total",
			Help: "Property deltas built, by target and whether they were applied",
		}, []string{"target", "result"}),
	}
}

// ObjectFinished counts an object by outcome.
func (r *Recorder) ObjectFinished(status domain.ObjectStatus) {
	r.objects.WithLabelValues(string(status)).Inc()
}

// VersionCheckpointed counts a snapshot taken for a version.
func (r *Recorder) VersionCheckpointed() {
	r.versions.Inc()
}

// DatastreamProcessed counts a datastream version by kind.
func (r *Recorder) DatastreamProcessed(kind domain.DatastreamKind) {
	r.datastreams.WithLabelValues(kind.String()).Inc()
}

// DeltaApplied counts a delta sent to the target.
func (r *Recorder) DeltaApplied(target string) {
	r.deltas.WithLabelValues(target, "applied").Inc()
}

// DeltaSkipped counts a delta withheld by the apply policy.
func (r *Recorder) DeltaSkipped(target string) {
	r.deltas.WithLabelValues(target, "skipped").Inc()
}

// Serve exposes gatherer on addr at /metrics until ctx is cancelled.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("Serving metrics on %s/metrics", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
