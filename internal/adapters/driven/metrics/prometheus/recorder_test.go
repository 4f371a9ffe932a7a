package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.ObjectFinished(domain.ObjectCompleted)
	r.ObjectFinished(domain.ObjectCompleted)
	r.ObjectFinished(domain.ObjectFailed)
	r.VersionCheckpointed()
	r.DatastreamProcessed(domain.KindManagedContent)
	r.DeltaApplied("object")
	r.DeltaSkipped("object")
	r.DeltaSkipped("object")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.objects.WithLabelValues("completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.objects.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.versions))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.datastreams.WithLabelValues(domain.KindManagedContent.String())))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.deltas.WithLabelValues("object", "applied")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.deltas.WithLabelValues("object", "skipped")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 4)
}

func TestNewRecorder_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewRecorder(prometheus.NewRegistry())
		NewRecorder(prometheus.NewRegistry())
	})
}
