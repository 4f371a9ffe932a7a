package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driven"
	"github.com/custodia-labs/fedora-migrate/internal/core/ports/driving"
	"github.com/custodia-labs/fedora-migrate/internal/logger"
	"github.com/custodia-labs/fedora-migrate/internal/vocabulary"
)

// Ensure VersionHandler implements the interface.
var _ driving.VersionHandler = (*VersionHandler)(nil)

// Delta targets reported to the metrics recorder.
const (
	targetObject     = "object"
	targetDatastream = "datastream"
)

// SnapshotLabel returns the name of the snapshot taken for a version.
func SnapshotLabel(versionIndex int) string {
	return fmt.Sprintf("imported-version-%d", versionIndex)
}

// VersionHandler replays an object's version history against the target
// repository, one version at a time, and snapshots every version.
type VersionHandler struct {
	repo     driven.TargetRepository
	paths    driven.PathMapper
	settings domain.MigrationSettings

	dc      *DCShredder
	relsExt *RelsExtShredder
	relsInt *RelsIntShredder

	rdf     driven.RDFParser
	mapper  PropertyMapper
	dsProps DatastreamPropertyUpdater
	metrics driven.MetricsRecorder
	now     func() time.Time
}

// NewVersionHandler creates a handler with the default property mapping.
func NewVersionHandler(
	repo driven.TargetRepository,
	paths driven.PathMapper,
	rdfParser driven.RDFParser,
	dcParser driven.DCParser,
	settings domain.MigrationSettings,
) *VersionHandler {
	h := &VersionHandler{
		repo:     repo,
		paths:    paths,
		settings: settings,
		dc:       NewDCShredder(dcParser),
		rdf:      rdfParser,
		metrics:  driven.NopMetrics{},
		now:      time.Now,
	}
	h.SetPropertyMapper(NewTableMapper(nil))
	h.SetDatastreamPropertyUpdater(NewDefaultDatastreamProperties(h.now))
	return h
}

// SetPropertyMapper replaces the mapper used for object properties and
// relationship statements.
func (h *VersionHandler) SetPropertyMapper(mapper PropertyMapper) {
	h.mapper = mapper
	h.relsExt = NewRelsExtShredder(h.rdf, mapper)
	h.relsInt = NewRelsIntShredder(h.rdf, mapper)
}

// SetDatastreamPropertyUpdater replaces the datastream property policy.
func (h *VersionHandler) SetDatastreamPropertyUpdater(updater DatastreamPropertyUpdater) {
	h.dsProps = updater
}

// SetMetrics sets the metrics recorder.
func (h *VersionHandler) SetMetrics(metrics driven.MetricsRecorder) {
	if metrics == nil {
		metrics = driven.NopMetrics{}
	}
	h.metrics = metrics
}

// SetClock sets the clock used for migration events. The default datastream
// property updater is rebuilt to share it.
func (h *VersionHandler) SetClock(now func() time.Time) {
	h.now = now
	if _, ok := h.dsProps.(*DefaultDatastreamProperties); ok {
		h.dsProps = NewDefaultDatastreamProperties(now)
	}
}

// objectSession is the state of migrating one object's history.
// It lives for exactly one ProcessObjectVersions call.
type objectSession struct {
	pid         string
	object      driven.ObjectResource
	datastreams map[string]driven.DatastreamResource
}

// changedDatastream is a datastream version with its resolved kind.
type changedDatastream struct {
	version domain.DatastreamVersion
	kind    domain.DatastreamKind
}

// ProcessObjectVersions migrates versions in order. Any failure aborts the
// object; versions already snapshotted stay in the target.
func (h *VersionHandler) ProcessObjectVersions(ctx context.Context, versions []domain.ObjectVersion) error {
	if h.repo == nil || h.paths == nil {
		return fmt.Errorf("%w: target repository and path mapper are required", domain.ErrNotConfigured)
	}

	session := &objectSession{datastreams: make(map[string]driven.DatastreamResource)}
	for i := range versions {
		if err := h.processVersion(ctx, session, &versions[i]); err != nil {
			return err
		}
	}
	return nil
}

// processVersion applies one version and takes its snapshot.
func (h *VersionHandler) processVersion(ctx context.Context, session *objectSession, version *domain.ObjectVersion) error {
	pid := version.Object.PID
	logger.Debug("Considering object %s version at %s.", pid, version.VersionDate)

	if session.object == nil {
		object, err := h.repo.CreateObject(ctx, h.paths.MapObjectPath(pid))
		if err != nil {
			return fmt.Errorf("%w: create object %s: %w", domain.ErrTransport, pid, err)
		}
		session.pid = pid
		session.object = object
	}

	delta := domain.NewDelta()
	for _, changed := range h.orderChanged(version.ChangedDatastreams) {
		v := changed.version
		logger.Debug("Considering changed datastream version %s (%s)", v.VersionID, changed.kind)
		h.metrics.DatastreamProcessed(changed.kind)

		var err error
		switch changed.kind {
		case domain.KindSimpleMetadata:
			err = h.dc.Shred(v, delta)
		case domain.KindOutboundRelations:
			err = h.relsExt.Shred(pid, v, delta)
		case domain.KindInboundRelations:
			err = h.migrateInbound(ctx, session, v)
		case domain.KindRedirect:
			err = h.migrateRedirect(ctx, pid, v)
		case domain.KindManagedContent:
			err = h.migrateContent(ctx, session, v)
		default:
			err = fmt.Errorf("%w: unhandled datastream kind %s", domain.ErrInvalidInput, changed.kind)
		}
		if err != nil {
			return err
		}
	}

	h.addObjectProperties(version, delta)
	if err := h.applyDelta(ctx, session.object, delta, targetObject); err != nil {
		return err
	}

	label := SnapshotLabel(version.VersionIndex)
	if err := session.object.CreateVersionSnapshot(ctx, label); err != nil {
		return fmt.Errorf("%w: snapshot %s of %s: %w", domain.ErrTransport, label, pid, err)
	}
	h.metrics.VersionCheckpointed()
	return nil
}

// orderChanged classifies the changed datastreams and orders them so that
// content datastreams are created before RELS-INT addresses them.
// The relative order within a stage is preserved.
func (h *VersionHandler) orderChanged(versions []domain.DatastreamVersion) []changedDatastream {
	changed := make([]changedDatastream, len(versions))
	for i, v := range versions {
		changed[i] = changedDatastream{version: v, kind: domain.ClassifyDatastream(v, h.settings)}
	}
	sort.SliceStable(changed, func(i, j int) bool {
		return changed[i].kind.Stage() < changed[j].kind.Stage()
	})
	return changed
}

// addObjectProperties adds the migration event on the first version and
// the mapped object properties on the last.
func (h *VersionHandler) addObjectProperties(version *domain.ObjectVersion, delta *domain.Delta) {
	if version.IsFirst {
		if now, ok := currentTimestamp(h.now); ok {
			AddDateEvent(delta, vocabulary.EventMigration, now)
		}
	}

	if version.IsLast {
		for _, p := range version.Properties {
			h.mapper.MapProperty(delta, p.Name, p.Value, true)
		}
	}
}

// migrateContent creates the datastream on first sight and replaces its
// content afterwards, then applies the datastream's property delta.
func (h *VersionHandler) migrateContent(ctx context.Context, session *objectSession, v domain.DatastreamVersion) error {
	ds, err := h.storeContent(ctx, session, v)
	if err != nil {
		return err
	}

	delta := domain.NewDelta()
	h.dsProps.BuildDatastreamDelta(delta, v)
	return h.applyDelta(ctx, ds, delta, targetDatastream)
}

// storeContent writes the version's content to the bound datastream.
func (h *VersionHandler) storeContent(
	ctx context.Context,
	session *objectSession,
	v domain.DatastreamVersion,
) (driven.DatastreamResource, error) {
	rc, err := v.OpenContent()
	if err != nil {
		return nil, fmt.Errorf("%w: read content of %s: %w", domain.ErrTransport, v.VersionID, err)
	}
	defer rc.Close()

	content := domain.Content{Body: rc, MIMEType: v.MIMEType}

	ds, ok := session.datastreams[v.DatastreamID]
	if !ok {
		path := h.paths.MapDatastreamPath(session.pid, v.DatastreamID)
		ds, err = h.repo.CreateDatastream(ctx, path, content)
		if err != nil {
			return nil, fmt.Errorf("%w: create datastream %s: %w", domain.ErrTransport, path, err)
		}
		session.datastreams[v.DatastreamID] = ds
		return ds, nil
	}

	if err := ds.UpdateContent(ctx, content); err != nil {
		return nil, fmt.Errorf("%w: update content of %s: %w", domain.ErrTransport, ds.Path(), err)
	}
	return ds, nil
}

// migrateRedirect points a target resource at the datastream's URL.
func (h *VersionHandler) migrateRedirect(ctx context.Context, pid string, v domain.DatastreamVersion) error {
	path := h.paths.MapDatastreamPath(pid, v.DatastreamID)
	if err := h.repo.CreateOrUpdateRedirectDatastream(ctx, path, v.ExternalOrRedirectURL); err != nil {
		return fmt.Errorf("%w: redirect %s: %w", domain.ErrTransport, path, err)
	}
	return nil
}

// migrateInbound applies RELS-INT statements to the datastreams they
// describe. Datastreams not yet migrated in this object are skipped.
func (h *VersionHandler) migrateInbound(ctx context.Context, session *objectSession, v domain.DatastreamVersion) error {
	updates, err := h.relsInt.Shred(v)
	if err != nil {
		return err
	}

	for _, u := range updates {
		ds, ok := session.datastreams[u.DatastreamID]
		if !ok {
			logger.Warn("Skipping RELS-INT statement for %s/%s: datastream not migrated yet", session.pid, u.DatastreamID)
			continue
		}
		if err := h.applyDelta(ctx, ds, u.Delta, targetDatastream); err != nil {
			return err
		}
	}
	return nil
}

// applyDelta sends delta to resource when the apply policy allows it.
func (h *VersionHandler) applyDelta(ctx context.Context, resource driven.Resource, delta *domain.Delta, target string) error {
	if !ShouldApplyDelta(delta) {
		if !delta.IsEmpty() {
			logger.Debug("Withholding %s update of %s: %d removals, %d insertions",
				target, resource.Path(), delta.RemoveCount(), delta.InsertCount())
		}
		h.metrics.DeltaSkipped(target)
		return nil
	}

	if err := resource.UpdateProperties(ctx, delta); err != nil {
		return fmt.Errorf("%w: update properties of %s: %w", domain.ErrTransport, resource.Path(), err)
	}
	h.metrics.DeltaApplied(target)
	return nil
}
