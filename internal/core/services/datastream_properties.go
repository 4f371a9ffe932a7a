package services

import (
	"time"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
	"github.com/custodia-labs/fedora-migrate/internal/vocabulary"
)

// DatastreamPropertyUpdater builds the property delta of a migrated
// datastream version. Alternate policies implement this interface.
type DatastreamPropertyUpdater interface {
	BuildDatastreamDelta(delta *domain.Delta, v domain.DatastreamVersion)
}

// Ensure DefaultDatastreamProperties implements the interface.
var _ DatastreamPropertyUpdater = (*DefaultDatastreamProperties)(nil)

// DefaultDatastreamProperties records the migration and creation date on a
// datastream's first version, and its descriptive properties on its last.
type DefaultDatastreamProperties struct {
	now func() time.Time
}

// NewDefaultDatastreamProperties creates the default updater.
// A nil clock uses time.Now.
func NewDefaultDatastreamProperties(now func() time.Time) *DefaultDatastreamProperties {
	if now == nil {
		now = time.Now
	}
	return &DefaultDatastreamProperties{now: now}
}

// BuildDatastreamDelta adds the datastream's properties to delta.
func (p *DefaultDatastreamProperties) BuildDatastreamDelta(delta *domain.Delta, v domain.DatastreamVersion) {
	if v.FirstInObject {
		if now, ok := currentTimestamp(p.now); ok {
			AddDateEvent(delta, vocabulary.EventMigration, now)
		}
		if v.Created != "" {
			UpdateDateTriple(delta, vocabulary.PremisDateCreatedByApplication, v.Created)
		}
	}

	if !v.LastInObject {
		return
	}

	if v.DatastreamID != "" {
		UpdateLiteralTriple(delta, vocabulary.DCTermsIdentifier, v.DatastreamID)
	}
	// The created date of the last version is when the content last changed.
	if v.Created != "" {
		AddDateEvent(delta, vocabulary.EventContentModification, v.Created)
	}
	if v.Label != "" {
		UpdateLiteralTriple(delta, vocabulary.DCTermsTitle, v.Label)
	}
	if v.State != "" {
		UpdateLiteralTriple(delta, vocabulary.AccessObjState, v.State)
	}
	if v.FormatURI != "" {
		UpdateLiteralTriple(delta, vocabulary.PremisFormatDesignation, v.FormatURI)
	}
}
