package domain

import "io"

// ObjectInfo identifies a legacy object.
type ObjectInfo struct {
	// PID is the persistent identifier (e.g., "demo:1").
	PID string

	// Label is the object's human-readable label, if known.
	Label string
}

// ObjectProperty is a single object-level property of a legacy object.
// Name is a predicate URI such as info:fedora/fedora-system:def/model#state.
type ObjectProperty struct {
	Name  string
	Value string
}

// ObjectVersion is one point in a legacy object's history.
// It is produced by an object source and consumed exactly once.
type ObjectVersion struct {
	// Object identifies the object this version belongs to.
	Object ObjectInfo

	// VersionDate is the instant at which this version was recorded.
	VersionDate string

	// VersionIndex is the ordinal of this version within the object's history.
	VersionIndex int

	// IsFirst is true for the earliest version of the object.
	IsFirst bool

	// IsLast is true for the most recent version of the object.
	IsLast bool

	// Properties are the object-level properties.
	Properties []ObjectProperty

	// ChangedDatastreams are the datastream versions created at this version.
	ChangedDatastreams []DatastreamVersion
}

// ControlGroup classifies how a datastream's content is stored.
type ControlGroup string

const (
	// ControlGroupManaged is content held by the repository.
	ControlGroupManaged ControlGroup = "M"

	// ControlGroupInline is XML stored inline in the object record.
	ControlGroupInline ControlGroup = "X"

	// ControlGroupExternal is content fetched from a URL on request.
	ControlGroupExternal ControlGroup = "E"

	// ControlGroupRedirect is content served by redirecting to a URL.
	ControlGroupRedirect ControlGroup = "R"
)

// DatastreamVersion is a single version of a datastream.
// It is scoped to one version's processing pass.
type DatastreamVersion struct {
	// DatastreamID is the datastream identifier (e.g., "DC", "RELS-EXT", "IMG").
	DatastreamID string

	// VersionID is the identifier of this version (e.g., "DC1.0").
	VersionID string

	// ControlGroup is the storage classification of the datastream.
	ControlGroup ControlGroup

	// State is the datastream state ("A", "I" or "D").
	State string

	// MIMEType is the content type of this version.
	MIMEType string

	// Created is the creation timestamp as recorded by the legacy repository.
	Created string

	// Label is the version label.
	Label string

	// FormatURI identifies the content format.
	FormatURI string

	// ExternalOrRedirectURL is the content location for E and R datastreams.
	ExternalOrRedirectURL string

	// FirstInObject is true when this is the datastream's earliest version.
	FirstInObject bool

	// LastInObject is true when this is the datastream's latest version.
	LastInObject bool

	// Open returns the content bytes. Content is read lazily and may be
	// opened more than once.
	Open func() (io.ReadCloser, error)
}

// OpenContent returns a reader for the version's content.
func (v DatastreamVersion) OpenContent() (io.ReadCloser, error) {
	if v.Open == nil {
		return nil, ErrNoContent
	}
	return v.Open()
}

// Content is a payload sent to the target repository.
type Content struct {
	Body     io.Reader
	MIMEType string
}
