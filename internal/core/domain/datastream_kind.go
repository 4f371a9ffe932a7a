package domain

// Datastream identifiers with structured content.
const (
	DatastreamDC      = "DC"
	DatastreamRelsExt = "RELS-EXT"
	DatastreamRelsInt = "RELS-INT"
)

// DatastreamKind decides how a datastream version is migrated.
// It is resolved once per datastream version.
type DatastreamKind int

const (
	// KindManagedContent is binary content stored as a target datastream.
	KindManagedContent DatastreamKind = iota

	// KindSimpleMetadata is a Dublin Core record shredded onto the object.
	KindSimpleMetadata

	// KindOutboundRelations is a RELS-EXT graph shredded onto the object.
	KindOutboundRelations

	// KindInboundRelations is a RELS-INT graph shredded onto other datastreams.
	KindInboundRelations

	// KindRedirect is an external or redirect datastream left as a pointer.
	KindRedirect
)

// String returns the kind name.
func (k DatastreamKind) String() string {
	switch k {
	case KindManagedContent:
		return "managed-content"
	case KindSimpleMetadata:
		return "simple-metadata"
	case KindOutboundRelations:
		return "outbound-relations"
	case KindInboundRelations:
		return "inbound-relations"
	case KindRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Stage returns the position of the kind within a version's processing.
// Datastreams with content come first so RELS-INT can address them.
func (k DatastreamKind) Stage() int {
	switch k {
	case KindSimpleMetadata, KindOutboundRelations:
		return 1
	case KindInboundRelations:
		return 2
	default:
		return 0
	}
}

// ClassifyDatastream resolves the kind of a datastream version.
// E and R datastreams are redirects unless the settings ask for their
// content to be imported.
func ClassifyDatastream(v DatastreamVersion, settings MigrationSettings) DatastreamKind {
	switch v.DatastreamID {
	case DatastreamDC:
		return KindSimpleMetadata
	case DatastreamRelsExt:
		return KindOutboundRelations
	case DatastreamRelsInt:
		return KindInboundRelations
	}

	switch {
	case v.ControlGroup == ControlGroupExternal && !settings.ImportExternal:
		return KindRedirect
	case v.ControlGroup == ControlGroupRedirect && !settings.ImportRedirect:
		return KindRedirect
	default:
		return KindManagedContent
	}
}
