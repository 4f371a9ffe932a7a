package vocabulary

import "strings"

// Namespaces.
const (
	// Fedora3ModelNamespace is the legacy object model namespace.
	Fedora3ModelNamespace = "info:fedora/fedora-system:def/model#"

	// Fedora3ViewNamespace is the legacy view namespace.
	Fedora3ViewNamespace = "info:fedora/fedora-system:def/view#"

	// PremisNamespace is the PREMIS RDF ontology namespace.
	PremisNamespace = "http://www.loc.gov/premis/rdf/v1#"

	// DCTermsNamespace is the Dublin Core terms namespace.
	DCTermsNamespace = "http://purl.org/dc/terms/"

	// DCElementsNamespace is the Dublin Core 1.1 elements namespace used by oai_dc records.
	DCElementsNamespace = "http://purl.org/dc/elements/1.1/"

	// FedoraAccessNamespace is the Fedora 4 access namespace.
	FedoraAccessNamespace = "http://fedora.info/definitions/1/0/access/"

	// AuditNamespace is the Fedora 4 audit namespace.
	AuditNamespace = "http://fedora.info/definitions/v4/audit#"

	// XSDNamespace is the XML Schema datatype namespace.
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"

	// FedoraObjectURIPrefix prefixes every legacy object's canonical URI.
	FedoraObjectURIPrefix = "info:fedora/"
)

// Legacy (Fedora 3) predicates.
const (
	Fedora3CreatedDate      = Fedora3ModelNamespace + "createdDate"
	Fedora3State            = Fedora3ModelNamespace + "state"
	Fedora3Label            = Fedora3ModelNamespace + "label"
	Fedora3OwnerID          = Fedora3ModelNamespace + "ownerId"
	Fedora3LastModifiedDate = Fedora3ViewNamespace + "lastModifiedDate"
)

// Target predicates.
const (
	PremisDateCreatedByApplication = PremisNamespace + "hasDateCreatedByApplication"
	PremisFormatDesignation        = PremisNamespace + "formatDesignation"
	PremisHasEvent                 = PremisNamespace + "hasEvent"
	PremisHasEventType             = PremisNamespace + "hasEventType"
	PremisHasEventDateTime         = PremisNamespace + "hasEventDateTime"

	AccessObjState = FedoraAccessNamespace + "objState"

	DCTermsIdentifier = DCTermsNamespace + "identifier"
	DCTermsTitle      = DCTermsNamespace + "title"
)

// Event types.
const (
	// EventMigration marks the moment a resource was migrated.
	EventMigration = "http://id.loc.gov/vocabulary/preservation/eventType/mig"

	// EventContentModification records the last content change of a datastream.
	EventContentModification = AuditNamespace + "contentModification"

	// EventMetadataModification records the last metadata change of an object.
	EventMetadataModification = AuditNamespace + "metadataModification"
)

// XSDDateTime is the datatype of every date literal written to the target.
const XSDDateTime = XSDNamespace + "dateTime"

// UpdatePrefixes are the namespace prefixes declared on every SPARQL update.
var UpdatePrefixes = map[string]string{
	"dcterms":      DCTermsNamespace,
	"fedoraaccess": FedoraAccessNamespace,
	"fedora3model": Fedora3ModelNamespace,
}

// ObjectURI returns the canonical legacy URI of the object with the given pid.
func ObjectURI(pid string) string {
	return FedoraObjectURIPrefix + pid
}

// LastSegment returns the final path segment of a URI.
// "info:fedora/demo:1/DS1" yields "DS1".
func LastSegment(uri string) string {
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}
