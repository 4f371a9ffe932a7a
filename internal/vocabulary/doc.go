// Package vocabulary defines the IRIs used when translating Fedora 3 object
// metadata into Fedora 4 resource properties.
//
// Constants are grouped by namespace:
//
//   - Fedora 3 model and view predicates (the legacy side)
//   - PREMIS predicates and event types
//   - Fedora 4 access and audit terms
//   - Dublin Core terms and XML Schema datatypes
//
// The package has no dependencies and is safe to import from domain code.
package vocabulary
