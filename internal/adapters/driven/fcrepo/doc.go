// Package fcrepo is the HTTP client for a Fedora 4 target repository.
//
// Objects are LDP containers and datastreams are LDP non-RDF sources.
// Property deltas are sent as SPARQL updates (PATCH with
// application/sparql-update); binary resources are patched through their
// fcr:metadata description. Snapshots are created by POSTing to fcr:versions
// with the label in the Slug header.
//
// Requests are never retried. A failed request surfaces as *APIError so the
// caller can abort the object being migrated.
package fcrepo
