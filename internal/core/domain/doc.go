// Package domain defines the core entities of the Fedora migration.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ObjectVersion: One point in a legacy object's history
//   - DatastreamVersion: One version of a datastream, with lazy content
//   - DatastreamKind: How a datastream version is migrated
//   - Term, Triple, Delta: The property updates sent to the target
//   - MigrationRun, ObjectOutcome: Ledger records of a run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
