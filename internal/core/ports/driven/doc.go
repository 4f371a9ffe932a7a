// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for a migration to run:
//
//   - ObjectSource: Yields legacy objects and their version histories
//   - PathMapper: Maps legacy identifiers to target paths
//   - TargetRepository: Creates and updates target resources
//   - RDFParser: Reads RELS-EXT and RELS-INT graphs
//   - DCParser: Reads Dublin Core records
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - MigrationLedger: Run history. Without it runs are not recorded and
//     completed objects cannot be skipped.
//   - MetricsRecorder: Counters. NopMetrics is used when nil.
//   - ConfigStore: Application configuration.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
