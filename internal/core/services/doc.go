// Package services implements the driving port interfaces.
// Services contain the core migration logic and orchestrate
// calls to driven ports (adapters).
//
// The version handler turns each legacy object version into property deltas
// and a snapshot; the migration service drives it over an object source.
package services
