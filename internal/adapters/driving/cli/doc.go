// Package cli provides the cobra command tree for fedora-migrate.
//
// Commands run against services supplied by the process entry point through
// Execute, so the package depends only on the core ports.
package cli
