// Package file provides file-based configuration for the migration tool.
//
// Adapters:
//   - ConfigStore: TOML settings under ~/.fedora-migrate
//   - LoadMappingFile: YAML property-mapping overrides
package file
