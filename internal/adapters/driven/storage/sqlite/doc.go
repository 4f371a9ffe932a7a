// Package sqlite provides the SQLite-backed migration ledger.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. It records every migration run and the outcome of each
// object in it, which backs the history command and the skip_completed
// setting.
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files.
//
// # Data Location
//
// By default, the database is stored at ~/.fedora-migrate/data/ledger.db
package sqlite
