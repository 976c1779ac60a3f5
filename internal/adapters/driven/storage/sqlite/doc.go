// Package sqlite provides a persistent document registry backed by SQLite.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. It is selected with registry.backend = "sqlite"; the
// default backend keeps documents in memory for the process lifetime.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.splitengine/data/registry.db
//
// # Thread Safety
//
// All operations are safe for concurrent use. Writers are serialised by
// SQLite in WAL mode and registration is a single idempotent insert.
package sqlite
