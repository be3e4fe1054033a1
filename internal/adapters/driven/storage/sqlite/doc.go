// Package sqlite implements the document sink on a local SQLite database.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Documents land in the raw_comments table keyed by id;
// inserting an id that already exists is a no-op, so re-running an ingestion
// does not duplicate rows.
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files; applied versions are recorded in schema_migrations.
package sqlite
