// Package sqlite provides a SQLite-based implementation of driven.IndexStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files. Files and pages are stored with their position so load order is
// exactly persist order.
//
// # Data Location
//
// The database lives inside the source directory, by default as .askpdf.db.
// The rollback journal is used instead of WAL so the index stays a single
// file between runs.
//
// # Atomicity
//
// Persist replaces both tables inside one transaction.
package sqlite
