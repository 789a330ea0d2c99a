package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/askpdf/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/askpdf/internal/core/domain"
	"github.com/custodia-labs/askpdf/internal/core/ports/driven"
)

// DefaultFileName is the database file name inside a source directory.
const DefaultFileName = ".askpdf.db"

// formatVersion is written to index_meta on every persist.
const formatVersion = 1

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore persists an index in a single-file SQLite database.
// The database is opened lazily so loading a directory that has never been
// indexed does not create a file.
type IndexStore struct {
	db   *sql.DB
	path string
}

// NewIndexStore creates a store for the database name inside dir.
// If name is empty, DefaultFileName is used.
func NewIndexStore(dir, name string) *IndexStore {
	if name == "" {
		name = DefaultFileName
	}
	return &IndexStore{path: filepath.Join(dir, name)}
}

// Path returns the database file path.
func (s *IndexStore) Path() string {
	return s.path
}

// Close closes the database connection if it was opened.
func (s *IndexStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *IndexStore) open() (*sql.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	db, err := sql.Open("sqlite", s.path+"?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection keeps the single-writer model explicit.
	db.SetMaxOpenConns(1)
	s.db = db
	return db, nil
}

// Load reads every file and page in position order.
func (s *IndexStore) Load(ctx context.Context) (*domain.Index, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("stat index %s: %w", s.path, err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrCorruptIndex, s.path)
	}

	db, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptIndex, err)
	}

	var version int
	if err := db.QueryRowContext(ctx, "SELECT format_version FROM index_meta WHERE id = 1").Scan(&version); err != nil {
		return nil, fmt.Errorf("%w: reading index_meta: %v", domain.ErrCorruptIndex, err)
	}
	if version != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", domain.ErrCorruptIndex, version)
	}

	files, err := queryStrings(ctx, db, "SELECT path FROM files ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("%w: reading files: %v", domain.ErrCorruptIndex, err)
	}
	pages, err := queryStrings(ctx, db, "SELECT content FROM pages ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("%w: reading pages: %v", domain.ErrCorruptIndex, err)
	}
	return &domain.Index{Files: files, Pages: pages}, nil
}

func queryStrings(ctx context.Context, db *sql.DB, query string) ([]string, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Persist replaces the stored index inside a single transaction.
func (s *IndexStore) Persist(ctx context.Context, idx *domain.Index) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	if err := migrate(ctx, db, migrations.FS); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, stmt := range []string{"DELETE FROM files", "DELETE FROM pages"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clearing index: %w", err)
		}
	}
	if err := insertStrings(ctx, tx, "INSERT INTO files (position, path) VALUES (?, ?)", idx.Files); err != nil {
		return fmt.Errorf("inserting files: %w", err)
	}
	if err := insertStrings(ctx, tx, "INSERT INTO pages (position, content) VALUES (?, ?)", idx.Pages); err != nil {
		return fmt.Errorf("inserting pages: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO index_meta (id, format_version, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET format_version = excluded.format_version, updated_at = excluded.updated_at
	`, formatVersion)
	if err != nil {
		return fmt.Errorf("writing index_meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertStrings(ctx context.Context, tx *sql.Tx, query string, values []string) error {
	if len(values) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, v := range values {
		if _, err := stmt.ExecContext(ctx, i, v); err != nil {
			return err
		}
	}
	return nil
}

// migrate runs all pending migrations.
func migrate(ctx context.Context, db *sql.DB, fsys embed.FS) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
