package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/askpdf/internal/core/domain"
	"github.com/custodia-labs/askpdf/internal/core/ports/driven"
)

// DefaultFileName is the index file name inside a source directory.
const DefaultFileName = ".askpdf.idx"

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore persists an index as a single binary file.
type IndexStore struct {
	path string
}

// NewIndexStore creates a store for the index file name inside dir.
// If name is empty, DefaultFileName is used.
func NewIndexStore(dir, name string) *IndexStore {
	if name == "" {
		name = DefaultFileName
	}
	return &IndexStore{path: filepath.Join(dir, name)}
}

// Load reads and decodes the index file.
func (s *IndexStore) Load(_ context.Context) (*domain.Index, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading index %s: %w", s.path, err)
	}
	idx, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding index %s: %w", s.path, err)
	}
	return idx, nil
}

// Persist atomically replaces the index file.
func (s *IndexStore) Persist(_ context.Context, idx *domain.Index) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp index: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName) //nolint:errcheck
		}
	}()

	if _, err := tmp.Write(Encode(idx)); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("writing temp index: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("syncing temp index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp index: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing index: %w", err)
	}
	committed = true
	return nil
}

// Path returns the index file path.
func (s *IndexStore) Path() string {
	return s.path
}

// Close is a no-op; the file is only open during Load and Persist.
func (s *IndexStore) Close() error {
	return nil
}
