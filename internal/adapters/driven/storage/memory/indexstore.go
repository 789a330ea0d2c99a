// Package memory provides in-process implementations of driven ports.
// They back from-scratch runs and tests.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/askpdf/internal/core/domain"
	"github.com/custodia-labs/askpdf/internal/core/ports/driven"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore is an in-memory implementation of driven.IndexStore.
type IndexStore struct {
	mu         sync.RWMutex
	index      *domain.Index
	persists   int
	loadErr    error
	persistErr error
}

// NewIndexStore creates an empty in-memory index store.
func NewIndexStore() *IndexStore {
	return &IndexStore{}
}

// NewIndexStoreWith creates a store that already holds idx.
func NewIndexStoreWith(idx *domain.Index) *IndexStore {
	return &IndexStore{index: idx.Clone()}
}

// FailLoad makes every subsequent Load return err. Used to simulate a
// corrupt persisted index.
func (s *IndexStore) FailLoad(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// FailPersist makes every subsequent Persist return err.
func (s *IndexStore) FailPersist(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistErr = err
}

// Load returns a copy of the stored index or domain.ErrNotFound.
func (s *IndexStore) Load(_ context.Context) (*domain.Index, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.index == nil {
		return nil, domain.ErrNotFound
	}
	return s.index.Clone(), nil
}

// Persist replaces the stored index with a copy of idx.
func (s *IndexStore) Persist(_ context.Context, idx *domain.Index) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.persistErr != nil {
		return s.persistErr
	}
	s.index = idx.Clone()
	s.persists++
	return nil
}

// Persists returns how many times Persist has been called.
func (s *IndexStore) Persists() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persists
}

// Path returns a descriptive pseudo path.
func (s *IndexStore) Path() string {
	return ":memory:"
}

// Close is a no-op.
func (s *IndexStore) Close() error {
	return nil
}
