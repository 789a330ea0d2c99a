package driven

import (
	"context"

	"github.com/custodia-labs/askpdf/internal/core/domain"
)

// IndexStore persists the index of a single source directory.
// The directory is bound when the store is constructed.
type IndexStore interface {
	// Load reads the persisted index.
	// Returns domain.ErrNotFound when nothing has been persisted yet and an
	// error wrapping domain.ErrCorruptIndex when the stored bytes cannot be
	// decoded. Implementations must never reset a corrupt index themselves.
	Load(ctx context.Context) (*domain.Index, error)

	// Persist replaces the stored index with idx.
	// The replacement is atomic: a crash mid-write leaves either the old or
	// the new index readable, never a partial one.
	Persist(ctx context.Context, idx *domain.Index) error

	// Path returns the location of the persisted index.
	Path() string

	// Close releases resources.
	Close() error
}
