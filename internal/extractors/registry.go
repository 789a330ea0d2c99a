package extractors

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/askpdf/internal/core/domain"
	"github.com/custodia-labs/askpdf/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.Extractor = (*Registry)(nil)

// Registry maps lower-case file extensions to extractors.
type Registry struct {
	extractors map[string]driven.Extractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[string]driven.Extractor),
	}
}

// Register associates ext (with leading dot) with an extractor.
// A later registration for the same extension replaces the earlier one.
func (r *Registry) Register(ext string, e driven.Extractor) {
	r.extractors[strings.ToLower(ext)] = e
}

// Extensions returns the registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.extractors))
	for ext := range r.extractors {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func (r *Registry) lookup(path string) (driven.Extractor, bool) {
	e, ok := r.extractors[strings.ToLower(filepath.Ext(path))]
	return e, ok
}

// Supports reports whether an extractor is registered for path's extension.
func (r *Registry) Supports(path string) bool {
	_, ok := r.lookup(path)
	return ok
}

// Extract delegates to the extractor registered for path's extension.
func (r *Registry) Extract(ctx context.Context, path string) ([]string, error) {
	e, ok := r.lookup(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, filepath.Ext(path))
	}
	return e.Extract(ctx, path)
}
