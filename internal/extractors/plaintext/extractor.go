// Package plaintext extracts pages from plain-text files.
// Form feeds separate pages; a file without any is a single page.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/askpdf/internal/core/domain"
	"github.com/custodia-labs/askpdf/internal/core/ports/driven"
	"github.com/custodia-labs/askpdf/internal/extractors"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor reads .txt files.
type Extractor struct{}

// New creates a new plain-text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Supports reports whether path has a .txt extension.
func (e *Extractor) Supports(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".txt")
}

// Extract reads path and splits it into pages.
func (e *Extractor) Extract(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrExtraction, path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", domain.ErrExtraction, path, err)
	}
	return extractors.SplitPages(string(data)), nil
}
