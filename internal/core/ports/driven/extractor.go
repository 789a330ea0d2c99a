package driven

import "context"

// Extractor obtains the ordered page texts of a source file.
// Extraction is treated as slow and fallible; callers may bound it with ctx.
type Extractor interface {
	// Supports reports whether this extractor handles the file at path.
	// Only the name is inspected; the file is not opened.
	Supports(path string) bool

	// Extract returns the file's pages in document order.
	// Errors wrap domain.ErrExtraction or domain.ErrExtractorUnavailable.
	Extract(ctx context.Context, path string) ([]string, error)
}
