package plaintext

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askpdf/internal/core/domain"
)

func TestSupports(t *testing.T) {
	extractor := New()

	assert.True(t, extractor.Supports("notes.txt"))
	assert.True(t, extractor.Supports("NOTES.TXT"))
	assert.False(t, extractor.Supports("notes.pdf"))
}

func TestExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("page one\fpage two\n"), 0o600))

	pages, err := New().Extract(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, []string{"page one", "page two\n"}, pages)
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := New().Extract(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))

	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestExtract_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Extract(ctx, "notes.txt")

	assert.ErrorIs(t, err, domain.ErrExtraction)
}
