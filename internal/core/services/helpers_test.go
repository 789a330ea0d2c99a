package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askpdf/internal/core/domain"
)

// fakeExtractor serves page texts from memory, keyed by file name.
type fakeExtractor struct {
	mu    sync.Mutex
	pages map[string][]string
	fail  map[string]error
	delay map[string]time.Duration
	calls []string
}

func newFakeExtractor() *fakeExtractor {
	return &fakeExtractor{
		pages: make(map[string][]string),
		fail:  make(map[string]error),
		delay: make(map[string]time.Duration),
	}
}

func (f *fakeExtractor) Supports(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".pdf")
}

func (f *fakeExtractor) Extract(ctx context.Context, path string) ([]string, error) {
	name := filepath.Base(path)
	f.mu.Lock()
	f.calls = append(f.calls, name)
	pages, err, delay := f.pages[name], f.fail[name], f.delay[name]
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return pages, nil
}

func (f *fakeExtractor) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// addPDF creates an empty placeholder file and registers its pages.
func addPDF(t *testing.T, f *fakeExtractor, dir, name string, pages ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600))
	f.mu.Lock()
	f.pages[name] = pages
	f.mu.Unlock()
	return path
}

func testSettings() domain.Settings {
	s := domain.DefaultSettings()
	s.Vector.Features = 1 << 18
	return s
}
