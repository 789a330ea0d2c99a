package extractors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askpdf/internal/core/domain"
)

type stubExtractor struct {
	pages []string
	calls []string
}

func (s *stubExtractor) Supports(string) bool { return true }

func (s *stubExtractor) Extract(_ context.Context, path string) ([]string, error) {
	s.calls = append(s.calls, path)
	return s.pages, nil
}

func TestRegistry_Dispatch(t *testing.T) {
	pdf := &stubExtractor{pages: []string{"pdf page"}}
	txt := &stubExtractor{pages: []string{"txt page"}}
	r := NewRegistry()
	r.Register(".PDF", pdf)
	r.Register(".txt", txt)

	assert.Equal(t, []string{".pdf", ".txt"}, r.Extensions())
	assert.True(t, r.Supports("/docs/Report.Pdf"))
	assert.False(t, r.Supports("/docs/image.png"))

	pages, err := r.Extract(context.Background(), "/docs/Report.Pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{"pdf page"}, pages)
	assert.Equal(t, []string{"/docs/Report.Pdf"}, pdf.calls)
	assert.Empty(t, txt.calls)
}

func TestRegistry_Unsupported(t *testing.T) {
	r := NewRegistry()

	_, err := r.Extract(context.Background(), "/docs/image.png")

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestSplitPages(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"empty", "", []string{}},
		{"single page no break", "hello", []string{"hello"}},
		{"trailing break dropped", "one\ftwo\f", []string{"one", "two"}},
		{"blank page kept", "one\f\fthree\f", []string{"one", "", "three"}},
		{"invalid utf8 repaired", "caf\xe9\f", []string{"caf�"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitPages(tt.text))
		})
	}
}
