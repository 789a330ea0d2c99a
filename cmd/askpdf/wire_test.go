package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	filestore "github.com/custodia-labs/askpdf/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/askpdf/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/askpdf/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/askpdf/internal/core/domain"
)

func TestBootstrap_UsesConfigDir(t *testing.T) {
	dir := t.TempDir()

	deps, err := bootstrap(dir)
	require.NoError(t, err)
	require.NotNil(t, deps.Controllers)
	require.NotNil(t, deps.Settings)
	require.NotNil(t, deps.Watch)

	require.NoError(t, deps.Settings.Set("vector.features", "2048"))
	_, err = os.Stat(filepath.Join(dir, "config.toml"))
	assert.NoError(t, err)
}

func TestBootstrap_HomeEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvHome, dir)

	deps, err := bootstrap("")
	require.NoError(t, err)
	require.NoError(t, deps.Settings.Set("index.backend", "sqlite"))

	_, err = os.Stat(filepath.Join(dir, "config.toml"))
	assert.NoError(t, err)
}

func TestNewIndexStore(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		backend domain.IndexBackend
		check   func(t *testing.T, got any)
	}{
		{domain.IndexBackendFile, func(t *testing.T, got any) { assert.IsType(t, &filestore.IndexStore{}, got) }},
		{domain.IndexBackendSQLite, func(t *testing.T, got any) { assert.IsType(t, &sqlite.IndexStore{}, got) }},
		{domain.IndexBackendMemory, func(t *testing.T, got any) { assert.IsType(t, &memory.IndexStore{}, got) }},
	}

	for _, tt := range tests {
		t.Run(tt.backend.String(), func(t *testing.T) {
			tt.check(t, newIndexStore(dir, domain.IndexSettings{Backend: tt.backend}))
		})
	}
}

func TestNewExtractor(t *testing.T) {
	registry := newExtractor()

	assert.Equal(t, []string{".pdf", ".txt"}, registry.Extensions())
}

func TestControllerFactory_TextDirectory(t *testing.T) {
	deps, err := bootstrap(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, deps.Settings.Set("source.extensions", ".txt"))

	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "notes.txt"), []byte("The cat sat on the mat.\fDogs bark."), 0o600))

	ctx := context.Background()
	ctrl, err := deps.Controllers(ctx, src)
	require.NoError(t, err)
	defer ctrl.Close()

	report, err := ctrl.Open(ctx)
	require.NoError(t, err)
	assert.Len(t, report.Added, 1)

	hits, err := ctrl.Ask(ctx, "cat", domain.QueryOptions{Limit: 1})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 0, hits[0].Index)

	_, err = os.Stat(filepath.Join(src, ".askpdf.idx"))
	assert.NoError(t, err)
}
