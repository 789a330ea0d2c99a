package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askpdf/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/askpdf/internal/core/domain"
	"github.com/custodia-labs/askpdf/internal/core/ports/driving"
	"github.com/custodia-labs/askpdf/internal/core/services"
	"github.com/custodia-labs/askpdf/internal/extractors/plaintext"
)

// testEnv wires real services over in-memory stores and plain-text sources.
type testEnv struct {
	dir      string
	stores   map[string]*memory.IndexStore
	settings *services.SettingsService
	watched  []string
}

// setupTestServices injects dependencies backed by in-memory stores.
// The previous dependencies are restored when the test ends.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		dir:      t.TempDir(),
		stores:   map[string]*memory.IndexStore{},
		settings: services.NewSettingsService(memory.NewConfigStore()),
	}
	require.NoError(t, env.settings.Set("source.extensions", ".txt"))

	previous := deps
	SetDependencies(&Dependencies{
		Controllers: env.controller,
		Settings:    env.settings,
		Watch:       env.watch,
	})
	t.Cleanup(func() {
		SetDependencies(previous)
		resetFlags()
	})
	resetFlags()
	return env
}

func (e *testEnv) controller(_ context.Context, dir string) (driving.IndexController, error) {
	settings, err := e.settings.Get()
	if err != nil {
		return nil, err
	}
	store, ok := e.stores[dir]
	if !ok {
		store = memory.NewIndexStore()
		e.stores[dir] = store
	}
	pages, err := services.NewPageStore(dir, store, plaintext.New(), settings)
	if err != nil {
		return nil, err
	}
	return services.NewController(pages, settings), nil
}

func (e *testEnv) watch(
	ctx context.Context, ctrl driving.IndexController, dir string, onRefresh func(*domain.RefreshReport),
) error {
	e.watched = append(e.watched, dir)
	report, err := ctrl.Refresh(ctx)
	if err != nil {
		return err
	}
	onRefresh(report)
	return nil
}

func (e *testEnv) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func resetFlags() {
	verbose = false
	configDir = ""
	sourceDir = ""
	askPages = domain.DefaultPageCount
	askOutput = formatText
	indexOutput = formatText
	statusOutput = formatText
	configOutput = formatText
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
