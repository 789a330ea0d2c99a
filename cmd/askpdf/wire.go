package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/custodia-labs/askpdf/internal/adapters/driven/config/file"
	filestore "github.com/custodia-labs/askpdf/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/askpdf/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/askpdf/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/askpdf/internal/adapters/driving/cli"
	"github.com/custodia-labs/askpdf/internal/connectors/filesystem"
	"github.com/custodia-labs/askpdf/internal/core/domain"
	"github.com/custodia-labs/askpdf/internal/core/ports/driven"
	"github.com/custodia-labs/askpdf/internal/core/ports/driving"
	"github.com/custodia-labs/askpdf/internal/core/services"
	"github.com/custodia-labs/askpdf/internal/extractors"
	"github.com/custodia-labs/askpdf/internal/extractors/pdf"
	"github.com/custodia-labs/askpdf/internal/extractors/plaintext"
	"github.com/custodia-labs/askpdf/internal/logger"
)

// EnvHome overrides the configuration directory when --config-dir is unset.
const EnvHome = "ASKPDF_HOME"

// bootstrap builds the services behind every command.
func bootstrap(configDir string) (*cli.Dependencies, error) {
	if configDir == "" {
		configDir = os.Getenv(EnvHome)
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	logger.Debug("config: %s", configStore.Path())

	settingsService := services.NewSettingsService(configStore)

	return &cli.Dependencies{
		Controllers: controllerFactory(settingsService, newExtractor()),
		Settings:    settingsService,
		Watch:       watchFunc(settingsService),
	}, nil
}

// newExtractor registers every extractor askpdf ships with.
// source.extensions decides which of them a refresh uses.
func newExtractor() *extractors.Registry {
	registry := extractors.NewRegistry()
	registry.Register(".pdf", pdf.New())
	registry.Register(".txt", plaintext.New())
	return registry
}

func controllerFactory(settingsService driving.SettingsService, extractor driven.Extractor) driving.ControllerFactory {
	return func(_ context.Context, dir string) (driving.IndexController, error) {
		settings, err := settingsService.Get()
		if err != nil {
			return nil, err
		}

		if slices.Contains(settings.Source.Extensions, ".pdf") {
			if err := pdf.CheckAvailable(); err != nil {
				logger.Warn("%v: PDFs will be skipped. %s", err, pdf.InstallInstructions())
			}
		}

		pages, err := services.NewPageStore(dir, newIndexStore(dir, settings.Index), extractor, settings)
		if err != nil {
			return nil, err
		}
		logger.Debug("index: %s (%s)", pages.IndexPath(), settings.Index.Backend)
		return services.NewController(pages, settings), nil
	}
}

func newIndexStore(dir string, s domain.IndexSettings) driven.IndexStore {
	switch s.Backend {
	case domain.IndexBackendSQLite:
		return sqlite.NewIndexStore(dir, s.ResolvedFileName())
	case domain.IndexBackendMemory:
		return memory.NewIndexStore()
	default:
		return filestore.NewIndexStore(dir, s.ResolvedFileName())
	}
}

// watchFunc watches with the fsnotify directory watcher, coalescing
// refreshes to at most one per watch.interval_seconds.
func watchFunc(settingsService driving.SettingsService) driving.WatchFunc {
	return func(
		ctx context.Context,
		controller driving.IndexController,
		dir string,
		onRefresh func(*domain.RefreshReport),
	) error {
		settings, err := settingsService.Get()
		if err != nil {
			return err
		}

		dirWatcher := filesystem.NewWatcher()
		defer dirWatcher.Close()

		return services.NewWatcher(controller, dirWatcher, dir, settings, onRefresh).Start(ctx)
	}
}
