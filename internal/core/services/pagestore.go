package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/askpdf/internal/core/domain"
	"github.com/custodia-labs/askpdf/internal/core/ports/driven"
	"github.com/custodia-labs/askpdf/internal/logger"
)

// PageStore keeps the index of one source directory in step with the files
// in it. Files are extracted one at a time and the index is persisted after
// each, so an interrupted refresh loses at most the file in progress.
type PageStore struct {
	dir       string
	store     driven.IndexStore
	extractor driven.Extractor
	source    domain.SourceSettings
	timeout   time.Duration
}

// NewPageStore creates a page store for dir. dir is made absolute so the
// paths recorded in the index do not depend on the working directory.
func NewPageStore(
	dir string,
	store driven.IndexStore,
	extractor driven.Extractor,
	settings domain.Settings,
) (*PageStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve directory %s: %w", dir, err)
	}
	return &PageStore{
		dir:       abs,
		store:     store,
		extractor: extractor,
		source:    settings.Source,
		timeout:   settings.Extract.Timeout,
	}, nil
}

// Dir returns the absolute source directory.
func (p *PageStore) Dir() string {
	return p.dir
}

// IndexPath returns where the index is persisted.
func (p *PageStore) IndexPath() string {
	return p.store.Path()
}

// Load reads the persisted index. When none exists an empty index is
// persisted and returned. A corrupt index is returned as an error and left
// untouched on disk. If the source directory is missing the empty index is
// returned without persisting; Refresh reports the missing directory.
func (p *PageStore) Load(ctx context.Context) (*domain.Index, error) {
	idx, err := p.store.Load(ctx)
	if err == nil {
		logger.Debug("Loaded index %s: %d files, %d pages", p.store.Path(), idx.FileCount(), idx.PageCount())
		return idx, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	idx = domain.NewIndex()
	if p.checkDir() != nil {
		return idx, nil
	}
	logger.Info("No index at %s, creating one", p.store.Path())
	if err := p.Persist(ctx, idx); err != nil {
		return nil, err
	}
	return idx, nil
}

// Peek reads the persisted index without creating one.
func (p *PageStore) Peek(ctx context.Context) (*domain.Index, error) {
	return p.store.Load(ctx)
}

// AddFile records path with its pages. See domain.Index.AddFile.
func (p *PageStore) AddFile(idx *domain.Index, path string, pages []string) bool {
	return idx.AddFile(path, pages)
}

// Persist writes idx to the store.
func (p *PageStore) Persist(ctx context.Context, idx *domain.Index) error {
	if err := p.store.Persist(ctx, idx); err != nil {
		return fmt.Errorf("persist index %s: %w", p.store.Path(), err)
	}
	return nil
}

// Close releases the underlying store.
func (p *PageStore) Close() error {
	return p.store.Close()
}

// checkDir fails with domain.ErrSourceNotFound unless the source directory
// exists.
func (p *PageStore) checkDir() error {
	info, err := os.Stat(p.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrSourceNotFound, p.dir)
		}
		return fmt.Errorf("stat %s: %w", p.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrSourceNotFound, p.dir)
	}
	return nil
}

// Candidates lists the supported files directly inside the source directory,
// sorted by name. Hidden files and subdirectories are ignored.
func (p *PageStore) Candidates() ([]string, error) {
	if err := p.checkDir(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", p.dir, err)
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !p.source.Matches(name) {
			continue
		}
		path := filepath.Join(p.dir, name)
		if !isRegularFile(entry, path) || !p.extractor.Supports(path) {
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func isRegularFile(entry os.DirEntry, path string) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Refresh extracts every candidate file not yet in idx and persists after
// each one. A file whose extraction fails or times out is logged, reported
// as skipped and retried on the next refresh. A persist failure stops the
// refresh and removes the unsaved file from idx again, so the next refresh
// retries it. When nothing new is found nothing is written.
func (p *PageStore) Refresh(ctx context.Context, idx *domain.Index) (*domain.RefreshReport, error) {
	report := &domain.RefreshReport{
		Added:   []string{},
		Skipped: []domain.SkippedFile{},
	}

	paths, err := p.Candidates()
	if err != nil {
		return report, err
	}

	for _, path := range paths {
		if idx.HasFile(path) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		pages, err := p.extract(ctx, path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return report, ctxErr
			}
			logger.Warn("Skipping %s: %v", path, err)
			report.Skipped = append(report.Skipped, domain.SkippedFile{Path: path, Reason: err.Error()})
			continue
		}

		files, total := idx.FileCount(), idx.PageCount()
		p.AddFile(idx, path, pages)
		if err := p.Persist(ctx, idx); err != nil {
			idx.Truncate(files, total)
			return report, err
		}
		logger.Debug("Indexed %s (%d pages)", path, len(pages))
		report.Added = append(report.Added, path)
		report.PagesAdded += len(pages)
	}

	return report, nil
}

func (p *PageStore) extract(ctx context.Context, path string) ([]string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	pages, err := p.extractor.Extract(ctx, path)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: timed out after %s", domain.ErrExtraction, p.timeout)
		}
		return nil, err
	}
	return pages, nil
}
