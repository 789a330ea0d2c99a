package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/askpdf/internal/core/domain"
	"github.com/custodia-labs/askpdf/internal/core/ports/driving"
	"github.com/custodia-labs/askpdf/internal/logger"
	"github.com/custodia-labs/askpdf/internal/ranker"
	"github.com/custodia-labs/askpdf/internal/vectorspace"
)

// Ensure Controller implements the interface.
var _ driving.IndexController = (*Controller)(nil)

// Controller runs the load, refresh, fit and query stages for one source
// directory. It is not safe for concurrent use; callers drive it from a
// single goroutine.
type Controller struct {
	pages    *PageStore
	settings domain.Settings
	runID    string

	index   *domain.Index
	space   *vectorspace.Space
	vectors []vectorspace.Vector
	opened  bool
}

// NewController creates a controller over pages.
func NewController(pages *PageStore, settings domain.Settings) *Controller {
	return &Controller{
		pages:    pages,
		settings: settings,
		runID:    uuid.NewString(),
	}
}

// RunID identifies this controller in log output.
func (c *Controller) RunID() string {
	return c.runID
}

// Open loads the index, refreshes it from the source directory and fits the
// vector space. In from-scratch mode the persisted index is ignored and
// replaced.
func (c *Controller) Open(ctx context.Context) (*domain.RefreshReport, error) {
	report, err := c.Update(ctx)
	if err != nil {
		return report, err
	}

	logger.Section("Fit")
	if err := c.fit(); err != nil {
		return report, domain.NewStageError(domain.StageFit, err)
	}

	c.opened = true
	return report, nil
}

// Update runs the load and refresh stages without fitting. Only the first
// call loads; later calls refresh the index already in memory.
func (c *Controller) Update(ctx context.Context) (*domain.RefreshReport, error) {
	logger.SetRunID(c.runID)

	if c.index == nil {
		logger.Section("Load")
		idx, err := c.load(ctx)
		if err != nil {
			return nil, domain.NewStageError(domain.StageLoad, err)
		}
		c.index = idx
	}

	logger.Section("Refresh")
	report, err := c.pages.Refresh(ctx, c.index)
	if err != nil {
		return report, domain.NewStageError(domain.StageRefresh, err)
	}
	logger.Info("Refresh added %d files (%d pages), skipped %d", len(report.Added), report.PagesAdded, len(report.Skipped))
	return report, nil
}

func (c *Controller) load(ctx context.Context) (*domain.Index, error) {
	if c.settings.Index.Incremental {
		return c.pages.Load(ctx)
	}
	idx := domain.NewIndex()
	if c.pages.checkDir() != nil {
		return idx, nil
	}
	logger.Info("Incremental mode off, rebuilding %s", c.pages.IndexPath())
	if err := c.pages.Persist(ctx, idx); err != nil {
		return nil, err
	}
	return idx, nil
}

func (c *Controller) fit() error {
	opts := vectorspace.Options{
		Features:  c.settings.Vector.Features,
		StopWords: vectorspace.StopWords(c.settings.Vector.StopWords, c.settings.Vector.NoDefaultStopWords),
	}
	space, vectors, err := vectorspace.Fit(c.index.Pages, opts)
	if err != nil {
		return err
	}
	c.space = space
	c.vectors = vectors
	logger.Debug("Fitted %d pages into %d features", len(vectors), space.Features())
	return nil
}

// Refresh picks up files added to the source directory since Open and
// refits whenever the index holds pages the vectors do not cover, including
// after a refresh that failed partway. It opens the controller if needed.
func (c *Controller) Refresh(ctx context.Context) (*domain.RefreshReport, error) {
	if !c.opened {
		return c.Open(ctx)
	}
	report, err := c.Update(ctx)
	if len(c.vectors) == c.index.PageCount() {
		return report, err
	}
	if fitErr := c.fit(); fitErr != nil && err == nil {
		err = domain.NewStageError(domain.StageFit, fitErr)
	}
	return report, err
}

// Ask ranks every page against question. The question is vectorised in the
// fitted space and weighted together with the pages, so document
// frequencies include the question itself.
func (c *Controller) Ask(ctx context.Context, question string, opts domain.QueryOptions) ([]domain.PageHit, error) {
	if !c.opened {
		return nil, domain.NewStageError(domain.StageQuery, fmt.Errorf("%w: index not opened", domain.ErrInvalidInput))
	}
	if err := ctx.Err(); err != nil {
		return nil, domain.NewStageError(domain.StageQuery, err)
	}
	if len(c.vectors) == 0 {
		return []domain.PageHit{}, nil
	}

	q, err := c.space.Transform([]string{strings.ToValidUTF8(question, "�")})
	if err != nil {
		return nil, domain.NewStageError(domain.StageQuery, err)
	}
	if q[0].IsZero() {
		logger.Debug("Question %q has no indexable terms", question)
	}

	stacked := make([]vectorspace.Vector, 0, len(c.vectors)+1)
	stacked = append(stacked, c.vectors...)
	stacked = append(stacked, q[0])
	weighted := vectorspace.Weight(stacked)

	n := len(c.vectors)
	limit := opts.Limit
	if limit == 0 {
		limit = domain.DefaultPageCount
	}
	ranked := ranker.Rank(weighted[:n], weighted[n], limit)

	hits := make([]domain.PageHit, len(ranked))
	for i, h := range ranked {
		hits[i] = domain.PageHit{
			Rank:  i + 1,
			Index: h.Index,
			Score: h.Score,
			Text:  c.index.Pages[h.Index],
		}
	}
	return hits, nil
}

// Status describes the index. Once loaded the in-memory index is reported;
// otherwise the persisted index is read without extracting anything.
func (c *Controller) Status(ctx context.Context) (*domain.IndexStatus, error) {
	status := &domain.IndexStatus{
		RunID:     c.runID,
		Directory: c.pages.Dir(),
		IndexPath: c.pages.IndexPath(),
		Backend:   c.settings.Index.Backend.String(),
	}

	idx := c.index
	if idx == nil {
		var err error
		idx, err = c.pages.Peek(ctx)
		if errors.Is(err, domain.ErrNotFound) {
			return status, nil
		}
		if err != nil {
			return nil, domain.NewStageError(domain.StageLoad, err)
		}
	}
	status.Files = idx.FileCount()
	status.Pages = idx.PageCount()
	return status, nil
}

// Close releases the index store.
func (c *Controller) Close() error {
	return c.pages.Close()
}
