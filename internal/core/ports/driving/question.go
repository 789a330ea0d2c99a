package driving

import (
	"context"

	"github.com/custodia-labs/askpdf/internal/core/domain"
)

// QuestionService answers questions against an opened index.
type QuestionService interface {
	// Ask ranks every page against question and returns the best matches.
	// An empty or stop-word-only question is not an error.
	Ask(ctx context.Context, question string, opts domain.QueryOptions) ([]domain.PageHit, error)
}

// IndexController drives the load, refresh, fit and query stages for one
// source directory. It is constructed per invocation and owns the index
// exclusively for its lifetime.
type IndexController interface {
	QuestionService

	// Open runs the load, refresh and fit stages.
	Open(ctx context.Context) (*domain.RefreshReport, error)

	// Update runs the load and refresh stages only.
	Update(ctx context.Context) (*domain.RefreshReport, error)

	// Refresh re-scans the source directory and refits when files were added.
	Refresh(ctx context.Context) (*domain.RefreshReport, error)

	// Status describes the current index without extracting anything.
	Status(ctx context.Context) (*domain.IndexStatus, error)

	// Close releases the index store.
	Close() error
}

// ControllerFactory builds an IndexController for a source directory.
type ControllerFactory func(ctx context.Context, directory string) (IndexController, error)

// WatchFunc refreshes controller whenever directory changes until ctx is
// done. onRefresh receives each report that changed the index.
type WatchFunc func(
	ctx context.Context,
	controller IndexController,
	directory string,
	onRefresh func(*domain.RefreshReport),
) error
