package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/askpdf/internal/core/domain"
	"github.com/custodia-labs/askpdf/internal/core/ports/driven"
	"github.com/custodia-labs/askpdf/internal/core/ports/driving"
	"github.com/custodia-labs/askpdf/internal/logger"
)

// Watcher refreshes an index whenever its source directory changes.
// A refresh starts only once the directory has been quiet for the settle
// period. Bursts of events are coalesced: at most one refresh runs per
// interval and every event seen while waiting is folded into it.
type Watcher struct {
	controller driving.IndexController
	dirWatcher driven.DirectoryWatcher
	dir        string
	limiter    *rate.Limiter
	settle     time.Duration
	onRefresh  func(*domain.RefreshReport)

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
}

// NewWatcher creates a watcher for dir. onRefresh, if set, receives every
// refresh report that changed the index.
func NewWatcher(
	controller driving.IndexController,
	dirWatcher driven.DirectoryWatcher,
	dir string,
	settings domain.Settings,
	onRefresh func(*domain.RefreshReport),
) *Watcher {
	return &Watcher{
		controller: controller,
		dirWatcher: dirWatcher,
		dir:        dir,
		limiter:    rate.NewLimiter(rate.Every(settings.Watch.Interval), 1),
		settle:     settings.Watch.Settle,
		onRefresh:  onRefresh,
	}
}

// Start watches the directory until ctx is done or Stop is called.
// A refresh failure stops the watcher and is returned.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	events, errs, err := w.dirWatcher.Watch(ctx, w.dir)
	if err != nil {
		return err
	}
	defer w.dirWatcher.Close()

	logger.Info("Watching %s", w.dir)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		case path, ok := <-events:
			if !ok {
				return nil
			}
			logger.Debug("Change detected: %s", path)
			if ok, err := w.waitQuiet(ctx, stopCh, events); !ok {
				return err
			}
			if err := w.limiter.Wait(ctx); err != nil {
				return ctx.Err()
			}
			drain(events)
			if err := w.refresh(ctx); err != nil {
				return err
			}
		}
	}
}

// Stop ends a running Start.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	w.running = false
	close(w.stopCh)
}

func (w *Watcher) refresh(ctx context.Context) error {
	report, err := w.controller.Refresh(ctx)
	if err != nil {
		return err
	}
	if report.Changed() && w.onRefresh != nil {
		w.onRefresh(report)
	}
	return nil
}

// waitQuiet blocks until no event has arrived for the settle period. It
// returns false with the error Start should return when watching ends
// while waiting.
func (w *Watcher) waitQuiet(ctx context.Context, stopCh <-chan struct{}, events <-chan string) (bool, error) {
	if w.settle <= 0 {
		return true, nil
	}
	timer := time.NewTimer(w.settle)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-stopCh:
			return false, nil
		case path, ok := <-events:
			if !ok {
				return false, nil
			}
			logger.Debug("Change detected: %s", path)
			timer.Reset(w.settle)
		case <-timer.C:
			return true, nil
		}
	}
}

// drain discards events already queued so one refresh covers them.
func drain(events <-chan string) {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
