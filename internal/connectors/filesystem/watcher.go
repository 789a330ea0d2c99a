// Package filesystem watches a source directory for new or rewritten files
// using fsnotify.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/askpdf/internal/core/ports/driven"
)

// Ensure Watcher implements the interface.
var _ driven.DirectoryWatcher = (*Watcher)(nil)

// Watcher reports files created or written directly inside one directory.
// Removals, renames away and permission changes are ignored because the
// index only ever grows.
type Watcher struct {
	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

// NewWatcher creates an idle watcher.
func NewWatcher() *Watcher {
	return &Watcher{}
}

// Watch starts watching dir. Events carry the absolute path of the file.
func (w *Watcher) Watch(ctx context.Context, dir string) (<-chan string, <-chan error, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher != nil {
		return nil, nil, fmt.Errorf("already watching")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	w.watcher = fw

	events := make(chan string, 64)
	errs := make(chan error, 1)
	go w.loop(ctx, fw, events, errs)
	return events, errs, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, events chan<- string, errs chan<- error) {
	defer close(events)
	defer close(errs)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			path, relevant := handleEvent(event)
			if !relevant {
				continue
			}
			select {
			case events <- path:
			case <-ctx.Done():
				return
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			select {
			case errs <- err:
			default:
			}
		}
	}
}

// handleEvent returns the path of a created or written regular, visible file.
func handleEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return event.Name, true
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	w.watcher = nil
	return err
}
