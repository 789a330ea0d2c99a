package driven

import "context"

// DirectoryWatcher reports changes inside a single directory.
type DirectoryWatcher interface {
	// Watch starts watching dir. Each event carries the path that changed.
	// Both channels are closed when ctx is done or Close is called.
	Watch(ctx context.Context, dir string) (<-chan string, <-chan error, error)

	// Close stops watching.
	Close() error
}
