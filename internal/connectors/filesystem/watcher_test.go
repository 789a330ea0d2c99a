package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsNewFile(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, _, err := w.Watch(ctx, dir)
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(dir, "new.pdf")
	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = os.WriteFile(path, []byte("%PDF"), 0o600)
	}()

	select {
	case got := <-events:
		assert.Equal(t, path, got)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for file event")
	}
}

func TestWatcher_ClosesChannelsOnCancel(t *testing.T) {
	w := NewWatcher()
	ctx, cancel := context.WithCancel(context.Background())

	events, errs, err := w.Watch(ctx, t.TempDir())
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("events channel not closed")
	}
	_, ok := <-errs
	assert.False(t, ok)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := NewWatcher()

	_, _, err := w.Watch(context.Background(), filepath.Join(t.TempDir(), "missing"))

	assert.Error(t, err)
}

func TestWatcher_AlreadyWatching(t *testing.T) {
	w := NewWatcher()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, _, err := w.Watch(ctx, t.TempDir())
	require.NoError(t, err)
	defer w.Close()

	_, _, err = w.Watch(ctx, t.TempDir())

	assert.Error(t, err)
}

func TestHandleEvent(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "doc.pdf")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
	hidden := filepath.Join(dir, ".askpdf.idx")
	require.NoError(t, os.WriteFile(hidden, []byte("x"), 0o600))
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o700))

	tests := []struct {
		name     string
		path     string
		op       fsnotify.Op
		relevant bool
	}{
		{"create file", file, fsnotify.Create, true},
		{"write file", file, fsnotify.Write, true},
		{"write and chmod", file, fsnotify.Write | fsnotify.Chmod, true},
		{"chmod only", file, fsnotify.Chmod, false},
		{"remove", filepath.Join(dir, "gone.pdf"), fsnotify.Remove, false},
		{"rename away", filepath.Join(dir, "old.pdf"), fsnotify.Rename, false},
		{"hidden index file", hidden, fsnotify.Write, false},
		{"directory", sub, fsnotify.Create, false},
		{"vanished before stat", filepath.Join(dir, "tmp.pdf"), fsnotify.Create, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, relevant := handleEvent(fsnotify.Event{Name: tt.path, Op: tt.op})

			assert.Equal(t, tt.relevant, relevant)
			if tt.relevant {
				assert.Equal(t, tt.path, path)
			}
		})
	}
}
