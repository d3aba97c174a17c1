package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Snapshot is the full content of the watched file at one point in time.
type Snapshot struct {
	Path    string
	Content string
	ReadAt  time.Time
}

// FileSource works by watching a file for changes and re-reading it completely
// whenever it is written.
type FileSource struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
}

// NewFileSource creates a new FileSource. A zero debounce emits a snapshot for
// every write event.
func NewFileSource(logger *slog.Logger, path string, debounce time.Duration) *FileSource {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &FileSource{
		logger:   logger,
		path:     path,
		debounce: debounce,
	}
}

func (f *FileSource) Path() string {
	return f.path
}

// Read returns the current content of the file.
func (f *FileSource) Read() (Snapshot, error) {
	content, err := os.ReadFile(f.path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("cannot read file: %w", err)
	}

	return Snapshot{Path: f.path, Content: string(content), ReadAt: time.Now()}, nil
}

// Watch sends the current content once and then again after every change
// until ctx is cancelled. It returns ctx.Err() on cancellation and the read
// error when the file cannot be read at start.
func (f *FileSource) Watch(ctx context.Context, out chan<- Snapshot) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cannot create watcher: %w", err)
	}
	defer watcher.Close()

	// The parent directory is watched so editors that replace the file
	// (write a new inode and rename it over the old one) keep being tracked.
	dir := filepath.Dir(f.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("cannot add directory to watcher: %w", err)
	}

	// The first read is strict: a path that does not exist yet is an error,
	// not a rename in progress.
	snap, err := f.Read()
	if err != nil {
		return err
	}
	if err := f.send(ctx, out, snap); err != nil {
		return err
	}

	var pending <-chan time.Time
	target := filepath.Clean(f.path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				f.logger.Debug("fsnotify watcher channel is closed.")
				return nil
			}

			if filepath.Clean(event.Name) != target {
				continue
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				f.logger.Debug("received unhandled event from fsnotify.", "event", event.String())
				continue
			}

			if f.debounce <= 0 {
				if err := f.emit(ctx, out); err != nil {
					return err
				}
				continue
			}

			pending = time.After(f.debounce)

		case <-pending:
			pending = nil
			if err := f.emit(ctx, out); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

// emit reads the file and sends it. A file that vanished during a rename is
// skipped; the following create event brings it back.
func (f *FileSource) emit(ctx context.Context, out chan<- Snapshot) error {
	snap, err := f.Read()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			f.logger.Debug("watched file is missing, waiting for it to reappear.", "path", f.path)
			return nil
		}
		return err
	}

	return f.send(ctx, out, snap)
}

func (f *FileSource) send(ctx context.Context, out chan<- Snapshot, snap Snapshot) error {
	select {
	case out <- snap:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
