package crosstab

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/ziadkadry99/studiofront/internal/cards"
)

// Setter is the write side of shared storage.
type Setter interface {
	Set(ctx context.Context, key, value string) error
}

// FileWatcher copies a card snapshot file into shared storage whenever it
// changes on disk, so edits made outside the server reach every viewer.
type FileWatcher struct {
	path    string
	key     string
	storage Setter
	log     *zap.Logger
}

// NewFileWatcher creates a watcher importing path under key.
func NewFileWatcher(path, key string, st Setter, log *zap.Logger) *FileWatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileWatcher{path: path, key: key, storage: st, log: log}
}

// Import reads the file once and stores it. Files that do not decode as a
// card snapshot are rejected so a half-written file never replaces good data.
func (w *FileWatcher) Import(ctx context.Context) error {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return fmt.Errorf("reading snapshot %s: %w", w.path, err)
	}
	if _, err := cards.DecodeSnapshot(data); err != nil {
		return fmt.Errorf("validating snapshot %s: %w", w.path, err)
	}
	if err := w.storage.Set(ctx, w.key, string(data)); err != nil {
		return fmt.Errorf("storing snapshot: %w", err)
	}
	w.log.Info("imported card snapshot", zap.String("path", w.path), zap.String("key", w.key))
	return nil
}

// Run imports the file if present, then re-imports on every write until
// ctx is done. The parent directory is watched because editors often
// replace files instead of writing them in place.
func (w *FileWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	if err := w.Import(ctx); err != nil && !errors.Is(err, os.ErrNotExist) {
		w.log.Warn("initial snapshot import failed", zap.Error(err))
	}

	name := filepath.Clean(w.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != name || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			if err := w.Import(ctx); err != nil {
				w.log.Warn("snapshot import failed", zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("snapshot watcher error", zap.Error(err))
		}
	}
}
