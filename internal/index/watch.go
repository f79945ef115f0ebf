package index

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval collapses editor save bursts into one rebuild.
const debounceInterval = 100 * time.Millisecond

// Watch rebuilds the artifacts whenever an element or reaction file
// changes, reporting each attempt through onBuild. It blocks until ctx
// is done. The artifact directory itself is not watched, so builds do
// not retrigger themselves.
func (b *Builder) Watch(ctx context.Context, onBuild func(*Result, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range []string{
		filepath.Join(b.dataRoot, "elements"),
		filepath.Join(b.dataRoot, "reactions"),
	} {
		if err := watchDirRecursive(watcher, dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	b.logger.Info("watching corpus for changes", "data_root", b.dataRoot)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Ext(event.Name) != ".json" {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceInterval, func() {
				b.logger.Debug("corpus changed, rebuilding", "file", event.Name)
				onBuild(b.Build(ctx))
			})

		case err := <-watcher.Errors:
			b.logger.Error("watcher error", "error", err)
		}
	}
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
