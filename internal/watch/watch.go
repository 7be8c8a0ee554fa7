// Package watch blocks until one of a set of files appears on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Options tune Wait.
type Options struct {
	// Rescan is the interval of the fallback existence check. Zero means 2s.
	Rescan time.Duration
	Logger *zap.Logger
	// OnEvent, when set, is called with the path of every filesystem event.
	OnEvent func(path string)
}

// Wait returns the first path in paths that exists, in list order. It checks
// immediately, then again on every filesystem event under the nearest existing
// ancestor of each path and on every rescan tick. Cancel ctx to give up.
func Wait(ctx context.Context, paths []string, opts Options) (string, error) {
	if len(paths) == 0 {
		return "", fmt.Errorf("watch: no paths to wait for")
	}
	if found, ok := firstExisting(paths); ok {
		return found, nil
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rescan := opts.Rescan
	if rescan <= 0 {
		rescan = 2 * time.Second
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return "", fmt.Errorf("watch: create watcher: %w", err)
	}
	defer watcher.Close()

	watched := map[string]bool{}
	addWatches(watcher, paths, watched, logger)

	ticker := time.NewTicker(rescan)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return "", fmt.Errorf("watch: watcher closed")
			}
			logger.Debug("filesystem event", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			if opts.OnEvent != nil {
				opts.OnEvent(event.Name)
			}
			// New directories may bring a closer ancestor into existence.
			addWatches(watcher, paths, watched, logger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return "", fmt.Errorf("watch: watcher closed")
			}
			logger.Warn("watch error", zap.Error(err))
		case <-ticker.C:
			addWatches(watcher, paths, watched, logger)
		}
		if found, ok := firstExisting(paths); ok {
			return found, nil
		}
	}
}

func firstExisting(paths []string) (string, bool) {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

func addWatches(watcher *fsnotify.Watcher, paths []string, watched map[string]bool, logger *zap.Logger) {
	for _, path := range paths {
		dir := nearestExistingDir(filepath.Dir(path))
		if dir == "" || watched[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			logger.Debug("watch add failed", zap.String("dir", dir), zap.Error(err))
			continue
		}
		watched[dir] = true
		logger.Debug("watching", zap.String("dir", dir))
	}
}

func nearestExistingDir(dir string) string {
	current := filepath.Clean(dir)
	for {
		if info, err := os.Stat(current); err == nil && info.IsDir() {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
}
