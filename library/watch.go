package library

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of events one save produces.
const watchDebounce = 100 * time.Millisecond

// Watch calls fn with a fresh List whenever .scl files in the library are
// created, written, removed or renamed. Setup errors are returned; events
// are then handled on a separate goroutine until ctx is cancelled. fn runs
// on that goroutine.
func (s *Store) Watch(ctx context.Context, fn func([]Record)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("library: create watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("library: watch %s: %w", s.dir, err)
	}

	go s.watchLoop(ctx, watcher, fn)
	return nil
}

func (s *Store) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, fn func([]Record)) {
	defer watcher.Close()

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	const relevant = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&relevant == 0 || !hasSCLExt(filepath.Base(event.Name)) {
				continue
			}
			s.log.Debug("scale library changed", "path", event.Name, "op", event.Op.String())
			timer.Reset(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn("scale library watcher", "dir", s.dir, "err", err)
		case <-timer.C:
			fn(s.List())
		}
	}
}
