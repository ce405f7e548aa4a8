// Package watch reruns a callback whenever a story file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jorge-barreto/fater/internal/log"
)

// DefaultDebounce collapses the burst of events most editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// File watches a single file. The parent directory is watched rather than the
// file itself so that editors which save by rename keep triggering events.
type File struct {
	Path     string
	Debounce time.Duration
	OnChange func()
}

// Run blocks until ctx is cancelled, calling OnChange once per debounced burst
// of writes, creates or renames of Path.
func (f *File) Run(ctx context.Context) error {
	abs, err := filepath.Abs(f.Path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", f.Path, err)
	}
	debounce := f.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(abs)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	logger := log.WithComponent("watch")
	logger.Info("watching", "path", abs)

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("file event", "op", ev.Op.String())

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				if ctx.Err() == nil {
					f.OnChange()
				}
			})
			mu.Unlock()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}
