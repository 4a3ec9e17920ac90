package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDefinition reloads the definition when its file changes. The
// parent directory is watched rather than the file itself so editors
// that replace the file (rename over it) keep triggering events. Bursts
// of events are debounced into a single reload.
func (s *Service) watchDefinition(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	dir := filepath.Dir(s.cfg.Definition.Path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target := filepath.Clean(s.cfg.Definition.Path)
	debounce := s.cfg.Definition.ReloadDebounce
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	go func() {
		defer watcher.Close()

		var timer *time.Timer
		var pending <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(debounce)
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(debounce)
				}
				pending = timer.C

			case <-pending:
				pending = nil
				s.logger.Info("Definition file changed, reloading", "path", target)
				if err := s.Reload(); err != nil {
					s.logger.Error("Reload failed, previous definition stays active",
						"path", target,
						"error", err)
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("Definition watcher error", "error", err)
			}
		}
	}()

	return nil
}
