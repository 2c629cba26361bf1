package devserver

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the blueprint whenever the file changes on disk, until the
// context is cancelled. Parse failures are logged and the previous document
// stays live. Already-mounted forms are unaffected; only new fetches see the
// updated blueprint.
func (s *Server) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("devserver: create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	// Watch the directory rather than the file so editors that replace the
	// file on save (rename + create) keep triggering events.
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("devserver: watch %s: %w", dir, err)
	}

	target, err := filepath.Abs(s.path)
	if err != nil {
		return fmt.Errorf("devserver: resolve %s: %w", s.path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			changed, err := filepath.Abs(event.Name)
			if err != nil || changed != target {
				continue
			}
			if err := s.Reload(); err != nil {
				s.logger.Printf("reload failed, keeping previous blueprint: %v", err)
				continue
			}
			s.logger.Printf("blueprint reloaded from %s", s.path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Printf("watch error: %v", err)
		}
	}
}
