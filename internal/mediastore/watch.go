package mediastore

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change describes a library update observed on disk.
type Change struct {
	Path    string
	Op      fsnotify.Op
	Added   int
	Removed int
}

// Watch monitors the library directory and keeps the index in sync until
// ctx is cancelled. fn, when set, is called after each resync with the file
// that triggered it. Bursts of events within debounce are folded together.
func (s *Store) Watch(ctx context.Context, debounce time.Duration, fn func(Change)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(s.dir); err != nil {
		return fmt.Errorf("watch %s: %w", s.dir, err)
	}
	if _, _, err := s.Sync(ctx); err != nil {
		return err
	}

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending Change
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !IsImageName(filepath.Base(ev.Name)) {
				continue
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			pending.Path = ev.Name
			pending.Op |= ev.Op
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			added, removed, err := s.Sync(ctx)
			if err != nil {
				log.Printf("library sync: %v", err)
				pending = Change{}
				continue
			}
			pending.Added, pending.Removed = added, removed
			if fn != nil {
				fn(pending)
			}
			pending = Change{}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("library watcher: %v", err)
		}
	}
}
