package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"focusflow/internal/core/model"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the settings whenever the file changes on disk and passes the
// result to onChange. It returns once the watcher is installed; watching stops
// when ctx is cancelled.
func (store *YAMLStore) Watch(ctx context.Context, onChange func(model.Settings, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	// Watch the directory: atomic writes replace the file, which drops
	// watches placed on the file itself.
	if err := watcher.Add(filepath.Dir(store.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch settings directory: %w", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != store.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				settings, err := store.Load()
				onChange(settings, err)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				store.logger.Warn("settings watcher", "err", err)
			}
		}
	}()
	return nil
}
