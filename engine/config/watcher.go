package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config at path whenever it changes on disk and hands each successfully loaded
// config to onChange. The parent directory is watched rather than the file itself so editors that
// save by replacing the file are still observed.
//
// Watch returns once the watcher is registered; reloading continues on a background goroutine until
// ctx is cancelled. A change that fails to load is logged and skipped, and the previous config stays in effect.
//
// Parameters:
//   - ctx: cancels the watch
//   - path: the config file path
//   - onChange: called with every successfully reloaded config, from the watcher goroutine
//
// Returns:
//   - error: an error if the watcher cannot be created or the directory cannot be watched
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	if _, err := FormatFromPath(path); err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve config path %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := Load(abs)
				if err != nil {
					log.Printf("[Config] reload of %s skipped: %v", abs, err)
					continue
				}
				log.Printf("[Config] reloaded %s", abs)
				onChange(cfg)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("[Config] watcher error: %v", err)
			}
		}
	}()

	return nil
}
