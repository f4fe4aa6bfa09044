package core

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

const templateChangeOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// WatchTemplates calls onChange whenever an .html file in dir changes. The
// watcher stops when ctx is done.
func WatchTemplates(ctx context.Context, dir string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create template watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
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
				if event.Op&templateChangeOps == 0 || filepath.Ext(event.Name) != ".html" {
					continue
				}
				log.Info().Str("file", event.Name).Str("op", event.Op.String()).Msg("Template changed")
				onChange()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Str("dir", dir).Msg("Template watcher error")
			}
		}
	}()

	return nil
}
