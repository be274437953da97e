// Package watch reports changes to a set of files.
package watch

import (
	"EnvKit/internal/logger"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Files is given zero.
const DefaultDebounce = 200 * time.Millisecond

// Files calls onChange once for every burst of changes to any of paths.
//
// The parent directories are watched rather than the files themselves, so
// editors that save by renaming a new file into place are still seen, and a
// watched file may be created after Files starts. Events within debounce of
// each other are coalesced into one call. Files blocks until ctx is done and
// then returns nil, or returns the first error from onChange or the watcher.
func Files(ctx context.Context, paths []string, debounce time.Duration, onChange func(ctx context.Context) error) error {
	if len(paths) == 0 {
		return errors.New("no files to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	names := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		names[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		dirs[dir] = true
		logger.Debug(ctx, "Watching '{{_Folder_}}%s{{|-|}}'.", dir)
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !names[filepath.Clean(ev.Name)] || ev.Op == fsnotify.Chmod {
				continue
			}
			logger.Trace(ctx, "Event %s on '{{_File_}}%s{{|-|}}'.", ev.Op, ev.Name)
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching files: %w", err)
		case <-timer.C:
			if err := onChange(ctx); err != nil {
				return err
			}
		}
	}
}
