// Package watch re-runs a callback when any of a set of files changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher watches the parent directories of its files, so atomic
// replace-by-rename is seen as a change to the file itself.
type Watcher struct {
	fw       *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
	log      zerolog.Logger
}

// New starts watching files. Bursts of events closer together than debounce
// are coalesced into one callback.
func New(files []string, debounce time.Duration, log zerolog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	w := &Watcher{fw: fw, files: make(map[string]bool), debounce: debounce, log: log}
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	return w, nil
}

// Run blocks until ctx is done, calling onChange with the last changed path
// after each quiet period. Callback errors are logged and watching goes on.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, path string) error) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
		last  string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !w.files[filepath.Clean(ev.Name)] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.log.Debug().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("file changed")
			last = ev.Name
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if err := onChange(ctx, last); err != nil {
				w.log.Error().Err(err).Str("path", last).Msg("change handler failed")
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("watcher error")
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fw.Close()
}
