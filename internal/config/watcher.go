package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Change is one observed edit of the config file, already loaded.
type Change struct {
	Config Config
	Err    error
}

// Watcher monitors the config file for edits made outside the dashboard.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      zerolog.Logger
}

// NewWatcher creates a watcher for the config file at path. The parent
// directory is watched, not the file, because atomic saves replace the file
// and a watch on the old inode would go quiet.
func NewWatcher(path string, log zerolog.Logger) (*Watcher, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch directory %s: %w", dir, err)
	}

	return &Watcher{
		path:     path,
		watcher:  fsw,
		debounce: 100 * time.Millisecond,
		log:      log.With().Str("component", "config-watcher").Logger(),
	}, nil
}

// Watch starts watching and returns a channel of changes. Bursts of events
// within the debounce window are coalesced into one reload. The channel is
// closed when ctx is cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) <-chan Change {
	out := make(chan Change, 4)

	go func() {
		defer close(out)

		debounceTimer := time.NewTimer(0)
		if !debounceTimer.Stop() {
			<-debounceTimer.C
		}
		pending := false

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !w.relevant(event) {
					continue
				}
				pending = true
				debounceTimer.Reset(w.debounce)

			case <-debounceTimer.C:
				if !pending {
					continue
				}
				pending = false

				cfg, err := Load(w.path)
				if err != nil {
					w.log.Warn().Err(err).Msg("reloading config")
				} else {
					w.log.Debug().Strs("stocks", cfg.Stocks).Msg("config reloaded")
				}
				select {
				case out <- Change{Config: cfg, Err: err}:
				case <-ctx.Done():
					return
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				// Log errors but keep watching
				w.log.Warn().Err(err).Msg("fsnotify error")
			}
		}
	}()

	return out
}

// relevant reports whether an event touches the config file itself. Temp
// files used for atomic writes and removals are skipped.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	name := filepath.Base(ev.Name)
	if strings.HasPrefix(name, ".tmp-") {
		return false
	}
	if name != filepath.Base(w.path) {
		return false
	}
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) || ev.Has(fsnotify.Rename)
}

// Close stops watching and cleans up resources.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
