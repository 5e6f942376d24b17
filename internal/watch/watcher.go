// Package watch reruns generation when target info documents change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

// DefaultDebounce is how long the watcher waits for a burst of events to settle.
const DefaultDebounce = 200 * time.Millisecond

// Fingerprinter summarizes the documents of a directory.
type Fingerprinter interface {
	Fingerprint(path string) (string, error)
}

// Watcher watches one target info directory.
type Watcher struct {
	dir          string
	debounce     time.Duration
	fingerprints Fingerprinter
	onChange     func(ctx context.Context) error
	logger       tierdocs.Logger
}

// NewWatcher creates a watcher that calls onChange whenever the fingerprint
// of dir changes. Errors returned by onChange are logged and watching goes on.
func NewWatcher(dir string, fingerprints Fingerprinter, logger tierdocs.Logger, onChange func(ctx context.Context) error) *Watcher {
	if fingerprints == nil {
		panic("fingerprints cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if onChange == nil {
		panic("onChange cannot be nil")
	}
	return &Watcher{
		dir:          dir,
		debounce:     DefaultDebounce,
		fingerprints: fingerprints,
		onChange:     onChange,
		logger:       logger,
	}
}

// WithDebounce overrides DefaultDebounce.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Run calls onChange once, then again after every settled change, until ctx
// is done. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", w.dir, err)
	}
	w.logger.Info("Watching %s for changes (Ctrl+C to stop)", w.dir)

	last := w.fingerprint()
	w.run(ctx)

	var timer *time.Timer
	var settled <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			w.logger.Verbose("File changed: %s", event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			settled = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch: %v", err)

		case <-settled:
			settled = nil
			current := w.fingerprint()
			if current != "" && current == last {
				w.logger.Verbose("No document changed")
				continue
			}
			last = current
			w.run(ctx)
		}
	}
}

func (w *Watcher) run(ctx context.Context) {
	if err := w.onChange(ctx); err != nil {
		w.logger.Error("%v", err)
	}
}

// fingerprint returns "" when the directory cannot be summarized, which
// never equals a previous fingerprint.
func (w *Watcher) fingerprint() string {
	fp, err := w.fingerprints.Fingerprint(w.dir)
	if err != nil {
		w.logger.Verbose("fingerprint: %v", err)
		return ""
	}
	return fp
}

// relevant drops events for hidden files and editor temporaries.
func relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	return true
}
