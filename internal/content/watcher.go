package content

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherFailed indicates the filesystem watcher failed to initialize.
var ErrWatcherFailed = errors.New("failed to initialize content watcher")

// Change describes a modification to a dataset file.
type Change struct {
	Dataset Dataset
	Path    string
	Op      string
	Time    time.Time
}

// Watcher reports changes to the fixture files in a content directory.
type Watcher struct {
	dir     string
	watcher *fsnotify.Watcher
	events  chan Change
	onError func(error)

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	started  bool
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithErrorHandler receives errors reported by the underlying watcher.
func WithErrorHandler(fn func(error)) WatcherOption {
	return func(w *Watcher) { w.onError = fn }
}

// NewWatcher creates a watcher for dir. Call Start to begin watching.
func NewWatcher(dir string, opts ...WatcherOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatcherFailed, err)
	}
	w := &Watcher{
		dir:     dir,
		watcher: fw,
		events:  make(chan Change, 16),
		onError: func(error) {},
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start watches the directory in a background goroutine until ctx is
// cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	w.started = true
	go w.run(ctx)
	return nil
}

// Events returns the channel of dataset changes. It is closed when the
// watcher stops.
func (w *Watcher) Events() <-chan Change {
	return w.events
}

// Stop stops watching and waits for the background goroutine to exit.
// Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		_ = w.watcher.Close()
		if w.started {
			<-w.done
		} else {
			close(w.events)
		}
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	defer close(w.events)

	for {
		select {
		case <-w.stop:
			return
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if change, ok := w.toChange(event); ok {
				select {
				case w.events <- change:
				default:
					// Consumer is behind; the next change re-reports the file.
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

const watchedOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

func (w *Watcher) toChange(event fsnotify.Event) (Change, bool) {
	if event.Op&watchedOps == 0 {
		return Change{}, false
	}
	d, ok := datasetForPath(event.Name)
	if !ok {
		return Change{}, false
	}
	return Change{
		Dataset: d,
		Path:    event.Name,
		Op:      event.Op.String(),
		Time:    time.Now(),
	}, true
}

// datasetForPath maps a fixture filename to its dataset.
func datasetForPath(path string) (Dataset, bool) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	known := false
	for _, e := range extensions {
		if ext == e {
			known = true
			break
		}
	}
	if !known {
		return "", false
	}
	name := Dataset(strings.TrimSuffix(base, ext))
	for _, d := range Datasets {
		if d == name {
			return d, true
		}
	}
	return "", false
}
