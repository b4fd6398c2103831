package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultSettleDelay is how long a dataset file must stay unchanged before a
// reload fires. Editors and sync tools write files in bursts.
const defaultSettleDelay = 500 * time.Millisecond

// Watcher monitors a dataset directory and reloads the loader when a JSON
// file settles after a change.
type Watcher struct {
	loader      *Loader
	logger      *slog.Logger
	settleDelay time.Duration
	onReload    func()

	fw *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher for the loader's directory override.
// onReload is called after each successful reload and may be nil.
func NewWatcher(loader *Loader, logger *slog.Logger, onReload func()) (*Watcher, error) {
	if loader.dir == "" {
		return nil, fmt.Errorf("dataset watcher requires a directory override")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fw.Add(loader.dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch dataset dir: %w", err)
	}

	return &Watcher{
		loader:      loader,
		logger:      logger,
		settleDelay: defaultSettleDelay,
		onReload:    onReload,
		fw:          fw,
	}, nil
}

// Start processes events until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	defer w.fw.Close()

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil
		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("dataset watcher error", "error", err)
		}
	}
}

// handleEvent schedules a debounced reload for relevant changes.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !strings.HasSuffix(event.Name, ".json") {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.settleDelay, w.reload)
}

func (w *Watcher) reload() {
	if err := w.loader.Load(); err != nil {
		// Keep serving the previous dataset on a bad write.
		w.logger.Error("dataset reload failed, keeping previous data", "error", err)
		return
	}
	w.logger.Info("dataset reloaded", "pins", w.loader.Count())
	if w.onReload != nil {
		w.onReload()
	}
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
