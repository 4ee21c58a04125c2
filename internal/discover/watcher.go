package discover

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher observes the dev-server metadata file and publishes the
// derived base URL whenever it changes, so a running TUI follows the
// backend when the dev server moves hosts.
type Watcher struct {
	path     string
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	updates  chan string
	lastSent string

	mu      sync.Mutex
	running bool
	doneCh  chan struct{}
}

// NewWatcher creates a watcher for the metadata file at path.
func NewWatcher(path string, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		path:    path,
		logger:  logger,
		watcher: fsw,
		updates: make(chan string, 1),
		doneCh:  make(chan struct{}),
	}, nil
}

// Updates delivers new base URLs. The channel is closed when the
// watcher stops.
func (w *Watcher) Updates() <-chan string {
	return w.updates
}

// Start begins watching. Watching the parent directory rather than the
// file itself survives the write-rename pattern editors and dev
// servers use. Non-blocking; the loop exits when ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}

	go w.run(ctx)
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	defer close(w.updates)
	defer w.watcher.Close()

	// Debounce rapid rewrites of the metadata file.
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(200 * time.Millisecond)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("metadata watch error", zap.Error(err))

		case <-pending:
			pending = nil
			w.publish(ctx)
		}
	}
}

// publish reads the metadata and sends the base URL if it changed.
func (w *Watcher) publish(ctx context.Context) {
	m, err := ReadMetadata(w.path)
	if err != nil {
		w.logger.Debug("metadata unreadable after change", zap.Error(err))
		return
	}
	url, err := m.BaseURL()
	if err != nil || url == w.lastSent {
		return
	}
	w.lastSent = url
	w.logger.Info("dev server moved", zap.String("server", url))

	select {
	case w.updates <- url:
	case <-ctx.Done():
	}
}

// Wait blocks until the watch loop has exited (tests).
func (w *Watcher) Wait() {
	w.mu.Lock()
	running := w.running
	w.mu.Unlock()
	if !running {
		return
	}
	<-w.doneCh
}
