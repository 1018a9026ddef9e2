// Package watcher reloads settings when the settings file changes on disk.
package watcher

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/watchfire-io/autodeploy/internal/config"
	"github.com/watchfire-io/autodeploy/internal/models"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Event carries freshly loaded settings, or the error that prevented loading.
type Event struct {
	Path     string
	Settings *models.Settings
	Err      error
}

// Watcher watches a single settings file.
type Watcher struct {
	path      string
	fsWatcher *fsnotify.Watcher
	events    chan Event
	done      chan struct{}
	debounce  time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// New creates a watcher for the settings file at path. The parent directory
// is created if needed, since editors replace files through renames and only
// a directory watch sees those.
func New(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(dir); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &Watcher{
		path:      filepath.Clean(path),
		fsWatcher: fsWatcher,
		events:    make(chan Event, 8),
		done:      make(chan struct{}),
		debounce:  debounce,
	}
	go w.processEvents()

	log.Printf("[watcher] Watching %s", w.path)
	return w, nil
}

// Events returns the channel of reload events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop stops the watcher. Pending reloads are discarded.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	_ = w.fsWatcher.Close()
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[watcher] error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	// Rename covers atomic writes (write tmp, rename onto target).
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	log.Printf("[watcher] fsnotify: %s %s", event.Op, event.Name)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	if !config.FileExists(w.path) {
		return
	}
	settings, err := config.LoadSettingsFile(w.path)
	if err != nil {
		log.Printf("[watcher] reload failed: %v", err)
	}
	select {
	case w.events <- Event{Path: w.path, Settings: settings, Err: err}:
	case <-w.done:
	}
}
