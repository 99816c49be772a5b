// Package fsnotify watches a project tree for source file changes using
// github.com/fsnotify/fsnotify. It recursively watches every directory,
// filters out non-source files and build/vendor directories, and
// debounces rapid events (editors often trigger multiple writes per save).
package fsnotify

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/corey/codegraph/internal/registry"
)

// EventKind distinguishes a content change from a removal so the caller
// can route to re-extraction or to Sink.DeleteFile without re-statting
// the path.
type EventKind int

const (
	EventChanged EventKind = iota
	EventRemoved
)

// Event is one debounced, filtered filesystem change.
type Event struct {
	Path string
	Kind EventKind
}

// Directories to ignore when watching.
var ignoreDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	".venv":        true,
	"__pycache__":  true,
	"vendor":       true,
	".idea":        true,
	".vscode":      true,
	"dist":         true,
	"build":        true,
	".codegraph":   true,
	".next":        true,
	"target":       true,
}

// Watcher recursively watches a project directory and emits debounced,
// language-filtered Events.
type Watcher struct {
	fw      *fsnotify.Watcher
	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

// NewWatcher creates a new file system watcher.
func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:   fw,
		done: make(chan struct{}),
	}, nil
}

// Watch starts monitoring projectPath recursively. onEvent is called for
// every debounced change to a file with a registry-supported extension.
func (w *Watcher) Watch(projectPath string, onEvent func(Event)) error {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return err
	}

	err = filepath.Walk(absPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip inaccessible paths
		}
		if info.IsDir() {
			if shouldIgnoreDir(info.Name()) && path != absPath {
				return filepath.SkipDir
			}
			return w.fw.Add(path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	debounce := make(map[string]time.Time)
	var dmu sync.Mutex
	const debounceInterval = 50 * time.Millisecond

	go func() {
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				path := event.Name

				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(path); err == nil && info.IsDir() {
						if !shouldIgnoreDir(info.Name()) {
							w.fw.Add(path)
						}
					}
				}

				if shouldIgnorePath(path) {
					continue
				}

				dmu.Lock()
				last, exists := debounce[path]
				now := time.Now()
				if exists && now.Sub(last) < debounceInterval {
					dmu.Unlock()
					continue
				}
				debounce[path] = now
				dmu.Unlock()

				switch {
				case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
					onEvent(Event{Path: path, Kind: EventRemoved})
				case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
					onEvent(Event{Path: path, Kind: EventChanged})
				}

			case _, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				// Errors are swallowed — fsnotify recovers automatically

			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// Stop ends monitoring and releases all resources. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}

func shouldIgnoreDir(name string) bool {
	return ignoreDirs[name]
}

// shouldIgnorePath reports whether path should not trigger an Event: it
// sits under an ignored directory, or its extension is not one the
// extractor supports.
func shouldIgnorePath(path string) bool {
	for _, part := range strings.Split(path, string(filepath.Separator)) {
		if ignoreDirs[part] {
			return true
		}
	}
	return !registry.Supported(registry.Detect(path))
}
