package app

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// sourceWatcher notices on-disk changes to the file shown in the
// source view. It watches the file's directory rather than the file
// itself: editors that save by atomic rename would break a direct
// file watch.
type sourceWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	dir     string
}

func newSourceWatcher() (*sourceWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	return &sourceWatcher{watcher: w}, nil
}

// Watch points the watcher at path. An empty path stops watching.
func (w *sourceWatcher) Watch(path string) error {
	if path == w.path {
		return nil
	}

	dir := ""
	if path != "" {
		dir = filepath.Dir(path)
	}
	if dir != w.dir {
		if w.dir != "" {
			_ = w.watcher.Remove(w.dir)
		}
		w.dir = ""
		if dir != "" {
			if err := w.watcher.Add(dir); err != nil {
				w.path = ""
				return fmt.Errorf("watching %s: %w", dir, err)
			}
			w.dir = dir
		}
	}
	w.path = path
	return nil
}

// Path returns the file currently watched, or "" when none.
func (w *sourceWatcher) Path() string {
	return w.path
}

// Relevant reports whether a change event concerns the watched file.
func (w *sourceWatcher) Relevant(ev fsnotify.Event) bool {
	if w.path == "" || ev.Name != w.path {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create)
}

// Events returns raw change notifications for the watched directory.
func (w *sourceWatcher) Events() <-chan fsnotify.Event {
	return w.watcher.Events
}

// Errors returns watcher failures.
func (w *sourceWatcher) Errors() <-chan error {
	return w.watcher.Errors
}

// Close stops the watcher.
func (w *sourceWatcher) Close() error {
	return w.watcher.Close()
}
