package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func newTestWatcher(t *testing.T) *sourceWatcher {
	t.Helper()
	w, err := newSourceWatcher()
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

// waitRelevant drains events until one concerns the watched file.
func waitRelevant(t *testing.T, w *sourceWatcher) bool {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-w.Events():
			if w.Relevant(ev) {
				return true
			}
		case err := <-w.Errors():
			t.Fatalf("watcher error: %v", err)
		case <-deadline:
			return false
		}
	}
}

func TestSourceWatcherSeesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.c")
	if err := os.WriteFile(path, []byte("int main;\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	w := newTestWatcher(t)
	if err := w.Watch(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := os.WriteFile(path, []byte("int main2;\n"), 0o644); err != nil {
		t.Fatalf("failed to rewrite file: %v", err)
	}
	if !waitRelevant(t, w) {
		t.Error("expected a change notification for the watched file")
	}
}

func TestSourceWatcherSeesAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.c")
	if err := os.WriteFile(path, []byte("old\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	w := newTestWatcher(t)
	if err := w.Watch(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Save the way editors do: write a temp file, rename it over.
	tmp := filepath.Join(dir, ".main.c.tmp")
	if err := os.WriteFile(tmp, []byte("new\n"), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("failed to rename: %v", err)
	}
	if !waitRelevant(t, w) {
		t.Error("expected a change notification after atomic replace")
	}
}

func TestSourceWatcherRelevance(t *testing.T) {
	w := &sourceWatcher{path: "/src/a.c"}

	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write to watched file", fsnotify.Event{Name: "/src/a.c", Op: fsnotify.Write}, true},
		{"replace of watched file", fsnotify.Event{Name: "/src/a.c", Op: fsnotify.Create}, true},
		{"chmod only", fsnotify.Event{Name: "/src/a.c", Op: fsnotify.Chmod}, false},
		{"sibling file", fsnotify.Event{Name: "/src/b.c", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Relevant(tt.ev); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	w.path = ""
	if w.Relevant(fsnotify.Event{Name: "/src/a.c", Op: fsnotify.Write}) {
		t.Error("expected nothing relevant without a watched file")
	}
}

func TestSourceWatcherSwitchesFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.c")
	second := filepath.Join(dir, "b.c")
	for _, p := range []string{first, second} {
		if err := os.WriteFile(p, []byte("x\n"), 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}

	w := newTestWatcher(t)
	if err := w.Watch(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Watch(second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := w.Path(); got != second {
		t.Errorf("expected watch on %q, got %q", second, got)
	}

	if w.Relevant(fsnotify.Event{Name: first, Op: fsnotify.Write}) {
		t.Error("expected old file to be irrelevant after switch")
	}
	if !w.Relevant(fsnotify.Event{Name: second, Op: fsnotify.Write}) {
		t.Error("expected new file to be relevant")
	}
}

func TestSourceWatcherEmptyPathStops(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.c")
	if err := os.WriteFile(path, []byte("x\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	w := newTestWatcher(t)
	if err := w.Watch(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.Watch(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := w.Path(); got != "" {
		t.Errorf("expected no watched file, got %q", got)
	}
}

func TestSourceWatcherMissingDirectory(t *testing.T) {
	w := newTestWatcher(t)
	err := w.Watch(filepath.Join(t.TempDir(), "missing", "a.c"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if got := w.Path(); got != "" {
		t.Errorf("expected watch cleared after failure, got %q", got)
	}
}
