package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// startWatcherFor creates a started watcher on the given file with a short
// debounce and returns its event channel.
func startWatcherFor(t *testing.T, path string) chan Event {
	t.Helper()

	w, err := NewWatcher(WatcherDebounce(10 * time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	t.Cleanup(w.Stop)

	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	events := make(chan Event, 8)
	w.OnChange(func(e Event) { events <- e })
	w.Start()

	return events
}

func waitEvent(t *testing.T, events chan Event) Event {
	t.Helper()

	select {
	case e := <-events:
		return e
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for event")
		return Event{}
	}
}

func TestWatcher_WriteEvent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	events := startWatcherFor(t, path)

	if err := os.WriteFile(path, []byte("a = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := waitEvent(t, events)
	if e.Path != path {
		t.Errorf("event path = %q, want %q", e.Path, path)
	}
	if e.Op != OpWrite {
		t.Errorf("event op = %s, want write", e.Op)
	}
}

func TestWatcher_CreateEvent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")

	events := startWatcherFor(t, path)

	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := waitEvent(t, events)
	if e.Path != path {
		t.Errorf("event path = %q, want %q", e.Path, path)
	}
	if e.Op != OpCreate {
		t.Errorf("event op = %s, want create", e.Op)
	}
}

func TestWatcher_RemoveEvent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	events := startWatcherFor(t, path)

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	e := waitEvent(t, events)
	if e.Op != OpRemove {
		t.Errorf("event op = %s, want remove", e.Op)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "settings.toml")
	other := filepath.Join(dir, "other.toml")
	for _, p := range []string{watched, other} {
		if err := os.WriteFile(p, []byte("a = 1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	events := startWatcherFor(t, watched)

	if err := os.WriteFile(other, []byte("a = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case e := <-events:
		t.Errorf("unexpected event for %s", e.Path)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_Unwatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(WatcherDebounce(10 * time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(w.Stop)

	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}
	if got := w.WatchedFiles(); len(got) != 1 {
		t.Fatalf("WatchedFiles() = %v", got)
	}
	if err := w.Unwatch(path); err != nil {
		t.Fatal(err)
	}
	if got := w.WatchedFiles(); len(got) != 0 {
		t.Errorf("WatchedFiles() after Unwatch = %v", got)
	}
}

func TestWatcher_MissingDir(t *testing.T) {
	w, err := NewWatcher()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(w.Stop)

	if err := w.Watch("/nonexistent-dir-for-config/settings.toml"); err == nil {
		t.Error("expected error watching file in missing directory")
	}
}

func TestWatcher_StopIdempotent(t *testing.T) {
	w, err := NewWatcher()
	if err != nil {
		t.Fatal(err)
	}

	w.Start()
	if !w.IsRunning() {
		t.Error("expected running after Start")
	}
	w.Stop()
	if w.IsRunning() {
		t.Error("expected stopped after Stop")
	}
	w.Stop()
}
