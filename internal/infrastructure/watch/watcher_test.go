package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) record(_ context.Context, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func startWatcher(t *testing.T, dir string) (*recorder, context.CancelFunc) {
	t.Helper()
	w, err := New(dir, WithDebounce(50*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	rec := &recorder{}
	go func() {
		_ = w.Run(ctx, rec.record)
	}()
	// Give watcher time to start
	time.Sleep(50 * time.Millisecond)
	return rec, cancel
}

func TestWatcher_DetectsDocumentWrite(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "portfolio.yaml")
	if err := os.WriteFile(doc, []byte("projects: []\n"), 0600); err != nil {
		t.Fatal(err)
	}

	rec, cancel := startWatcher(t, dir)
	defer cancel()

	if err := os.WriteFile(doc, []byte("name: changed\nprojects: []\n"), 0600); err != nil {
		t.Fatal(err)
	}

	// Wait for debounce
	time.Sleep(250 * time.Millisecond)
	cancel()

	events := rec.snapshot()
	if len(events) == 0 {
		t.Fatal("expected at least one change event")
	}
	if events[len(events)-1].Path != doc {
		t.Errorf("Path = %q, want %q", events[len(events)-1].Path, doc)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	rec, cancel := startWatcher(t, dir)
	defer cancel()

	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	time.Sleep(250 * time.Millisecond)
	cancel()

	if events := rec.snapshot(); len(events) != 0 {
		t.Errorf("expected no events, got %v", events)
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestWatcher_ContextCancellation(t *testing.T) {
	w, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context, Event) {})
	}()

	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("watcher did not stop after context cancellation")
	}
}
