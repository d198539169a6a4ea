package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDebouncerWindow(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d := newDebouncer(100 * time.Millisecond)

	if !d.allow("a.yaml", t0) {
		t.Fatalf("first event should pass")
	}
	if d.allow("a.yaml", t0.Add(50*time.Millisecond)) {
		t.Fatalf("repeat inside the window should be dropped")
	}
	if d.allow("a.yaml", t0.Add(99*time.Millisecond)) {
		t.Fatalf("repeat just inside the window should be dropped")
	}
	if !d.allow("a.yaml", t0.Add(200*time.Millisecond)) {
		t.Fatalf("event past the window should pass")
	}
	if !d.allow("b.yaml", t0.Add(10*time.Millisecond)) {
		t.Fatalf("distinct names should debounce independently")
	}
}

func TestWatcherReportsOnlyTargetFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "duel.yaml")
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(target, []byte("score_script: \"\"\n"), 0o644); err != nil {
		t.Fatalf("write target: %v", err)
	}

	w, err := NewWatcher(target)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(other, []byte("x"), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}
	if err := os.WriteFile(target, []byte("score_script: \"\"\n"), 0o644); err != nil {
		t.Fatalf("rewrite target: %v", err)
	}

	want, err := filepath.Abs(target)
	if err != nil {
		t.Fatalf("abs: %v", err)
	}
	select {
	case got := <-w.Events:
		if got != want {
			t.Fatalf("event = %q, want %q", got, want)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("no event within timeout")
	}
}
