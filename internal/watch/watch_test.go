package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestWatcher_CoalescesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	os.WriteFile(path, []byte("{}"), 0644)

	w, err := New([]string{path}, 100*time.Millisecond, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var calls atomic.Int32
	changed := make(chan string, 4)
	go w.Run(ctx, func(_ context.Context, p string) error {
		calls.Add(1)
		changed <- p
		return nil
	})

	os.WriteFile(path, []byte(`{"a":1}`), 0644)
	os.WriteFile(path, []byte(`{"a":2}`), 0644)

	select {
	case p := <-changed:
		if p != path {
			t.Errorf("changed path = %q, want %q", p, path)
		}
	case <-ctx.Done():
		t.Fatal("timeout waiting for change")
	}
	time.Sleep(400 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Fatalf("callback ran %d times, want 1", n)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	os.WriteFile(path, []byte("{}"), 0644)

	w, err := New([]string{path}, 20*time.Millisecond, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	changed := make(chan string, 1)
	go w.Run(ctx, func(_ context.Context, p string) error {
		changed <- p
		return nil
	})

	os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644)

	select {
	case p := <-changed:
		t.Errorf("unexpected change for %q", p)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_SeesAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	os.WriteFile(path, []byte("{}"), 0644)

	w, err := New([]string{path}, 20*time.Millisecond, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	changed := make(chan string, 4)
	go w.Run(ctx, func(_ context.Context, p string) error {
		changed <- p
		return errors.New("handler errors are logged, not fatal")
	})

	tmp := path + ".tmp"
	os.WriteFile(tmp, []byte(`{"b":1}`), 0644)
	os.Rename(tmp, path)

	select {
	case <-changed:
	case <-ctx.Done():
		t.Fatal("timeout waiting for change after rename")
	}
}

func TestWatcher_RunReturnsOnCancel(t *testing.T) {
	w, err := New([]string{filepath.Join(t.TempDir(), "x.json")}, time.Millisecond, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func(context.Context, string) error { return nil }) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	if _, err := New([]string{filepath.Join(t.TempDir(), "nope", "data.json")}, time.Millisecond, zerolog.Nop()); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
