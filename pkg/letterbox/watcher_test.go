package letterbox

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func startWatcher(t *testing.T, path string, onChange func() error, onError func(error)) (cancel func()) {
	t.Helper()
	cw, err := newConfigWatcher(path, 30*time.Millisecond, onChange, onError)
	if err != nil {
		t.Fatalf("newConfigWatcher() error = %v", err)
	}
	ctx, stop := context.WithCancel(context.Background())
	go cw.run(ctx)
	// Give the watcher time to start.
	time.Sleep(50 * time.Millisecond)
	return func() {
		stop()
		cw.wait()
	}
}

func TestConfigWatcherDetectsChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "letterbox.lua")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}

	var reloads atomic.Int32
	stop := startWatcher(t, path, func() error { reloads.Add(1); return nil }, nil)
	defer stop()

	if err := os.WriteFile(path, []byte("b"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	if got := reloads.Load(); got != 1 {
		t.Errorf("reloads = %d, want 1", got)
	}
}

func TestConfigWatcherDebounces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "letterbox.lua")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}

	var reloads atomic.Int32
	stop := startWatcher(t, path, func() error { reloads.Add(1); return nil }, nil)
	defer stop()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte{byte('a' + i)}, 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(200 * time.Millisecond)

	if got := reloads.Load(); got != 1 {
		t.Errorf("reloads = %d after rapid writes, want 1", got)
	}
}

func TestConfigWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "letterbox.lua")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}

	var reloads atomic.Int32
	stop := startWatcher(t, path, func() error { reloads.Add(1); return nil }, nil)
	defer stop()

	if err := os.WriteFile(filepath.Join(dir, "other.lua"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(150 * time.Millisecond)

	if got := reloads.Load(); got != 0 {
		t.Errorf("reloads = %d for unrelated file, want 0", got)
	}
}

func TestConfigWatcherAtomicRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "letterbox.lua")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}

	var reloads atomic.Int32
	stop := startWatcher(t, path, func() error { reloads.Add(1); return nil }, nil)
	defer stop()

	tmp := filepath.Join(dir, ".letterbox.lua.swp")
	if err := os.WriteFile(tmp, []byte("b"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	if got := reloads.Load(); got != 1 {
		t.Errorf("reloads = %d after rename, want 1", got)
	}
}

func TestConfigWatcherReportsReloadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "letterbox.lua")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}

	want := errors.New("bad config")
	var got atomic.Value
	stop := startWatcher(t, path, func() error { return want }, func(err error) { got.Store(err) })
	defer stop()

	if err := os.WriteFile(path, []byte("b"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	if err, _ := got.Load().(error); !errors.Is(err, want) {
		t.Errorf("onError received %v, want %v", err, want)
	}
}

func TestNewConfigWatcherMissingDir(t *testing.T) {
	_, err := newConfigWatcher("/nonexistent/dir/letterbox.lua", 0, func() error { return nil }, nil)
	if err == nil {
		t.Error("expected error for missing directory")
	}
}
