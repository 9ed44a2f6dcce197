package policy

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// waitSignal fails the test if ch stays silent for too long. Watcher tests
// lean on generous timeouts instead of tight sleeps.
func waitSignal[T any](t *testing.T, ch <-chan T, what string) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(5 * time.Second):
		t.Fatalf("Timed out waiting for %s", what)
		panic("unreachable")
	}
}

func openWatched(t *testing.T, path string) (*File, chan *Static, chan error) {
	t.Helper()
	reloads := make(chan *Static, 16)
	failures := make(chan error, 16)

	f, err := OpenFile(path, &FileOptions{
		Logger:           discardLogger(),
		DebounceInterval: 50 * time.Millisecond,
		OnReload:         func(s *Static) { reloads <- s },
		OnError:          func(err error) { failures <- err },
	})
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	return f, reloads, failures
}

// ============================================================================
// Watch Tests
// ============================================================================

func TestFile_WatchReloadsOnRewrite(t *testing.T) {
	path := writePolicy(t, "version: 1\n")
	f, reloads, _ := openWatched(t, path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watchDone := make(chan error, 1)
	go func() { watchDone <- f.Watch(ctx) }()

	// Give the watcher a moment to register before mutating the file.
	time.Sleep(200 * time.Millisecond)

	rewrite(t, path, "version: 1\ndenied_keys: [br]\n")
	waitSignal(t, reloads, "reload after rewrite")

	if f.IsKeyAllowed("br") {
		t.Error("Expected br to be denied after the watched reload")
	}

	cancel()
	if err := waitSignal(t, watchDone, "watcher shutdown"); err != nil {
		t.Errorf("Watch returned %v, want nil", err)
	}
}

func TestFile_WatchSurvivesBrokenRewrite(t *testing.T) {
	path := writePolicy(t, validPolicy)
	f, reloads, failures := openWatched(t, path)
	before := f.Snapshot()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = f.Watch(ctx) }()
	time.Sleep(200 * time.Millisecond)

	// A broken rewrite must not take the policy down.
	rewrite(t, path, "version: [broken")
	waitSignal(t, failures, "reload failure")
	if f.Snapshot() != before {
		t.Error("Expected the previous snapshot to stay active")
	}

	// And the next good rewrite must land.
	rewrite(t, path, "version: 1\ndenied_keys: [sid]\n")
	waitSignal(t, reloads, "reload after repair")
	if f.IsKeyAllowed("sid") {
		t.Error("Expected sid to be denied after the repaired reload")
	}
}

func TestFile_WatchSeesAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cmcd.yaml")
	if err := os.WriteFile(path, []byte("version: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	f, reloads, _ := openWatched(t, path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = f.Watch(ctx) }()
	time.Sleep(200 * time.Millisecond)

	// Write-then-rename, the way editors and configmap mounts replace files.
	tmp := filepath.Join(dir, ".cmcd.yaml.tmp")
	if err := os.WriteFile(tmp, []byte("version: 1\ndenied_keys: [rtp]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	waitSignal(t, reloads, "reload after atomic replace")
	if f.IsKeyAllowed("rtp") {
		t.Error("Expected rtp to be denied after the replace")
	}
}

func TestFile_WatchIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cmcd.yaml")
	if err := os.WriteFile(path, []byte("version: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	f, reloads, _ := openWatched(t, path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = f.Watch(ctx) }()
	time.Sleep(200 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloads:
		t.Error("Expected sibling writes to be ignored")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestFile_WatchTwiceFails(t *testing.T) {
	path := writePolicy(t, "version: 1\n")
	f, _, _ := openWatched(t, path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = f.Watch(ctx) }()
	time.Sleep(200 * time.Millisecond)

	if err := f.Watch(ctx); err == nil {
		t.Error("Expected the second Watch to fail")
	}
}

func TestFile_Stop(t *testing.T) {
	path := writePolicy(t, "version: 1\n")
	f, _, _ := openWatched(t, path)

	watchDone := make(chan error, 1)
	go func() { watchDone <- f.Watch(context.Background()) }()
	time.Sleep(200 * time.Millisecond)

	f.Stop()
	if err := waitSignal(t, watchDone, "watcher shutdown"); err != nil {
		t.Errorf("Watch returned %v, want nil", err)
	}

	// Stopping again is a no-op.
	f.Stop()
}
