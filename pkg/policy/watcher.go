package policy

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch keeps the File fresh: it watches the document's directory and runs
// Reload after a debounced burst of events touching the document. Watching
// the directory rather than the file itself survives the write-temp-then-
// rename dance editors and orchestrators use to replace files atomically.
//
// Watch blocks until ctx is cancelled or Stop is called; a failed reload
// does not stop it. Only one Watch may run per File at a time.
func (f *File) Watch(ctx context.Context) error {
	f.mu.Lock()
	if f.watching {
		f.mu.Unlock()
		return fmt.Errorf("already watching %q", f.path)
	}
	f.watching = true
	f.stopRequested = false
	f.stopCh = make(chan struct{})
	f.doneCh = make(chan struct{})
	stopCh, doneCh := f.stopCh, f.doneCh
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.watching = false
		f.mu.Unlock()
		close(doneCh)
	}()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(f.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %q: %w", dir, err)
	}

	debounce := newDebouncer(f.debounce)
	defer debounce.stop()

	f.logger.Info("policy watcher started",
		"path", f.path,
		"debounce_ms", f.debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			f.logger.Info("policy watcher stopped", "reason", "context cancelled")
			return nil

		case <-stopCh:
			f.logger.Info("policy watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !f.shouldReload(event) {
				continue
			}
			f.logger.Debug("policy file event",
				"path", event.Name,
				"op", event.Op.String(),
			)
			// Reload logs and reports its own failures.
			debounce.trigger(func() { _ = f.Reload() })

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			f.logger.Error("policy watcher error", "error", err)
		}
	}
}

// Stop terminates a running Watch and waits for it to wind down. Stopping a
// File that is not watching is a no-op.
func (f *File) Stop() {
	f.mu.Lock()
	if !f.watching || f.stopRequested {
		f.mu.Unlock()
		return
	}
	f.stopRequested = true
	stopCh, doneCh := f.stopCh, f.doneCh
	f.mu.Unlock()

	close(stopCh)
	<-doneCh
}

// shouldReload filters directory events down to mutations of the bound
// document. Chmod-only events never carry new content.
func (f *File) shouldReload(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(f.path) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// debouncer coalesces bursts of events into a single callback after a quiet
// interval.
type debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval}
}

// trigger schedules fn after the quiet interval, displacing any callback
// already pending.
func (d *debouncer) trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, fn)
}

// stop cancels any pending callback and refuses new ones.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
