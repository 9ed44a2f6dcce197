package policy

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultDebounceInterval is the Watch debounce used when FileOptions does
// not set one.
const DefaultDebounceInterval = 100 * time.Millisecond

// FileOptions configures a File policy handle.
type FileOptions struct {
	// Logger receives load, reload and watch events.
	// Default: slog.Default().
	Logger *slog.Logger

	// DebounceInterval is the quiet period Watch waits for after a file
	// event before reloading, so editors writing in several syscalls
	// trigger one reload, not five.
	// Default: DefaultDebounceInterval.
	DebounceInterval time.Duration

	// OnReload, when set, is called after every successful reload with the
	// newly active policy.
	OnReload func(*Static)

	// OnError, when set, is called when a reload attempt fails. The
	// previously active policy stays in effect.
	OnError func(error)
}

// File is a reloadable policy handle bound to a document on disk. It
// implements cmcd.RequestConfig by delegating every query to the current
// snapshot, which Reload and Watch swap atomically: queries are lock-free
// and always see a complete policy, never a half-applied one.
type File struct {
	path     string
	logger   *slog.Logger
	debounce time.Duration
	onReload func(*Static)
	onError  func(error)

	current atomic.Pointer[Static]

	mu            sync.Mutex
	watching      bool
	stopRequested bool
	stopCh        chan struct{}
	doneCh        chan struct{}
}

// OpenFile loads the document at path and returns a File serving it. A
// document that does not load or validate fails here, so a File never
// exists without a usable policy behind it.
func OpenFile(path string, opts *FileOptions) (*File, error) {
	if opts == nil {
		opts = &FileOptions{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	debounce := opts.DebounceInterval
	if debounce <= 0 {
		debounce = DefaultDebounceInterval
	}

	initial, err := Load(path)
	if err != nil {
		return nil, err
	}

	f := &File{
		path:     path,
		logger:   logger,
		debounce: debounce,
		onReload: opts.OnReload,
		onError:  opts.OnError,
	}
	f.current.Store(initial)
	f.logger.Info("policy loaded", "path", path)
	return f, nil
}

// Path returns the document path the handle is bound to.
func (f *File) Path() string {
	return f.path
}

// Snapshot returns the currently active policy.
func (f *File) Snapshot() *Static {
	return f.current.Load()
}

// Reload re-reads the document and atomically activates it. On failure the
// previous policy stays active, the OnError hook fires and the error is
// returned.
func (f *File) Reload() error {
	next, err := Load(f.path)
	if err != nil {
		f.logger.Error("policy reload failed, previous policy stays active",
			"path", f.path,
			"error", err,
		)
		if f.onError != nil {
			f.onError(err)
		}
		return err
	}

	f.current.Store(next)
	f.logger.Info("policy reloaded", "path", f.path)
	if f.onReload != nil {
		f.onReload(next)
	}
	return nil
}

// IsKeyAllowed implements cmcd.RequestConfig against the current snapshot.
func (f *File) IsKeyAllowed(key string) bool {
	return f.Snapshot().IsKeyAllowed(key)
}

// CustomData implements cmcd.RequestConfig against the current snapshot.
func (f *File) CustomData() map[string]string {
	return f.Snapshot().CustomData()
}

// RequestedMaximumThroughputKbps implements cmcd.RequestConfig against the
// current snapshot.
func (f *File) RequestedMaximumThroughputKbps(observedThroughputKbps int) int {
	return f.Snapshot().RequestedMaximumThroughputKbps(observedThroughputKbps)
}
