package config

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

// ChangeFunc is called by a [Watcher] after a new valid revision of the
// config file has been loaded.
type ChangeFunc func(old, new *Config, diff ConfigDiff)

// Watcher polls a config file and calls a [ChangeFunc] when a valid revision
// with semantic changes appears. Invalid revisions are logged and skipped;
// [Watcher.Current] keeps returning the last valid config.
type Watcher struct {
	path     string
	interval time.Duration
	onChange ChangeFunc

	mu      sync.Mutex
	current *Config
	mtime   time.Time
	hash    [sha256.Size]byte

	stop     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

// WatcherOption configures a [Watcher].
type WatcherOption func(*Watcher)

// WithInterval sets the polling interval. The default is 5 seconds.
func WithInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// NewWatcher loads the config at path and starts polling it in a background
// goroutine. onChange may be nil.
func NewWatcher(path string, onChange ChangeFunc, opts ...WatcherOption) (*Watcher, error) {
	w := &Watcher{
		path:     path,
		interval: 5 * time.Second,
		onChange: onChange,
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	rev, err := w.read()
	if err != nil {
		return nil, fmt.Errorf("config: watcher initial load: %w", err)
	}
	w.current, w.mtime, w.hash = rev.cfg, rev.mtime, rev.hash

	go w.poll()
	return w, nil
}

// Current returns the most recently loaded valid config.
func (w *Watcher) Current() *Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Stop stops polling and waits for the background goroutine to exit. It is
// safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
	})
	<-w.stopped
}

func (w *Watcher) poll() {
	defer close(w.stopped)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.check()
		}
	}
}

// check reloads the file when its mtime moved. onChange runs only when the
// content hash differs and [Diff] reports a change.
func (w *Watcher) check() {
	info, err := os.Stat(w.path)
	if err != nil {
		slog.Warn("config watcher: cannot stat file", "path", w.path, "err", err)
		return
	}

	w.mu.Lock()
	unchanged := info.ModTime().Equal(w.mtime)
	w.mu.Unlock()
	if unchanged {
		return
	}

	rev, err := w.read()
	if err != nil {
		slog.Warn("config watcher: keeping previous config", "path", w.path, "err", err)
		// Do not re-read the same broken revision on every tick.
		w.mu.Lock()
		w.mtime = info.ModTime()
		w.mu.Unlock()
		return
	}

	w.mu.Lock()
	w.mtime = rev.mtime
	if rev.hash == w.hash {
		w.mu.Unlock()
		return
	}
	old := w.current
	w.current, w.hash = rev.cfg, rev.hash
	w.mu.Unlock()

	diff := Diff(old, rev.cfg)
	slog.Info("config watcher: configuration reloaded",
		"path", w.path,
		"scoring_changed", diff.ScoringChanged,
		"search_changed", diff.SearchChanged,
	)
	if w.onChange != nil && diff.Any() {
		w.onChange(old, rev.cfg, diff)
	}
}

type revision struct {
	cfg   *Config
	hash  [sha256.Size]byte
	mtime time.Time
}

// read parses and validates the config file.
func (w *Watcher) read() (revision, error) {
	info, err := os.Stat(w.path)
	if err != nil {
		return revision{}, err
	}
	data, err := os.ReadFile(w.path)
	if err != nil {
		return revision{}, err
	}
	cfg, err := LoadFromReader(bytes.NewReader(data))
	if err != nil {
		return revision{}, err
	}
	return revision{cfg: cfg, hash: sha256.Sum256(data), mtime: info.ModTime()}, nil
}
