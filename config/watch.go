// ABOUTME: Config file watcher built on fsnotify
// ABOUTME: Watches the parent directory so editors that replace the file are still noticed

package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned by Next once the watcher has been closed
var ErrWatcherClosed = errors.New("config watcher closed")

// debounce lets atomic writes finish before the file is re-read
const debounce = 100 * time.Millisecond

// Watcher reports changes to a single config file
type Watcher struct {
	w      *fsnotify.Watcher
	path   string
	debugf func(string, ...interface{})
}

// NewWatcher starts watching path. The directory must exist; the file need not.
func NewWatcher(path string, debugf func(string, ...interface{})) (*Watcher, error) {
	if debugf == nil {
		debugf = func(string, ...interface{}) {}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()

		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()

		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}

	return &Watcher{w: fw, path: abs, debugf: debugf}, nil
}

// Next blocks until the config file is written or created, then returns the
// reloaded config. Parse errors are returned alongside the default config.
func (w *Watcher) Next(ctx context.Context) (Config, error) {
	for {
		select {
		case <-ctx.Done():
			return Config{}, ctx.Err()
		case event, ok := <-w.w.Events:
			if !ok {
				return Config{}, ErrWatcherClosed
			}

			if filepath.Clean(event.Name) != w.path {
				continue
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			time.Sleep(debounce)
			w.drainPending()

			w.debugf("[WATCHER] %s changed (%s)", w.path, event.Op)

			return LoadConfig(w.path)
		case err, ok := <-w.w.Errors:
			if !ok {
				return Config{}, ErrWatcherClosed
			}

			w.debugf("[WATCHER] Error: %v", err)
		}
	}
}

// drainPending discards events that piled up during the debounce window
func (w *Watcher) drainPending() {
	for {
		select {
		case _, ok := <-w.w.Events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.w.Close()
}
