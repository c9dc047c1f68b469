package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches one input file and invokes a callback once
// writes settle. The parent directory is watched rather than the file
// itself, so editors that replace the file (write to a temp name, then
// rename over it) are still seen.
type FileWatcher struct {
	mu        sync.Mutex
	watcher   *fsnotify.Watcher
	path      string
	debouncer *Debouncer
	onChange  func(path string)
	stopCh    chan struct{}
	doneCh    chan struct{}
	running   bool
}

// NewFileWatcher creates a watcher for path. onChange runs on a timer
// goroutine after changes settle; debounce 0 selects the default
// window.
func NewFileWatcher(path string, debounce time.Duration, onChange func(path string)) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &FileWatcher{
		watcher:   w,
		path:      abs,
		debouncer: NewDebouncer(debounce),
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}, nil
}

// Start begins watching. This method is non-blocking; the event loop
// runs in its own goroutine until Stop or context cancellation.
func (fw *FileWatcher) Start(ctx context.Context) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.running {
		return nil
	}

	dir := filepath.Dir(fw.path)
	if err := fw.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	fw.running = true

	go fw.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (fw *FileWatcher) Stop() {
	fw.mu.Lock()
	if !fw.running {
		fw.mu.Unlock()
		return
	}
	fw.running = false
	fw.mu.Unlock()

	close(fw.stopCh)
	<-fw.doneCh

	fw.debouncer.Cancel()
	fw.watcher.Close()
}

// Path returns the watched file as an absolute path.
func (fw *FileWatcher) Path() string {
	return fw.path
}

func (fw *FileWatcher) run(ctx context.Context) {
	defer close(fw.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-fw.stopCh:
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)
		case _, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	// Events arrive for the whole directory; only the watched file
	// matters.
	if filepath.Clean(event.Name) != fw.path {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	fw.debouncer.Trigger(func() {
		fw.onChange(fw.path)
	})
}
