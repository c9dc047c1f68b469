package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileWatcher_SeesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "categories.csv")
	if err := os.WriteFile(path, []byte("initial"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	changed := make(chan string, 1)
	fw, err := NewFileWatcher(path, 30*time.Millisecond, func(p string) {
		select {
		case changed <- p:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	if err := fw.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer fw.Stop()

	if err := os.WriteFile(path, []byte("updated"), 0644); err != nil {
		t.Fatalf("rewrite fixture: %v", err)
	}

	select {
	case p := <-changed:
		if p != fw.Path() {
			t.Errorf("Expected callback path %s, got %s", fw.Path(), p)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for change callback")
	}
}

func TestFileWatcher_SeesAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "categories.csv")
	if err := os.WriteFile(path, []byte("initial"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	changed := make(chan struct{}, 1)
	fw, err := NewFileWatcher(path, 30*time.Millisecond, func(string) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	if err := fw.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer fw.Stop()

	// Editor-style save: write a temp file, rename it over the target.
	tmp := filepath.Join(dir, ".categories.csv.tmp")
	if err := os.WriteFile(tmp, []byte("replaced"), 0644); err != nil {
		t.Fatalf("write temp: %v", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("rename: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for replace callback")
	}
}

func TestFileWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "categories.csv")
	if err := os.WriteFile(path, []byte("initial"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	changed := make(chan struct{}, 4)
	fw, err := NewFileWatcher(path, 30*time.Millisecond, func(string) {
		changed <- struct{}{}
	})
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	if err := fw.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer fw.Stop()

	if err := os.WriteFile(filepath.Join(dir, "other.csv"), []byte("noise"), 0644); err != nil {
		t.Fatalf("write sibling: %v", err)
	}

	select {
	case <-changed:
		t.Error("Expected no callback for sibling file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFileWatcher_StopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.csv")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	fw, err := NewFileWatcher(path, 0, func(string) {})
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	if err := fw.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	fw.Stop()
	fw.Stop()
}

func TestFileWatcher_ContextCancelStopsLoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.csv")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	fw, err := NewFileWatcher(path, 0, func(string) {})
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := fw.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	cancel()

	select {
	case <-fw.doneCh:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for event loop to exit")
	}
}
