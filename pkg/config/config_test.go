package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/hierarchy"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
indent: "    "
policy: repeat
port: 8540
no_browser: true
debounce_ms: 400
theme: dark
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Indent != "    " {
		t.Errorf("Expected four-space indent, got %q", cfg.Indent)
	}
	if cfg.Policy != "repeat" {
		t.Errorf("Expected repeat policy, got %q", cfg.Policy)
	}
	if cfg.Port != 8540 {
		t.Errorf("Expected port 8540, got %d", cfg.Port)
	}
	if !cfg.NoBrowser {
		t.Error("Expected no_browser true")
	}
	if cfg.DebounceMS != 400 {
		t.Errorf("Expected debounce 400ms, got %d", cfg.DebounceMS)
	}
	if cfg.Theme != "dark" {
		t.Errorf("Expected dark theme, got %q", cfg.Theme)
	}

	policy, err := cfg.ParsedPolicy()
	if err != nil {
		t.Fatalf("ParsedPolicy failed: %v", err)
	}
	if policy != hierarchy.PolicyRepeat {
		t.Errorf("Expected PolicyRepeat, got %v", policy)
	}
}

func TestLoad_UnknownPolicy(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "policy: ffill\n")

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "policy") {
		t.Errorf("Expected policy error, got %v", err)
	}
}

func TestLoad_UnknownTheme(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "theme: solarized\n")

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "theme") {
		t.Errorf("Expected theme error, got %v", err)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "indent: [unclosed\n")

	if _, err := Load(path); err == nil {
		t.Error("Expected parse error")
	}
}

func TestDiscover_WorkingDirFirst(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "policy: bridge\n")
	t.Setenv("HOME", home)

	work := t.TempDir()
	writeConfig(t, work, "policy: repeat\n")
	t.Chdir(work)

	cfg, path, err := Discover()
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if cfg.Policy != "repeat" {
		t.Errorf("Expected working dir config to win, got policy %q from %s", cfg.Policy, path)
	}
}

func TestDiscover_FallsBackToHome(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, "policy: bridge\n")
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	cfg, path, err := Discover()
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if cfg.Policy != "bridge" {
		t.Errorf("Expected home config, got policy %q", cfg.Policy)
	}
	if !strings.HasPrefix(path, home) {
		t.Errorf("Expected home path, got %s", path)
	}
}

func TestDiscover_NoConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, path, err := Discover()
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if path != "" {
		t.Errorf("Expected empty path, got %s", path)
	}
	if cfg != (Config{}) {
		t.Errorf("Expected zero config, got %+v", cfg)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	want := Config{Indent: "\t", Policy: "end-path", Port: 8555, Theme: "light"}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}
