// Package config loads tool settings from .cld.yaml files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/bkydataconsulting/Category-Level-Dashboard/pkg/hierarchy"
)

// FileName is the config file looked up in the working directory and
// then the home directory.
const FileName = ".cld.yaml"

// Config holds tool settings. Zero values mean "use the built-in
// default"; command line flags override whatever is loaded here.
type Config struct {
	// Indent is the indentation unit for rendered trees.
	Indent string `yaml:"indent,omitempty"`

	// Policy names how empty cells fold: end-path, repeat, or bridge.
	Policy string `yaml:"policy,omitempty"`

	// Port for the upload server (0 auto-selects).
	Port int `yaml:"port,omitempty"`

	// NoBrowser stops -serve from opening the page automatically.
	NoBrowser bool `yaml:"no_browser,omitempty"`

	// DebounceMS is the watch settle window in milliseconds.
	DebounceMS int `yaml:"debounce_ms,omitempty"`

	// Theme selects the viewer palette: "", "dark", or "light".
	Theme string `yaml:"theme,omitempty"`
}

// ParsedPolicy resolves the configured fold policy.
func (c Config) ParsedPolicy() (hierarchy.EmptyCellPolicy, error) {
	return hierarchy.ParsePolicy(c.Policy)
}

// Load reads and validates the config at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if _, err := cfg.ParsedPolicy(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", filepath.Base(path), err)
	}
	switch cfg.Theme {
	case "", "dark", "light":
	default:
		return Config{}, fmt.Errorf("config %s: unknown theme %q (want dark or light)", filepath.Base(path), cfg.Theme)
	}
	return cfg, nil
}

// Discover loads the first config found: the working directory, then
// the home directory. A missing file is not an error; the zero Config
// and an empty path are returned.
func Discover() (Config, string, error) {
	candidates := []string{FileName}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, FileName))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := Load(path)
		if err != nil {
			return Config{}, path, err
		}
		return cfg, path, nil
	}
	return Config{}, "", nil
}

// Save writes the config to path.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
