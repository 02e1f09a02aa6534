// Package config loads the fold configuration file.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fwojciec/fold"
)

// Config holds the user-facing knobs. Enabled is the one semantic
// switch: when false, grouping is off and fragments render as the
// host produced them. The rest is cosmetic.
type Config struct {
	Enabled    bool   `yaml:"enabled"`
	IntervalMS int    `yaml:"interval_ms"`
	Indent     string `yaml:"indent"`
	Model      string `yaml:"model"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Enabled:    true,
		IntervalMS: 100,
		Indent:     "  ",
	}
}

// DefaultPath returns the conventional config file location, or ""
// when the home directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "fold", "config.yaml")
}

// Load reads path, falling back to defaults when the file is absent.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.IntervalMS <= 0 {
		cfg.IntervalMS = 100
	}
	if cfg.Indent == "" {
		cfg.Indent = "  "
	}
	return cfg, nil
}

// Options converts the config into controller options.
func (c Config) Options() []fold.Option {
	return []fold.Option{
		fold.WithEnabled(c.Enabled),
		fold.WithInterval(time.Duration(c.IntervalMS) * time.Millisecond),
		fold.WithIndent(c.Indent),
	}
}
