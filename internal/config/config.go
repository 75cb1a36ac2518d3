// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for nutrisense-tui.
//
// Configuration sources, in order of precedence:
//   - NUTRISENSE_* environment variables
//   - ~/.nutrisense/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config holds the complete nutrisense-tui configuration.
type Config struct {
	// Backend configuration
	Backend BackendConfig `toml:"backend"`

	// Capture configuration
	Capture CaptureConfig `toml:"capture"`

	// Narration configuration
	Narration NarrationConfig `toml:"narration"`
}

// BackendConfig points at the NutriSense analysis service.
type BackendConfig struct {
	// Endpoint is the API base URL, including the version prefix.
	Endpoint string `toml:"endpoint"`
	// TimeoutSecs bounds analyze/chat requests.
	TimeoutSecs int `toml:"timeout_secs"`
}

// CaptureConfig controls the camera still-grabber.
type CaptureConfig struct {
	// Command overrides grabber discovery. The output image path is
	// appended as the final argument.
	Command []string `toml:"command"`
}

// NarrationConfig controls the speech engine.
type NarrationConfig struct {
	// Command overrides engine discovery. The narration text is appended as
	// the final argument.
	Command []string `toml:"command"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			Endpoint:    "http://127.0.0.1:8000/api/v1",
			TimeoutSecs: 60,
		},
	}
}

// Timeout returns the backend request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSecs) * time.Second
}

// =============================================================================
// LOADING
// =============================================================================

// configPath returns the path of the user config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".nutrisense", "config.toml"), nil
}

// Load reads the configuration: defaults, then the config file if present,
// then environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	path, err := configPath()
	if err == nil {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads the configuration from an explicit file path plus
// environment overrides.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := loadFile(cfg, path); err != nil {
		return nil, err
	}
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile merges a TOML file into cfg. Missing files are skipped.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// applyEnv overlays NUTRISENSE_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("NUTRISENSE_ENDPOINT"); v != "" {
		cfg.Backend.Endpoint = v
	}
	if v := os.Getenv("NUTRISENSE_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.Backend.TimeoutSecs = secs
		}
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid backend endpoint: %q", c.Backend.Endpoint)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend endpoint must be http or https, got %q", u.Scheme)
	}
	if c.Backend.TimeoutSecs <= 0 {
		return fmt.Errorf("backend timeout must be positive, got %d", c.Backend.TimeoutSecs)
	}
	return nil
}
