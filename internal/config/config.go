// Copyright (c) 2025 ropbear
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for nscmd.
//
// Configuration is TOML with sensible defaults and environment variable
// overrides. File location: ~/.nscmd/config.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete nscmd configuration.
type Config struct {
	Version string `toml:"version"`

	UI         UIConfig         `toml:"ui"`
	Log        LogConfig        `toml:"log"`
	History    HistoryConfig    `toml:"history"`
	Transcript TranscriptConfig `toml:"transcript"`
	Output     OutputConfig     `toml:"output"`
}

// UIConfig controls the interactive surface.
type UIConfig struct {
	// Prompt is the glyph rendered after the namespace path
	Prompt string `toml:"prompt"`
	// Color enables ANSI color output (still subject to TTY detection)
	Color bool `toml:"color"`
	// Banner prints the greeting banner on interactive startup
	Banner bool `toml:"banner"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error, off
	Level string `toml:"level"`
}

// HistoryConfig controls interactive input history.
type HistoryConfig struct {
	// File is the readline history path (empty = ~/.nscmd/history)
	File string `toml:"file"`
}

// TranscriptConfig controls the SQLite session transcript.
type TranscriptConfig struct {
	Enabled bool `toml:"enabled"`
	// Path is the database path (empty = ~/.nscmd/transcript.db)
	Path string `toml:"path"`
}

// OutputConfig controls the default output sinks.
type OutputConfig struct {
	// File, when set, enables the append-per-write file sink
	File string `toml:"file"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",
		UI: UIConfig{
			Prompt: "└─▪",
			Color:  true,
			Banner: true,
		},
		Log: LogConfig{
			Level: "info",
		},
		Transcript: TranscriptConfig{
			Enabled: false,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the nscmd configuration directory (~/.nscmd).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".nscmd"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// HistoryPath resolves the configured or default history file path.
func (c *Config) HistoryPath() string {
	if c.History.File != "" {
		return c.History.File
	}
	dir, err := ConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "nscmd_history")
	}
	return filepath.Join(dir, "history")
}

// TranscriptPath resolves the configured or default transcript path.
func (c *Config) TranscriptPath() string {
	if c.Transcript.Path != "" {
		return c.Transcript.Path
	}
	dir, err := ConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "nscmd_transcript.db")
	}
	return filepath.Join(dir, "transcript.db")
}

// =============================================================================
// LOAD
// =============================================================================

// Load reads the config file, applies environment overrides and
// validates. A missing file is not an error: defaults are used.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// LoadFromPath loads a config from an explicit file, with env overrides
// and validation applied.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies NSCMD_* environment variables over the
// loaded values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("NSCMD_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("NSCMD_OUTPUT_FILE"); v != "" {
		c.Output.File = v
	}
	if v := os.Getenv("NSCMD_HISTORY_FILE"); v != "" {
		c.History.File = v
	}
	if v := os.Getenv("NSCMD_NO_COLOR"); v != "" {
		c.UI.Color = false
	}
	if v := os.Getenv("NSCMD_NO_BANNER"); v != "" {
		c.UI.Banner = false
	}
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled", "off":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	if c.UI.Prompt == "" {
		c.UI.Prompt = Default().UI.Prompt
	}
	return nil
}

// Save writes cfg to the default config path.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the process-wide configuration, loading it on first
// use. Load failures fall back to defaults.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal replaces the process-wide configuration (tests and startup
// flags).
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	globalConfig = cfg
	globalConfigMu.Unlock()
}
