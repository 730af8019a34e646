// Package config loads the server configuration from a YAML file, applying
// sane defaults when the file or individual keys are absent.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime configuration for the simulation server.
type Config struct {
	// ListenAddr is the HTTP/WebSocket bind address.
	ListenAddr string `yaml:"listen_addr"`

	// DBPath is the SQLite database file for saved games.
	DBPath string `yaml:"db_path"`

	// CompanyName is used when starting a fresh game.
	CompanyName string `yaml:"company_name"`

	// Seed for the simulation's random source. Zero means derive from the
	// current time.
	Seed int64 `yaml:"seed"`

	// TickIntervalMS is how often the simulation advances, in milliseconds.
	TickIntervalMS int `yaml:"tick_interval_ms"`

	// BroadcastIntervalMS is how often state snapshots are pushed to
	// WebSocket clients, in milliseconds.
	BroadcastIntervalMS int `yaml:"broadcast_interval_ms"`

	// AutosaveMinutes is the wall-clock autosave period. Zero disables
	// autosaving.
	AutosaveMinutes int `yaml:"autosave_minutes"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		ListenAddr:          ":8080",
		DBPath:              "data/tycoon.db",
		CompanyName:         "PixelSoft",
		TickIntervalMS:      100,
		BroadcastIntervalMS: 500,
		AutosaveMinutes:     5,
	}
}

// Load reads the configuration at path. A missing file is not an error: the
// defaults are returned. Unknown keys are rejected so typos surface early.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if strings.TrimSpace(c.ListenAddr) == "" {
		c.ListenAddr = def.ListenAddr
	}
	if strings.TrimSpace(c.DBPath) == "" {
		c.DBPath = def.DBPath
	}
	if strings.TrimSpace(c.CompanyName) == "" {
		c.CompanyName = def.CompanyName
	}
	if c.TickIntervalMS == 0 {
		c.TickIntervalMS = def.TickIntervalMS
	}
	if c.BroadcastIntervalMS == 0 {
		c.BroadcastIntervalMS = def.BroadcastIntervalMS
	}
}

func (c Config) validate() error {
	if c.TickIntervalMS < 10 {
		return fmt.Errorf("tick_interval_ms must be >= 10, got %d", c.TickIntervalMS)
	}
	if c.BroadcastIntervalMS < c.TickIntervalMS {
		return fmt.Errorf("broadcast_interval_ms must be >= tick_interval_ms")
	}
	if c.AutosaveMinutes < 0 {
		return fmt.Errorf("autosave_minutes must not be negative")
	}
	return nil
}

// TickInterval returns the tick period as a duration.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}

// BroadcastInterval returns the snapshot push period as a duration.
func (c Config) BroadcastInterval() time.Duration {
	return time.Duration(c.BroadcastIntervalMS) * time.Millisecond
}

// AutosaveInterval returns the autosave period, or zero when disabled.
func (c Config) AutosaveInterval() time.Duration {
	return time.Duration(c.AutosaveMinutes) * time.Minute
}
