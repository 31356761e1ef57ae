// Package config provides configuration management for the adboard CLI.
package config

import (
	"time"

	"github.com/leapstack-labs/adboard/internal/source"
)

// Default configuration values.
const (
	DefaultStateFile       = ".adboard/prefs.db"
	DefaultOutput          = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultProfile         = "cli"
	DefaultPort            = 8765
	DefaultShutdownTimeout = 5 * time.Second
	DefaultSessionSecret   = "adboard-dev-secret-change-in-production" //nolint:gosec // development default
)

// Config holds all CLI configuration options.
type Config struct {
	StatePath    string        `koanf:"state_path"`
	Profile      string        `koanf:"profile"`
	Verbose      bool          `koanf:"verbose"`
	OutputFormat string        `koanf:"output"`
	Source       source.Config `koanf:"source"`
	UI           UIConfig      `koanf:"ui"`
}

// UIConfig holds configuration for the dashboard server.
type UIConfig struct {
	Port            int           `koanf:"port"`
	Watch           bool          `koanf:"watch"`
	Dev             bool          `koanf:"dev"`
	SessionSecret   string        `koanf:"session_secret"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}
