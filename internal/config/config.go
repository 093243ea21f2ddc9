// Package config loads server settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ironsheep/image-source-mcp/internal/imagesource"
)

type Config struct {
	// LogLevel is a zerolog level name: trace, debug, info, warn, error.
	LogLevel string `env:"IMAGE_MCP_LOG_LEVEL" envDefault:"info"`

	// LogFormat is "console" for human-readable output or "json".
	LogFormat string `env:"IMAGE_MCP_LOG_FORMAT" envDefault:"console"`

	// DefaultMode is the decode mode used when a tool call names none.
	DefaultMode string `env:"IMAGE_MCP_DEFAULT_MODE" envDefault:"color"`

	// MaxRequestBytes bounds a single JSON-RPC line. Buffer sources arrive
	// base64-encoded inside the request, so this caps their size too.
	MaxRequestBytes int `env:"IMAGE_MCP_MAX_REQUEST_BYTES" envDefault:"33554432"`
}

// Load loads .env (if present) and parses environment variables into Config.
func Load() (Config, error) {
	// Load .env if available; ignore error if file does not exist
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadFrom parses cfg from the given variables only, ignoring the process
// environment.
func LoadFrom(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that every setting can be interpreted.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid IMAGE_MCP_LOG_LEVEL: %w", err)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid IMAGE_MCP_LOG_FORMAT %q: want console or json", c.LogFormat)
	}
	if _, err := c.Mode(); err != nil {
		return fmt.Errorf("invalid IMAGE_MCP_DEFAULT_MODE: %w", err)
	}
	if c.MaxRequestBytes < 64*1024 {
		return fmt.Errorf("IMAGE_MCP_MAX_REQUEST_BYTES must be at least 65536, got %d", c.MaxRequestBytes)
	}
	return nil
}

// Mode returns DefaultMode parsed as a decode mode.
func (c Config) Mode() (imagesource.Mode, error) {
	return imagesource.ParseMode(c.DefaultMode)
}
