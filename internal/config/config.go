// Package config loads the configuration for the replay tool and for
// hosts embedding the reconciler: platform policy, logging, and replay
// behavior. Values come from defaults, an optional TOML file, and
// IMEFLOW_* environment overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/imeflow/internal/logger"
	"github.com/dshills/imeflow/internal/native"
)

// Errors returned by config loading.
var (
	// ErrInvalidConfig indicates the configuration failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the top-level configuration.
type Config struct {
	// Platform selects the reconciliation policy ("default" or
	// "android").
	Platform string `toml:"platform"`

	// Logging configures structured logging.
	Logging LoggingConfig `toml:"logging"`

	// Replay configures the trace replay tool.
	Replay ReplayConfig `toml:"replay"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum level emitted ("debug", "info", "warn",
	// "error").
	Level string `toml:"level"`
}

// ReplayConfig configures the trace replay tool.
type ReplayConfig struct {
	// Watch re-runs the replay when the trace file changes.
	Watch bool `toml:"watch"`

	// DebounceMS is the quiet period after a file change before the
	// replay re-runs.
	DebounceMS int `toml:"debounce_ms"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Platform: "android",
		Logging:  LoggingConfig{Level: "info"},
		Replay:   ReplayConfig{DebounceMS: 200},
	}
}

// Load builds the configuration from defaults, the optional TOML file
// at path, and environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for inconsistencies.
func (c Config) Validate() error {
	if _, err := native.ParsePlatform(c.Platform); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Replay.DebounceMS < 0 {
		return fmt.Errorf("%w: debounce_ms must not be negative", ErrInvalidConfig)
	}
	return nil
}

// PlatformValue returns the parsed platform. Call Validate first; an
// invalid name falls back to the default platform.
func (c Config) PlatformValue() native.Platform {
	p, err := native.ParsePlatform(c.Platform)
	if err != nil {
		return native.PlatformDefault
	}
	return p
}
