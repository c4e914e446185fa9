package config

import (
	"os"
	"strconv"
)

// Environment variables overriding file and default values.
const (
	// EnvPlatform overrides the platform policy.
	EnvPlatform = "IMEFLOW_PLATFORM"

	// EnvLogLevel overrides the log level.
	EnvLogLevel = "IMEFLOW_LOG_LEVEL"

	// EnvWatch overrides the replay watch flag ("true"/"false").
	EnvWatch = "IMEFLOW_WATCH"

	// EnvDebounceMS overrides the replay debounce in milliseconds.
	EnvDebounceMS = "IMEFLOW_DEBOUNCE_MS"
)

// applyEnv overrides cfg fields from the environment. Unparsable
// values are ignored; validation catches anything that matters.
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvPlatform); ok {
		cfg.Platform = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.Logging.Level = v
	}
	if v, ok := os.LookupEnv(EnvWatch); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Replay.Watch = b
		}
	}
	if v, ok := os.LookupEnv(EnvDebounceMS); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Replay.DebounceMS = n
		}
	}
}
