package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

// envOverrides mirrors the settings that may come from the environment.
// Values stay strings so they go through the same validation as files.
type envOverrides struct {
	Limit    string `env:"UNDOSTACK_LIMIT"`
	LogLevel string `env:"UNDOSTACK_LOG_LEVEL"`
	NoColor  string `env:"UNDOSTACK_LOG_NO_COLOR"`
}

// ApplyEnv overlays environment variables onto cfg.
// A nil environ reads the process environment.
func ApplyEnv(cfg Config, environ map[string]string) (Config, error) {
	var raw envOverrides
	opts := env.Options{Environment: environ}
	if err := env.ParseWithOptions(&raw, opts); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	undo := map[string]any{}
	log := map[string]any{}

	if raw.Limit != "" {
		undo["limit"] = raw.Limit
	}
	if raw.LogLevel != "" {
		log["level"] = raw.LogLevel
	}
	if raw.NoColor != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(raw.NoColor))
		if err != nil {
			return cfg, &ValidationError{
				Field:   "log.no_color",
				Value:   raw.NoColor,
				Message: "must be a boolean",
				Err:     err,
			}
		}
		log["no_color"] = b
	}

	out, err := cfg.apply(map[string]any{"undo": undo, "log": log})
	if err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}
	return out, nil
}
