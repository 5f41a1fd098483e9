package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dshills/undostack/internal/logging"
)

// DefaultLimit is the history limit used when none is configured.
const DefaultLimit = 100

// Config holds all settings.
type Config struct {
	Undo UndoConfig
	Log  LogConfig
}

// UndoConfig configures the undo engine.
type UndoConfig struct {
	// Limit is the maximum number of retained actions, 0 for unlimited.
	Limit int
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string
	// NoColor disables ANSI colors in log output.
	NoColor bool
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Undo: UndoConfig{Limit: DefaultLimit},
		Log:  LogConfig{Level: "info"},
	}
}

// Validate checks every setting.
func (c Config) Validate() error {
	if c.Undo.Limit < 0 {
		return &ValidationError{
			Field:   "undo.limit",
			Value:   c.Undo.Limit,
			Message: "must not be negative",
			Err:     ErrInvalidLimit,
		}
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return &ValidationError{
			Field:   "log.level",
			Value:   c.Log.Level,
			Message: "must be one of debug, info, warn, error",
			Err:     ErrInvalidLogLevel,
		}
	}
	return nil
}

// apply overlays decoded settings onto c.
// Keys the program does not know are ignored.
func (c Config) apply(raw map[string]any) (Config, error) {
	if undo, ok := section(raw, "undo"); ok {
		if v, ok := undo["limit"]; ok {
			limit, err := parseLimit(v)
			if err != nil {
				return c, err
			}
			c.Undo.Limit = limit
		}
	}

	if log, ok := section(raw, "log"); ok {
		if v, ok := log["level"]; ok {
			s, ok := v.(string)
			if !ok {
				return c, &ValidationError{
					Field:   "log.level",
					Value:   v,
					Message: fmt.Sprintf("must be a string, not %T", v),
					Err:     ErrInvalidLogLevel,
				}
			}
			c.Log.Level = strings.ToLower(s)
		}
		if v, ok := log["no_color"]; ok {
			b, ok := v.(bool)
			if !ok {
				return c, &ValidationError{
					Field:   "log.no_color",
					Value:   v,
					Message: fmt.Sprintf("must be a boolean, not %T", v),
				}
			}
			c.Log.NoColor = b
		}
	}

	return c, c.Validate()
}

// section returns the table stored under key.
func section(raw map[string]any, key string) (map[string]any, bool) {
	v, ok := raw[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// parseLimit converts a decoded value to a history limit.
// TOML yields int64, YAML yields int; floats are accepted only when integral.
func parseLimit(v any) (int, error) {
	invalid := func(msg string) error {
		return &ValidationError{Field: "undo.limit", Value: v, Message: msg, Err: ErrInvalidLimit}
	}

	var n int64
	switch val := v.(type) {
	case int:
		n = int64(val)
	case int64:
		n = val
	case uint64:
		if val > math.MaxInt32 {
			return 0, invalid("out of range")
		}
		n = int64(val)
	case float64:
		if val != math.Trunc(val) || math.IsInf(val, 0) || math.IsNaN(val) {
			return 0, invalid("must be a whole number")
		}
		n = int64(val)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return 0, invalid("must be a number")
		}
		n = parsed
	default:
		return 0, invalid(fmt.Sprintf("must be a number, not %T", v))
	}

	if n < 0 {
		return 0, invalid("must not be negative")
	}
	if n > math.MaxInt32 {
		return 0, invalid("out of range")
	}
	return int(n), nil
}
