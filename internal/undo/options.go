package undo

import "log/slog"

// Unlimited disables history trimming.
const Unlimited = 0

// Option configures a Manager.
type Option func(*Manager)

// WithLimit sets the maximum number of retained actions.
// Negative values make New fail.
func WithLimit(limit int) Option {
	return func(m *Manager) {
		m.limit = limit
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}
