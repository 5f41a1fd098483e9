package undo

import (
	"fmt"
	"log/slog"
)

// Limit returns the maximum number of retained actions, 0 for unlimited.
func (m *Manager) Limit() int {
	return m.limit
}

// SetLimit changes the capacity and trims the history to it.
// While a run is in progress the trim is deferred until the run ends.
func (m *Manager) SetLimit(limit int) error {
	if limit < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	m.limit = limit
	if m.processing {
		m.limitDirty = true
		return nil
	}
	m.limitActions()
	return nil
}

// limitActions trims the history to the limit. The retained window keeps
// up to limit-limit/2 actions before the cursor and limit/2 at or after it;
// quota one side does not use is given to the other.
func (m *Manager) limitActions() {
	limit := m.limit
	if limit == Unlimited || len(m.actions) <= limit {
		return
	}

	halfLimit := limit / 2
	actionsLeft := limit - halfLimit
	actionsRight := limit - actionsLeft

	deleteLeft := m.undoIndex - actionsLeft
	deleteRight := len(m.actions) - m.undoIndex - actionsRight

	if deleteLeft < 0 {
		deleteRight += deleteLeft
	} else if deleteRight < 0 {
		deleteLeft += deleteRight
	}

	if deleteLeft <= 0 && deleteRight <= 0 {
		return
	}

	m.logger.Debug("trimming history",
		slog.Int("limit", limit),
		slog.Int("left", max(deleteLeft, 0)),
		slog.Int("right", max(deleteRight, 0)),
	)

	m.emit(BeforeCanceling, nil, NoIndex)

	for i := 0; i < deleteLeft; i++ {
		m.undoIndex--
		m.cancelAt(0)
	}

	for j := 0; j < deleteRight; j++ {
		m.cancelAt(len(m.actions) - 1)
	}

	m.emit(CancelingFinished, nil, NoIndex)
}
