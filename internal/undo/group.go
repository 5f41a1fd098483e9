package undo

import "log/slog"

// BeginGroup starts an action group.
// Actions added while grouping are recorded as a single CompoundAction
// when the group ends. Nested calls are ignored.
func (m *Manager) BeginGroup(label string) {
	if m.grouping {
		return
	}
	m.grouping = true
	m.groupLabel = label
	m.groupItems = nil
}

// EndGroup finishes the group and adds the collected actions as one entry.
// Returns false if there was no group, the group was empty or the compound
// could not be added.
func (m *Manager) EndGroup() bool {
	if !m.grouping {
		return false
	}
	m.grouping = false

	items := m.groupItems
	m.groupItems = nil
	if len(items) == 0 {
		return false
	}

	compound := NewCompoundAction(m.groupLabel, items...)
	if !m.Add(compound) {
		m.logger.Debug("group rejected", slog.String("label", m.groupLabel))
		compound.Cancel()
		return false
	}
	return true
}

// CancelGroup ends the group without adding it and cancels its actions.
func (m *Manager) CancelGroup() {
	if !m.grouping {
		return
	}
	for _, a := range m.groupItems {
		a.Cancel()
	}
	m.grouping = false
	m.groupItems = nil
}

// IsGrouping returns true if a group is open.
func (m *Manager) IsGrouping() bool {
	return m.grouping
}

// GroupScope provides a convenient way to group actions using defer.
// Usage:
//
//	func rename(m *undo.Manager) {
//	    defer m.GroupScope("Rename symbol").End()
//	    // ... several m.Add calls ...
//	}
type GroupScope struct {
	manager *Manager
	active  bool
}

// GroupScope starts a new group scope.
func (m *Manager) GroupScope(label string) *GroupScope {
	m.BeginGroup(label)
	return &GroupScope{manager: m, active: true}
}

// End ends the group scope. Only the first call has effect.
func (g *GroupScope) End() {
	if g.active {
		g.manager.EndGroup()
		g.active = false
	}
}

// Cancel cancels the group scope without recording it.
func (g *GroupScope) Cancel() {
	if g.active {
		g.manager.CancelGroup()
		g.active = false
	}
}

// Transaction runs fn inside a group.
// If fn returns an error or panics the group is cancelled. A Transaction
// started while a group is open runs fn as part of that group.
func (m *Manager) Transaction(label string, fn func() error) error {
	if m.grouping {
		return fn()
	}

	m.BeginGroup(label)
	defer func() {
		if r := recover(); r != nil {
			m.CancelGroup()
			panic(r)
		}
	}()

	if err := fn(); err != nil {
		m.CancelGroup()
		return err
	}

	m.EndGroup()
	return nil
}

// Checkpoint represents a cursor position that can be returned to.
type Checkpoint struct {
	index int
}

// Index returns the recorded cursor position.
func (c Checkpoint) Index() int {
	return c.index
}

// Checkpoint records the current cursor position.
func (m *Manager) Checkpoint() Checkpoint {
	return Checkpoint{index: m.undoIndex}
}

// RestoreCheckpoint moves the cursor back to the checkpoint.
// Trims and redo-branch discards since the checkpoint shift positions, so
// the result is only meaningful while the history is unchanged around it.
// Returns false when the position no longer exists or a run is in progress.
func (m *Manager) RestoreCheckpoint(cp Checkpoint) bool {
	if m.processing || cp.index > len(m.actions) {
		return false
	}
	m.ProcessTo(cp.index)
	return true
}
