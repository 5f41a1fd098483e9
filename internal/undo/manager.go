package undo

import (
	"fmt"
	"log/slog"
	"slices"
)

// Manager records actions and traverses them.
type Manager struct {
	actions   []Action
	undoIndex int
	limit     int

	// processing is set while an undo/redo run is in progress, including
	// while an asynchronous step is awaited.
	processing bool

	// pending is the completion attachment of the awaited async action.
	pending Handle

	// epoch changes whenever a run is abandoned or a new async step starts,
	// so callbacks and loops belonging to an older run stop.
	epoch uint64

	// limitDirty records a limit change deferred until the run finishes.
	limitDirty bool

	// Grouping state
	grouping   bool
	groupLabel string
	groupItems []Action

	notifier notifier
	logger   *slog.Logger
}

// New creates a manager with an empty history.
func New(opts ...Option) (*Manager, error) {
	m := &Manager{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.limit < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, m.limit)
	}
	return m, nil
}

// Add records an action.
//
// Undone actions are discarded first. The action is then offered to the
// action before the cursor for merging; if refused it is appended. Returns
// false, without side effects, while a run is in progress.
func (m *Manager) Add(action Action) bool {
	if m.processing || action == nil {
		return false
	}

	if m.grouping {
		m.groupItems = append(m.groupItems, action)
		return true
	}

	var current Action
	if m.undoIndex > 0 {
		current = m.actions[m.undoIndex-1]
	}

	if m.undoIndex < len(m.actions) {
		m.discardRedo()
	}

	if current != nil && current.Merge(action) {
		m.logger.Debug("action merged",
			slog.String("label", action.Label()),
			slog.String("into", current.Label()),
		)
	} else {
		m.actions = append(m.actions, action)
		m.undoIndex = len(m.actions)
		m.logger.Debug("action added",
			slog.String("label", action.Label()),
			slog.Int("index", m.undoIndex-1),
		)
	}

	// The cursor already counts the new action, so limit 1 keeps it.
	m.limitActions()

	m.emit(ActionAdded, action, NoIndex)
	return true
}

// discardRedo cancels every action at or after the cursor, last first.
func (m *Manager) discardRedo() {
	m.emit(BeforeCanceling, nil, NoIndex)
	for len(m.actions) > m.undoIndex {
		m.cancelAt(len(m.actions) - 1)
	}
	m.emit(CancelingFinished, nil, NoIndex)
}

// cancelAt removes the action at index i, cancels it and reports it.
func (m *Manager) cancelAt(i int) {
	action := m.actions[i]
	m.actions = slices.Delete(m.actions, i, i+1)
	action.Cancel()
	m.emit(ActionCanceled, action, i)
}

// PurgeAll discards the whole history regardless of the cursor.
// An awaited asynchronous step is abandoned; its completion is ignored.
func (m *Manager) PurgeAll() {
	m.abandonRun()

	n := len(m.actions)
	for i := n - 1; i >= 0; i-- {
		m.cancelAt(i)
	}

	m.undoIndex = 0
	m.processing = false
	m.limitDirty = false

	if n > 0 {
		m.logger.Debug("history purged", slog.Int("canceled", n))
	}
}

// Close purges the history. The manager stays usable.
func (m *Manager) Close() {
	m.PurgeAll()
}

// abandonRun detaches the awaited completion and invalidates running loops.
func (m *Manager) abandonRun() {
	m.epoch++
	if m.pending != nil {
		m.pending.Detach()
		m.pending = nil
		m.logger.Debug("async step abandoned")
	}
}

// UndoIndex returns the cursor: the number of done actions.
func (m *Manager) UndoIndex() int {
	return m.undoIndex
}

// Len returns the number of actions in the history.
func (m *Manager) Len() int {
	return len(m.actions)
}

// Processing returns true while an undo/redo run is in progress.
func (m *Manager) Processing() bool {
	return m.processing
}

// Entry describes one history position for display.
type Entry struct {
	Index int
	Label string
	Done  bool
	Async bool
}

// Entries returns a snapshot of the history.
func (m *Manager) Entries() []Entry {
	result := make([]Entry, len(m.actions))
	for i, a := range m.actions {
		result[i] = Entry{
			Index: i,
			Label: a.Label(),
			Done:  i < m.undoIndex,
			Async: a.Async(),
		}
	}
	return result
}

// Action returns the action at index i.
func (m *Manager) Action(i int) (Action, bool) {
	if i < 0 || i >= len(m.actions) {
		return nil, false
	}
	return m.actions[i], true
}
