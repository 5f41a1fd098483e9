package undo

import "log/slog"

// CanUndo returns true if there is a done action and no run is in progress.
func (m *Manager) CanUndo() bool {
	return !m.processing && m.undoIndex > 0
}

// CanRedo returns true if there is an undone action and no run is in progress.
func (m *Manager) CanRedo() bool {
	return !m.processing && m.undoIndex < len(m.actions)
}

// UndoLabel returns the label of the action Undo would affect.
func (m *Manager) UndoLabel() (string, bool) {
	if !m.CanUndo() {
		return "", false
	}
	return m.actions[m.undoIndex-1].Label(), true
}

// RedoLabel returns the label of the action Redo would affect.
func (m *Manager) RedoLabel() (string, bool) {
	if !m.CanRedo() {
		return "", false
	}
	return m.actions[m.undoIndex].Label(), true
}

// Undo reverses the action before the cursor.
func (m *Manager) Undo() {
	if m.CanUndo() {
		m.undoTo(m.undoIndex - 1)
	}
}

// Redo replays the action at the cursor.
func (m *Manager) Redo() {
	if m.CanRedo() {
		m.redoTo(m.undoIndex + 1)
	}
}

// ProcessTo undoes or redoes until the cursor equals target.
// Out of range targets and calls during a run are ignored.
func (m *Manager) ProcessTo(target int) {
	if m.processing || target < 0 || target > len(m.actions) {
		return
	}
	switch {
	case m.undoIndex < target:
		m.redoTo(target)
	case m.undoIndex > target:
		m.undoTo(target)
	}
}

// undoTo steps backward until the cursor reaches target or an asynchronous
// action has been started.
func (m *Manager) undoTo(target int) {
	epoch := m.epoch
	for m.undoIndex > target {
		action := m.actions[m.undoIndex-1]

		if aa, ok := asyncOf(action); ok {
			epoch = m.startAsync(aa, DirUndo, target)
			m.emit(BeforeUndo, action, NoIndex)
			if m.epoch == epoch {
				m.undoIndex--
				action.Undo()
			}
			return
		}

		if !m.processing {
			m.processing = true
			m.emit(BeforeUndo, nil, NoIndex)
			if m.epoch != epoch {
				return
			}
		}

		m.undoIndex--
		action.Undo()
		m.emit(ActionUndone, action, m.undoIndex)

		if m.epoch != epoch {
			return
		}
	}
	m.endRun()
	m.emit(UndoFinished, nil, NoIndex)
	m.applyDeferredLimit()
}

// redoTo steps forward until the cursor reaches target or an asynchronous
// action has been started.
func (m *Manager) redoTo(target int) {
	epoch := m.epoch
	for m.undoIndex < target {
		action := m.actions[m.undoIndex]

		if aa, ok := asyncOf(action); ok {
			epoch = m.startAsync(aa, DirRedo, target)
			m.emit(BeforeRedo, action, NoIndex)
			if m.epoch == epoch {
				m.undoIndex++
				action.Redo()
			}
			return
		}

		if !m.processing {
			m.processing = true
			m.emit(BeforeRedo, nil, NoIndex)
			if m.epoch != epoch {
				return
			}
		}

		m.undoIndex++
		action.Redo()
		m.emit(ActionRedone, action, m.undoIndex-1)

		if m.epoch != epoch {
			return
		}
	}
	m.endRun()
	m.emit(RedoFinished, nil, NoIndex)
	m.applyDeferredLimit()
}

// startAsync marks the run as processing and attaches to the action's
// completion signal for the given direction. It returns the new epoch.
func (m *Manager) startAsync(action AsyncAction, dir Direction, target int) uint64 {
	m.processing = true
	if m.pending != nil {
		// processing guards the entry points, so nothing should be pending.
		m.pending.Detach()
	}
	m.epoch++
	epoch := m.epoch
	m.pending = action.OnFinished(dir, func() {
		m.asyncFinished(epoch, action, dir, target)
	})
	m.logger.Debug("awaiting async action",
		slog.String("label", action.Label()),
		slog.String("dir", dir.String()),
		slog.Int("target", target),
	)
	return epoch
}

// asyncFinished resumes the run after an asynchronous step completed.
func (m *Manager) asyncFinished(epoch uint64, action Action, dir Direction, target int) {
	if epoch != m.epoch || m.pending == nil {
		m.logger.Warn("ignoring stale async completion",
			slog.String("label", action.Label()),
			slog.String("dir", dir.String()),
		)
		return
	}

	m.pending.Detach()
	m.pending = nil

	m.logger.Debug("async action finished",
		slog.String("label", action.Label()),
		slog.String("dir", dir.String()),
	)

	if dir == DirUndo {
		m.emit(UndoFinished, action, NoIndex)
		if m.epoch != epoch {
			return
		}
		if m.undoIndex > target {
			m.undoTo(target)
			return
		}
	} else {
		m.emit(RedoFinished, action, NoIndex)
		if m.epoch != epoch {
			return
		}
		if m.undoIndex < target {
			m.redoTo(target)
			return
		}
	}

	m.endRun()
	m.applyDeferredLimit()
}

func (m *Manager) endRun() {
	m.processing = false
}

// applyDeferredLimit trims for a limit change made during the run.
func (m *Manager) applyDeferredLimit() {
	if !m.limitDirty || m.processing {
		return
	}
	m.limitDirty = false
	m.limitActions()
}
