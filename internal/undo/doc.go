// Package undo provides the undo/redo engine.
//
// The engine records reversible actions and moves a cursor backward (undo)
// and forward (redo) through them. It never interprets what an action does;
// it only orchestrates ordering, reversal, merging, capacity and completion
// signaling. Key concepts:
//
// # Actions
//
// An Action knows how to undo and redo itself, how to absorb a following
// action (Merge) and how to release its resources when it is discarded
// (Cancel). Helpers are provided:
//   - BaseAction: embeddable label, async flag and completion listeners
//   - FuncAction: an action built from closures
//   - CompoundAction: several actions recorded as one history entry
//
// # History and Cursor
//
// The Manager keeps an ordered history and a cursor (UndoIndex). Actions
// before the cursor are done, actions at or after it are undone but retained
// until the next Add discards them:
//
//	m, _ := undo.New(undo.WithLimit(100))
//
//	m.Add(action)
//	m.Undo()
//	m.Redo()
//	m.ProcessTo(0) // undo everything
//
// # Limiting
//
// With a non-zero limit the history is trimmed after every Add and whenever
// the limit changes. Trimming keeps the cursor roughly centered in the
// retained window so undo depth and redo depth stay balanced.
//
// # Asynchronous Actions
//
// An action reporting Async() == true and implementing AsyncAction returns
// from Undo/Redo immediately and later signals completion. While the engine
// waits, Processing() is true and Add, Undo, Redo and ProcessTo are ignored.
// When the signal arrives the engine continues toward the requested target.
//
// # Notifications
//
// Observers receive an Event for every lifecycle step (added, canceled,
// undone, redone and the before/finished brackets). Delivery is synchronous
// and in emission order.
//
// # Concurrency
//
// A Manager is not safe for concurrent use. Completion signals of
// asynchronous actions must be delivered on the goroutine that owns the
// Manager, typically by posting them to the host's event loop.
package undo
