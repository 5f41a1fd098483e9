package undo

import (
	"slices"

	"github.com/google/uuid"
)

// BaseAction carries the state most actions share: an identity, a label,
// the async flag and the completion listeners of asynchronous actions.
// Embed a *BaseAction and implement Undo and Redo to get an Action.
type BaseAction struct {
	id       string
	label    string
	async    bool
	canceled bool

	listeners map[Direction][]*listener
}

// listener is a completion callback attached through OnFinished.
type listener struct {
	base *BaseAction
	dir  Direction
	fn   func()
}

// Detach removes the listener from its action.
func (l *listener) Detach() {
	if l.base == nil {
		return
	}
	l.base.detach(l)
	l.base = nil
}

// NewBaseAction creates a base with the given label.
func NewBaseAction(label string, async bool) *BaseAction {
	return &BaseAction{
		id:    uuid.NewString(),
		label: label,
		async: async,
	}
}

// ID returns the unique identifier of the action.
func (b *BaseAction) ID() string {
	return b.id
}

// Label returns the human-readable description.
func (b *BaseAction) Label() string {
	return b.label
}

// SetLabel replaces the description, e.g. after a merge widened the action.
func (b *BaseAction) SetLabel(label string) {
	b.label = label
}

// Async reports whether the action completes asynchronously.
func (b *BaseAction) Async() bool {
	return b.async
}

// Merge refuses every candidate.
func (b *BaseAction) Merge(Action) bool {
	return false
}

// Cancel marks the action as discarded and drops its listeners.
func (b *BaseAction) Cancel() {
	b.canceled = true
	b.listeners = nil
}

// Canceled returns true once Cancel has been called.
func (b *BaseAction) Canceled() bool {
	return b.canceled
}

// OnFinished registers fn for the completion of the given direction.
func (b *BaseAction) OnFinished(dir Direction, fn func()) Handle {
	if b.listeners == nil {
		b.listeners = make(map[Direction][]*listener)
	}
	l := &listener{base: b, dir: dir, fn: fn}
	b.listeners[dir] = append(b.listeners[dir], l)
	return l
}

// FinishUndo signals that an asynchronous undo has completed.
func (b *BaseAction) FinishUndo() {
	b.finish(DirUndo)
}

// FinishRedo signals that an asynchronous redo has completed.
func (b *BaseAction) FinishRedo() {
	b.finish(DirRedo)
}

// finish calls the listeners attached when the signal was raised.
// Listeners detached by an earlier callback are skipped.
func (b *BaseAction) finish(dir Direction) {
	pending := slices.Clone(b.listeners[dir])
	for _, l := range pending {
		if l.base == nil {
			continue
		}
		l.fn()
	}
}

func (b *BaseAction) detach(l *listener) {
	list := b.listeners[l.dir]
	if i := slices.Index(list, l); i >= 0 {
		b.listeners[l.dir] = slices.Delete(list, i, i+1)
	}
}

// FuncAction is an Action assembled from closures.
// Nil closures are skipped.
type FuncAction struct {
	*BaseAction

	UndoFunc   func()
	RedoFunc   func()
	MergeFunc  func(candidate Action) bool
	CancelFunc func()
}

// NewFuncAction creates a synchronous action from undo and redo closures.
func NewFuncAction(label string, undo, redo func()) *FuncAction {
	return &FuncAction{
		BaseAction: NewBaseAction(label, false),
		UndoFunc:   undo,
		RedoFunc:   redo,
	}
}

// NewAsyncFuncAction creates an asynchronous action. The closures must
// eventually call FinishUndo or FinishRedo on the returned action.
func NewAsyncFuncAction(label string, undo, redo func()) *FuncAction {
	return &FuncAction{
		BaseAction: NewBaseAction(label, true),
		UndoFunc:   undo,
		RedoFunc:   redo,
	}
}

// Undo runs UndoFunc.
func (a *FuncAction) Undo() {
	if a.UndoFunc != nil {
		a.UndoFunc()
	}
}

// Redo runs RedoFunc.
func (a *FuncAction) Redo() {
	if a.RedoFunc != nil {
		a.RedoFunc()
	}
}

// Merge delegates to MergeFunc.
func (a *FuncAction) Merge(candidate Action) bool {
	if a.MergeFunc == nil {
		return false
	}
	return a.MergeFunc(candidate)
}

// Cancel runs CancelFunc and marks the action canceled.
func (a *FuncAction) Cancel() {
	if a.CancelFunc != nil {
		a.CancelFunc()
	}
	a.BaseAction.Cancel()
}
