package undo

// Direction identifies the traversal direction of a step.
type Direction int

const (
	// DirUndo moves the cursor backward.
	DirUndo Direction = iota
	// DirRedo moves the cursor forward.
	DirRedo
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirUndo:
		return "undo"
	case DirRedo:
		return "redo"
	default:
		return "unknown"
	}
}

// Action is a reversible unit of work recorded by a Manager.
type Action interface {
	// Label returns a human-readable description.
	Label() string

	// Async reports whether Undo and Redo complete after they return.
	// The value must not change during the action's lifetime.
	Async() bool

	// Undo reverses the action.
	Undo()

	// Redo replays the action.
	Redo()

	// Merge tries to absorb candidate into this action.
	// When it returns true the candidate is dropped by the Manager.
	Merge(candidate Action) bool

	// Cancel releases resources held by an action that is discarded for good.
	Cancel()
}

// Handle is an attachment to a completion signal.
type Handle interface {
	// Detach stops delivery to the attached callback. Safe to call twice.
	Detach()
}

// AsyncAction is an Action that reports the completion of Undo and Redo.
type AsyncAction interface {
	Action

	// OnFinished registers fn to be called when the undo or redo started
	// in the given direction completes.
	OnFinished(dir Direction, fn func()) Handle
}

// asyncOf returns the action as an AsyncAction when it runs asynchronously.
// An action claiming to be async without a completion signal runs as sync.
func asyncOf(action Action) (AsyncAction, bool) {
	if !action.Async() {
		return nil, false
	}
	aa, ok := action.(AsyncAction)
	return aa, ok
}
