package undo

import "fmt"

// CompoundAction records several actions as one history entry.
// It always runs synchronously; asynchronous children are started but not
// awaited.
type CompoundAction struct {
	*BaseAction
	Actions []Action
}

// NewCompoundAction creates a new compound action.
func NewCompoundAction(label string, actions ...Action) *CompoundAction {
	return &CompoundAction{
		BaseAction: NewBaseAction(label, false),
		Actions:    actions,
	}
}

// Undo reverses all actions in reverse order.
func (c *CompoundAction) Undo() {
	for i := len(c.Actions) - 1; i >= 0; i-- {
		c.Actions[i].Undo()
	}
}

// Redo replays all actions in order.
func (c *CompoundAction) Redo() {
	for _, a := range c.Actions {
		a.Redo()
	}
}

// Cancel cancels every child.
func (c *CompoundAction) Cancel() {
	for _, a := range c.Actions {
		a.Cancel()
	}
	c.BaseAction.Cancel()
}

// Label returns the compound's name, falling back to a summary.
func (c *CompoundAction) Label() string {
	if l := c.BaseAction.Label(); l != "" {
		return l
	}
	if len(c.Actions) == 1 {
		return c.Actions[0].Label()
	}
	return fmt.Sprintf("%d actions", len(c.Actions))
}

// Add appends an action to the compound.
func (c *CompoundAction) Add(action Action) {
	c.Actions = append(c.Actions, action)
}

// IsEmpty returns true if the compound has no actions.
func (c *CompoundAction) IsEmpty() bool {
	return len(c.Actions) == 0
}
