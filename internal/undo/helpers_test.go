package undo

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// recorder collects the undo/redo calls made on test actions.
type recorder struct {
	calls []string
}

type testAction struct {
	*BaseAction
	rec     *recorder
	merges  bool
	cancels int
}

func newAction(rec *recorder, label string) *testAction {
	return &testAction{BaseAction: NewBaseAction(label, false), rec: rec}
}

func newAsyncAction(rec *recorder, label string) *testAction {
	return &testAction{BaseAction: NewBaseAction(label, true), rec: rec}
}

func (a *testAction) Undo() {
	a.rec.calls = append(a.rec.calls, "undo:"+a.Label())
}

func (a *testAction) Redo() {
	a.rec.calls = append(a.rec.calls, "redo:"+a.Label())
}

func (a *testAction) Merge(candidate Action) bool {
	if !a.merges {
		return false
	}
	a.SetLabel(a.Label() + "+" + candidate.Label())
	return true
}

func (a *testAction) Cancel() {
	a.cancels++
	a.BaseAction.Cancel()
}

// eventLog subscribes to m and returns the formatted events seen so far.
func eventLog(m *Manager) *[]string {
	var log []string
	m.Subscribe(func(evt Event) {
		log = append(log, formatEvent(evt))
	})
	return &log
}

func formatEvent(evt Event) string {
	s := evt.Type.String()
	if evt.Action != nil {
		s += ":" + evt.Action.Label()
	}
	if evt.Index != NoIndex {
		s += fmt.Sprintf("@%d", evt.Index)
	}
	return s
}

func newManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	m, err := New(opts...)
	require.NoError(t, err)
	return m
}

// addAll adds one synchronous action per label.
func addAll(t *testing.T, m *Manager, rec *recorder, labels ...string) []*testAction {
	t.Helper()
	actions := make([]*testAction, len(labels))
	for i, l := range labels {
		actions[i] = newAction(rec, l)
		require.True(t, m.Add(actions[i]), "add %s", l)
	}
	return actions
}

func labels(m *Manager) []string {
	var result []string
	for _, e := range m.Entries() {
		result = append(result, e.Label)
	}
	return result
}
