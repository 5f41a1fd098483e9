package undo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUndoRedoRoundTrip(t *testing.T) {
	rec := &recorder{}
	m := newManager(t)
	addAll(t, m, rec, "A", "B", "C")

	m.Undo()
	m.Redo()

	assert.Equal(t, 3, m.UndoIndex())
	assert.Equal(t, []string{"undo:C", "redo:C"}, rec.calls)
}

func TestUndoTwice(t *testing.T) {
	rec := &recorder{}
	m := newManager(t)
	addAll(t, m, rec, "A", "B", "C")

	m.Undo()
	assert.Equal(t, 2, m.UndoIndex())
	m.Undo()
	assert.Equal(t, 1, m.UndoIndex())

	assert.Equal(t, []string{"undo:C", "undo:B"}, rec.calls)
	assert.True(t, m.CanRedo())
	label, ok := m.RedoLabel()
	require.True(t, ok)
	assert.Equal(t, "B", label)
	label, ok = m.UndoLabel()
	require.True(t, ok)
	assert.Equal(t, "A", label)
}

func TestLabelsAbsentWhenUnavailable(t *testing.T) {
	m := newManager(t)

	_, ok := m.UndoLabel()
	assert.False(t, ok)
	_, ok = m.RedoLabel()
	assert.False(t, ok)
}

func TestUndoRedoNoopAtEnds(t *testing.T) {
	rec := &recorder{}
	m := newManager(t)
	log := eventLog(m)

	m.Undo()
	m.Redo()
	assert.Empty(t, *log)

	addAll(t, m, rec, "A")
	m.Redo()
	m.Undo()
	m.Undo()

	assert.Equal(t, []string{"undo:A"}, rec.calls)
	assert.Equal(t, 0, m.UndoIndex())
}

func TestSyncUndoEvents(t *testing.T) {
	rec := &recorder{}
	m := newManager(t)
	addAll(t, m, rec, "A", "B", "C")
	log := eventLog(m)

	m.ProcessTo(0)

	assert.Equal(t, []string{
		"beforeUndo",
		"actionUndone:C@2",
		"actionUndone:B@1",
		"actionUndone:A@0",
		"undoFinished",
	}, *log)
	assert.Equal(t, []string{"undo:C", "undo:B", "undo:A"}, rec.calls)
	assert.False(t, m.Processing())
}

func TestSyncRedoEvents(t *testing.T) {
	rec := &recorder{}
	m := newManager(t)
	addAll(t, m, rec, "A", "B", "C")
	m.ProcessTo(0)
	rec.calls = nil
	log := eventLog(m)

	m.ProcessTo(2)

	assert.Equal(t, []string{
		"beforeRedo",
		"actionRedone:A@0",
		"actionRedone:B@1",
		"redoFinished",
	}, *log)
	assert.Equal(t, []string{"redo:A", "redo:B"}, rec.calls)
	assert.Equal(t, 2, m.UndoIndex())
}

func TestProcessToIgnoresInvalidTargets(t *testing.T) {
	rec := &recorder{}
	m := newManager(t)
	addAll(t, m, rec, "A", "B")
	log := eventLog(m)

	m.ProcessTo(-1)
	m.ProcessTo(3)
	m.ProcessTo(2)

	assert.Empty(t, *log)
	assert.Equal(t, 2, m.UndoIndex())
}

func TestProcessingDuringSyncRun(t *testing.T) {
	rec := &recorder{}
	m := newManager(t)
	addAll(t, m, rec, "A", "B")

	var seen []bool
	m.SubscribeType(func(Event) {
		seen = append(seen, m.Processing(), m.CanUndo())
		assert.False(t, m.Add(newAction(rec, "nested")))
		m.Undo()
	}, ActionUndone)

	m.ProcessTo(0)

	assert.Equal(t, []bool{true, false, true, false}, seen)
	assert.Equal(t, []string{"undo:B", "undo:A"}, rec.calls)
	assert.Equal(t, 2, m.Len())
}

func TestAsyncUndo(t *testing.T) {
	rec := &recorder{}
	m := newManager(t)
	x := newAsyncAction(rec, "X")
	require.True(t, m.Add(x))
	log := eventLog(m)

	m.Undo()

	assert.True(t, m.Processing())
	assert.Equal(t, []string{"undo:X"}, rec.calls)
	assert.Equal(t, 0, m.UndoIndex())
	assert.Equal(t, []string{"beforeUndo:X"}, *log)
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())

	m.Undo()
	m.Redo()
	m.ProcessTo(1)
	assert.Equal(t, []string{"undo:X"}, rec.calls)

	x.FinishUndo()

	assert.False(t, m.Processing())
	assert.Equal(t, []string{"beforeUndo:X", "undoFinished:X"}, *log)
	assert.True(t, m.CanRedo())
}

func TestAsyncRedo(t *testing.T) {
	rec := &recorder{}
	m := newManager(t)
	x := newAsyncAction(rec, "X")
	require.True(t, m.Add(x))
	m.Undo()
	x.FinishUndo()
	log := eventLog(m)

	m.Redo()
	assert.True(t, m.Processing())
	assert.Equal(t, 1, m.UndoIndex())

	x.FinishRedo()

	assert.False(t, m.Processing())
	assert.Equal(t, []string{"beforeRedo:X", "redoFinished:X"}, *log)
}

func TestAsyncStepInsideRun(t *testing.T) {
	rec := &recorder{}
	m := newManager(t)
	a := newAction(rec, "A")
	x := newAsyncAction(rec, "X")
	c := newAction(rec, "C")
	for _, act := range []Action{a, x, c} {
		require.True(t, m.Add(act))
	}
	log := eventLog(m)

	m.ProcessTo(0)

	assert.Equal(t, []string{
		"beforeUndo",
		"actionUndone:C@2",
		"beforeUndo:X",
	}, *log)
	assert.Equal(t, 1, m.UndoIndex())
	assert.True(t, m.Processing())

	x.FinishUndo()

	assert.Equal(t, []string{
		"beforeUndo",
		"actionUndone:C@2",
		"beforeUndo:X",
		"undoFinished:X",
		"actionUndone:A@0",
		"undoFinished",
	}, *log)
	assert.Equal(t, 0, m.UndoIndex())
	assert.False(t, m.Processing())
	assert.Equal(t, []string{"undo:C", "undo:X", "undo:A"}, rec.calls)
}

func TestAsyncRedoInsideRun(t *testing.T) {
	rec := &recorder{}
	m := newManager(t)
	x := newAsyncAction(rec, "X")
	y := newAsyncAction(rec, "Y")
	require.True(t, m.Add(x))
	require.True(t, m.Add(y))
	m.Undo()
	y.FinishUndo()
	m.Undo()
	x.FinishUndo()
	log := eventLog(m)

	m.ProcessTo(2)
	x.FinishRedo()
	assert.True(t, m.Processing())
	y.FinishRedo()

	assert.Equal(t, []string{
		"beforeRedo:X",
		"redoFinished:X",
		"beforeRedo:Y",
		"redoFinished:Y",
	}, *log)
	assert.Equal(t, 2, m.UndoIndex())
	assert.False(t, m.Processing())
}

func TestAsyncFinishingImmediately(t *testing.T) {
	rec := &recorder{}
	m := newManager(t)
	x := &FuncAction{BaseAction: NewBaseAction("X", true)}
	x.UndoFunc = func() {
		rec.calls = append(rec.calls, "undo:X")
		x.FinishUndo()
	}
	require.True(t, m.Add(x))
	addAll(t, m, rec, "B")
	log := eventLog(m)

	m.ProcessTo(0)

	assert.Equal(t, []string{
		"beforeUndo",
		"actionUndone:B@1",
		"beforeUndo:X",
		"undoFinished:X",
	}, *log)
	assert.False(t, m.Processing())
	assert.Equal(t, 0, m.UndoIndex())
}

func TestStaleAsyncCompletionIgnored(t *testing.T) {
	rec := &recorder{}
	m := newManager(t)
	x := newAsyncAction(rec, "X")
	require.True(t, m.Add(x))
	m.Undo()
	x.FinishUndo()
	log := eventLog(m)

	x.FinishUndo()
	x.FinishRedo()

	assert.Empty(t, *log)
	assert.False(t, m.Processing())
}

func TestPurgeAllDuringAsync(t *testing.T) {
	rec := &recorder{}
	m := newManager(t)
	addAll(t, m, rec, "A")
	x := newAsyncAction(rec, "X")
	require.True(t, m.Add(x))
	m.ProcessTo(0)
	require.True(t, m.Processing())

	m.PurgeAll()
	log := eventLog(m)

	assert.False(t, m.Processing())
	x.FinishUndo()

	assert.Empty(t, *log)
	assert.Equal(t, 0, m.UndoIndex())
	assert.Equal(t, 0, m.Len())
	assert.True(t, m.Add(newAction(rec, "B")))
}

func TestPurgeAllFromObserverStopsRun(t *testing.T) {
	rec := &recorder{}
	m := newManager(t)
	addAll(t, m, rec, "A", "B", "C")
	m.SubscribeType(func(evt Event) {
		if evt.Action.Label() == "C" {
			m.PurgeAll()
		}
	}, ActionUndone)

	m.ProcessTo(0)

	assert.Equal(t, []string{"undo:C"}, rec.calls)
	assert.Equal(t, 0, m.Len())
	assert.False(t, m.Processing())
}

func TestAsyncWithoutCompletionSignalRunsSync(t *testing.T) {
	rec := &recorder{}
	m := newManager(t)
	require.True(t, m.Add(plainAsync{rec: rec}))
	log := eventLog(m)

	m.Undo()

	assert.Equal(t, []string{"beforeUndo", "actionUndone:plain@0", "undoFinished"}, *log)
	assert.False(t, m.Processing())
}

func TestSetLimitDeferredDuringAsync(t *testing.T) {
	rec := &recorder{}
	m := newManager(t)
	addAll(t, m, rec, "A", "B", "C")
	x := newAsyncAction(rec, "X")
	require.True(t, m.Add(x))
	m.Undo()

	require.NoError(t, m.SetLimit(2))
	assert.Equal(t, 4, m.Len())

	x.FinishUndo()

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"C", "X"}, labels(m))
	assert.Equal(t, 1, m.UndoIndex())
}

// plainAsync claims to be asynchronous but cannot signal completion.
type plainAsync struct {
	rec *recorder
}

func (plainAsync) Label() string { return "plain" }

func (plainAsync) Async() bool { return true }

func (p plainAsync) Undo() { p.rec.calls = append(p.rec.calls, "undo:plain") }

func (p plainAsync) Redo() { p.rec.calls = append(p.rec.calls, "redo:plain") }

func (plainAsync) Merge(Action) bool { return false }

func (plainAsync) Cancel() {}
