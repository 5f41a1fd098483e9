package main

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/dshills/undostack/internal/undo"
)

// Document is a single line of editable text with a cursor.
type Document struct {
	text   []rune
	cursor int
}

// String returns the text.
func (d *Document) String() string {
	return string(d.text)
}

// Cursor returns the cursor position in runes.
func (d *Document) Cursor() int {
	return d.cursor
}

// MoveCursor moves the cursor by delta, clamped to the text.
func (d *Document) MoveCursor(delta int) {
	d.cursor = max(0, min(len(d.text), d.cursor+delta))
}

func (d *Document) insert(pos int, text []rune) {
	d.text = slices.Insert(d.text, pos, text...)
	d.cursor = pos + len(text)
}

func (d *Document) remove(pos, n int) []rune {
	removed := slices.Clone(d.text[pos : pos+n])
	d.text = slices.Delete(d.text, pos, pos+n)
	d.cursor = pos
	return removed
}

func (d *Document) replace(text []rune) {
	d.text = slices.Clone(text)
	d.cursor = min(d.cursor, len(d.text))
}

// InsertAction records typed text. Consecutive typing merges.
type InsertAction struct {
	*undo.BaseAction
	doc  *Document
	pos  int
	text []rune
}

// Type inserts r at the cursor and returns the action describing it.
func (d *Document) Type(r rune) *InsertAction {
	pos := d.cursor
	d.insert(pos, []rune{r})
	a := &InsertAction{
		BaseAction: undo.NewBaseAction("", false),
		doc:        d,
		pos:        pos,
		text:       []rune{r},
	}
	a.relabel()
	return a
}

func (a *InsertAction) relabel() {
	a.SetLabel(fmt.Sprintf("Type %q", string(a.text)))
}

func (a *InsertAction) Undo() {
	a.doc.remove(a.pos, len(a.text))
}

func (a *InsertAction) Redo() {
	a.doc.insert(a.pos, a.text)
}

// Merge absorbs typing that continues where this action ended.
func (a *InsertAction) Merge(candidate undo.Action) bool {
	c, ok := candidate.(*InsertAction)
	if !ok || c.doc != a.doc || c.pos != a.pos+len(a.text) {
		return false
	}
	if unicode.IsSpace(c.text[0]) != unicode.IsSpace(a.text[len(a.text)-1]) {
		return false
	}
	a.text = append(a.text, c.text...)
	a.relabel()
	return true
}

// DeleteAction records text removed with backspace. Consecutive deletes merge.
type DeleteAction struct {
	*undo.BaseAction
	doc  *Document
	pos  int
	text []rune
}

// Backspace removes the rune before the cursor.
// It returns nil when the cursor is at the start of the line.
func (d *Document) Backspace() *DeleteAction {
	if d.cursor == 0 {
		return nil
	}
	pos := d.cursor - 1
	a := &DeleteAction{
		BaseAction: undo.NewBaseAction("", false),
		doc:        d,
		pos:        pos,
		text:       d.remove(pos, 1),
	}
	a.relabel()
	return a
}

func (a *DeleteAction) relabel() {
	a.SetLabel(fmt.Sprintf("Delete %q", string(a.text)))
}

func (a *DeleteAction) Undo() {
	a.doc.insert(a.pos, a.text)
}

func (a *DeleteAction) Redo() {
	a.doc.remove(a.pos, len(a.text))
}

// Merge absorbs a backspace made directly before this deletion.
func (a *DeleteAction) Merge(candidate undo.Action) bool {
	c, ok := candidate.(*DeleteAction)
	if !ok || c.doc != a.doc || c.pos+len(c.text) != a.pos {
		return false
	}
	a.text = append(slices.Clone(c.text), a.text...)
	a.pos = c.pos
	a.relabel()
	return true
}

// Scheduler runs fn on the UI goroutine after d.
type Scheduler func(d time.Duration, fn func())

// CaseAction changes the case of the whole line. It completes
// asynchronously after a delay to simulate slow work.
type CaseAction struct {
	*undo.BaseAction
	doc      *Document
	before   []rune
	after    []rune
	delay    time.Duration
	schedule Scheduler
}

// Uppercase converts the line to upper case and returns the action.
// It returns nil when the text would not change.
func (d *Document) Uppercase(delay time.Duration, schedule Scheduler) *CaseAction {
	before := slices.Clone(d.text)
	after := []rune(strings.ToUpper(string(d.text)))
	if slices.Equal(before, after) {
		return nil
	}
	d.replace(after)
	return &CaseAction{
		BaseAction: undo.NewBaseAction("Uppercase", true),
		doc:        d,
		before:     before,
		after:      after,
		delay:      delay,
		schedule:   schedule,
	}
}

func (a *CaseAction) Undo() {
	a.schedule(a.delay, func() {
		a.doc.replace(a.before)
		a.FinishUndo()
	})
}

func (a *CaseAction) Redo() {
	a.schedule(a.delay, func() {
		a.doc.replace(a.after)
		a.FinishRedo()
	})
}

// Reverse reverses the line as one grouped edit made of a deletion and an
// insertion.
func (d *Document) Reverse(m *undo.Manager) error {
	if len(d.text) < 2 {
		return nil
	}
	return m.Transaction("Reverse", func() error {
		reversed := slices.Clone(d.text)
		slices.Reverse(reversed)

		n := len(d.text)
		removed := d.remove(0, n)
		del := &DeleteAction{BaseAction: undo.NewBaseAction("", false), doc: d, pos: 0, text: removed}
		del.relabel()
		m.Add(del)

		d.insert(0, reversed)
		ins := &InsertAction{BaseAction: undo.NewBaseAction("", false), doc: d, pos: 0, text: reversed}
		ins.relabel()
		m.Add(ins)
		return nil
	})
}
