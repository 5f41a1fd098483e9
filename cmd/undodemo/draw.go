package main

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
)

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Bold(true)
	styleDone    = tcell.StyleDefault
	styleUndone  = tcell.StyleDefault.Dim(true)
	styleCursor  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleStatus  = tcell.StyleDefault.Reverse(true)
)

const helpLine = "Ctrl+Z undo  Ctrl+Y redo  Ctrl+U upper  Ctrl+R reverse  Alt+N jump  Ctrl+P purge  Esc quit"

func (a *App) draw() {
	s := a.screen
	s.Clear()
	width, height := s.Size()

	drawText(s, 0, 0, width, styleTitle, "undodemo")
	drawText(s, 0, 1, width, styleUndone, helpLine)

	drawText(s, 0, 3, width, styleDefault, "> "+a.doc.String())
	s.ShowCursor(2+a.doc.Cursor(), 3)

	drawText(s, 0, 5, width, styleTitle, fmt.Sprintf("History (%d/%d)", a.manager.UndoIndex(), a.manager.Len()))
	a.drawHistory(6, height-2, width)

	a.drawStatus(height-1, width)
	s.Show()
}

// drawHistory lists the entries between rows top and bottom, marking the
// cursor position between the last done and the first undone entry.
func (a *App) drawHistory(top, bottom, width int) {
	s := a.screen
	y := top
	cursor := a.manager.UndoIndex()

	for _, e := range a.manager.Entries() {
		if y >= bottom {
			return
		}
		if e.Index == cursor {
			drawText(s, 0, y, width, styleCursor, "  ---- "+strconv.Itoa(cursor))
			y++
			if y >= bottom {
				return
			}
		}
		style := styleDone
		if !e.Done {
			style = styleUndone
		}
		label := e.Label
		if e.Async {
			label += " (async)"
		}
		drawText(s, 0, y, width, style, fmt.Sprintf("  %2d %s", e.Index, label))
		y++
	}
	if cursor == a.manager.Len() && y < bottom {
		drawText(s, 0, y, width, styleCursor, "  ---- "+strconv.Itoa(cursor))
	}
}

func (a *App) drawStatus(y, width int) {
	undoLabel, ok := a.manager.UndoLabel()
	if !ok {
		undoLabel = "-"
	}
	redoLabel, ok := a.manager.RedoLabel()
	if !ok {
		redoLabel = "-"
	}

	limit := "unlimited"
	if n := a.manager.Limit(); n > 0 {
		limit = strconv.Itoa(n)
	}

	status := fmt.Sprintf(" undo: %s | redo: %s | limit: %s", undoLabel, redoLabel, limit)
	if a.manager.Processing() {
		status += " | working..."
	}
	if a.message != "" {
		status += " | " + a.message
	}

	for x := 0; x < width; x++ {
		a.screen.SetContent(x, y, ' ', nil, styleStatus)
	}
	drawText(a.screen, 0, y, width, styleStatus, status)
}

// drawText writes text at (x, y), clipped to width.
func drawText(s tcell.Screen, x, y, width int, style tcell.Style, text string) {
	for _, r := range text {
		if x >= width {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
