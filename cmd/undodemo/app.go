package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/undostack/internal/config"
	"github.com/dshills/undostack/internal/undo"
)

// ErrQuit is returned by Run when the user quits.
var ErrQuit = errors.New("quit")

// DefaultCaseDelay is how long the asynchronous case change takes.
const DefaultCaseDelay = 750 * time.Millisecond

// App is the demo editor: a single text line whose edits go through an
// undo manager, with a history panel and a status bar.
type App struct {
	screen  tcell.Screen
	manager *undo.Manager
	doc     *Document
	logger  *slog.Logger

	caseDelay time.Duration
	message   string
	quit      bool
	sub       *undo.Subscription
}

// NewApp creates an app drawing to screen. The screen must be initialized.
func NewApp(screen tcell.Screen, manager *undo.Manager, logger *slog.Logger) *App {
	a := &App{
		screen:    screen,
		manager:   manager,
		doc:       &Document{},
		logger:    logger,
		caseDelay: DefaultCaseDelay,
	}
	a.sub = manager.SubscribeType(a.onFinished, undo.UndoFinished, undo.RedoFinished)
	return a
}

// onFinished reports the end of a run in the status bar.
func (a *App) onFinished(evt undo.Event) {
	a.message = fmt.Sprintf("%s at %d", evt.Type, a.manager.UndoIndex())
}

// Post runs fn on the UI goroutine.
func (a *App) Post(fn func()) {
	if err := a.screen.PostEvent(tcell.NewEventInterrupt(fn)); err != nil {
		a.logger.Warn("event queue full, dropping callback", "error", err)
	}
}

// schedule runs fn on the UI goroutine after d.
func (a *App) schedule(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { a.Post(fn) })
}

// ApplyConfig adjusts the running manager to a reloaded configuration.
func (a *App) ApplyConfig(cfg config.Config, err error) {
	if err != nil {
		a.message = "config: " + err.Error()
		return
	}
	if err := a.manager.SetLimit(cfg.Undo.Limit); err != nil {
		a.message = "config: " + err.Error()
		return
	}
	a.message = fmt.Sprintf("limit set to %d", cfg.Undo.Limit)
}

// Run processes events until the user quits.
func (a *App) Run() error {
	defer a.sub.Unsubscribe()

	a.draw()
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := a.handleEvent(ev); err != nil {
			return err
		}
		if a.quit {
			return ErrQuit
		}
		a.draw()
	}
}

func (a *App) handleEvent(ev tcell.Event) error {
	switch e := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventInterrupt:
		if fn, ok := e.Data().(func()); ok {
			fn()
		}
	case *tcell.EventKey:
		return a.handleKey(e)
	}
	return nil
}

func (a *App) handleKey(ev *tcell.EventKey) error {
	a.message = ""

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ErrQuit
	case tcell.KeyLeft:
		a.doc.MoveCursor(-1)
		return nil
	case tcell.KeyRight:
		a.doc.MoveCursor(1)
		return nil
	case tcell.KeyHome:
		a.doc.MoveCursor(-len(a.doc.text))
		return nil
	case tcell.KeyEnd:
		a.doc.MoveCursor(len(a.doc.text))
		return nil
	}

	if a.manager.Processing() {
		a.message = "busy"
		return nil
	}

	switch ev.Key() {
	case tcell.KeyCtrlZ:
		a.manager.Undo()
	case tcell.KeyCtrlY:
		a.manager.Redo()
	case tcell.KeyCtrlP:
		a.manager.PurgeAll()
		a.message = "history purged"
	case tcell.KeyCtrlU:
		if action := a.doc.Uppercase(a.caseDelay, a.schedule); action != nil {
			a.manager.Add(action)
		}
	case tcell.KeyCtrlR:
		if err := a.doc.Reverse(a.manager); err != nil {
			a.message = err.Error()
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if action := a.doc.Backspace(); action != nil {
			a.manager.Add(action)
		}
	case tcell.KeyRune:
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModAlt != 0 {
			if r >= '0' && r <= '9' {
				a.manager.ProcessTo(int(r - '0'))
			}
			return nil
		}
		a.manager.Add(a.doc.Type(r))
	}
	return nil
}
