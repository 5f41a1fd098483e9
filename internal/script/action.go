package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/undostack/internal/undo"
)

const actionTypeName = "undo.action"

// luaAction is an undo.Action whose behavior is written in Lua.
type luaAction struct {
	*undo.BaseAction

	engine *Engine
	ud     *lua.LUserData

	undoFn   *lua.LFunction
	redoFn   *lua.LFunction
	mergeFn  *lua.LFunction
	cancelFn *lua.LFunction
}

func (a *luaAction) Undo() {
	a.run(undo.DirUndo, a.undoFn)
}

func (a *luaAction) Redo() {
	a.run(undo.DirRedo, a.redoFn)
}

func (a *luaAction) run(dir undo.Direction, fn *lua.LFunction) {
	if !a.Async() {
		if fn != nil {
			a.invoke(dir.String(), fn)
		}
		return
	}

	finish := a.FinishUndo
	if dir == undo.DirRedo {
		finish = a.FinishRedo
	}
	if fn == nil || a.engine.closed {
		finish()
		return
	}

	done := a.engine.L.NewFunction(func(*lua.LState) int {
		finish()
		return 0
	})
	if _, err := a.invoke(dir.String(), fn, done); err != nil {
		finish()
	}
}

// Merge asks the Lua merge callback whether candidate can be absorbed.
// The callback receives the candidate label and, for Lua actions of the
// same engine, the candidate itself.
func (a *luaAction) Merge(candidate undo.Action) bool {
	if a.mergeFn == nil {
		return false
	}

	args := []lua.LValue{lua.LString(candidate.Label())}
	if other, ok := candidate.(*luaAction); ok && other.engine == a.engine {
		args = append(args, other.ud)
	}

	ret, err := a.invoke("merge", a.mergeFn, args...)
	if err != nil {
		return false
	}
	return lua.LVAsBool(ret)
}

func (a *luaAction) Cancel() {
	if a.cancelFn != nil {
		a.invoke("cancel", a.cancelFn)
	}
	a.BaseAction.Cancel()
}

// invoke calls a callback and logs any failure.
func (a *luaAction) invoke(callback string, fn *lua.LFunction, args ...lua.LValue) (lua.LValue, error) {
	ret, err := a.engine.call(fn, args...)
	if err != nil {
		a.engine.logger.Error("lua action callback failed",
			"action", a.Label(),
			"callback", callback,
			"error", err,
		)
	}
	return ret, err
}

// newAction builds an action from an undo.action{...} table.
func (e *Engine) newAction(L *lua.LState, tbl *lua.LTable) *luaAction {
	label, ok := tbl.RawGetString("label").(lua.LString)
	if !ok {
		L.ArgError(1, "label must be a string")
		return nil
	}

	a := &luaAction{
		BaseAction: undo.NewBaseAction(string(label), lua.LVAsBool(tbl.RawGetString("async"))),
		engine:     e,
		undoFn:     optFunction(L, tbl, "undo"),
		redoFn:     optFunction(L, tbl, "redo"),
		mergeFn:    optFunction(L, tbl, "merge"),
		cancelFn:   optFunction(L, tbl, "cancel"),
	}

	a.ud = L.NewUserData()
	a.ud.Value = a
	L.SetMetatable(a.ud, L.GetTypeMetatable(actionTypeName))
	return a
}

// optFunction returns the function stored under name, or nil when absent.
func optFunction(L *lua.LState, tbl *lua.LTable, name string) *lua.LFunction {
	switch v := tbl.RawGetString(name).(type) {
	case *lua.LFunction:
		return v
	case *lua.LNilType:
		return nil
	default:
		L.ArgError(1, name+" must be a function")
		return nil
	}
}

// checkAction returns the action at stack position n or raises an argument error.
func checkAction(L *lua.LState, n int) *luaAction {
	ud := L.CheckUserData(n)
	if a, ok := ud.Value.(*luaAction); ok {
		return a
	}
	L.ArgError(n, "undo.action expected")
	return nil
}

var actionMethods = map[string]lua.LGFunction{
	"id": func(L *lua.LState) int {
		L.Push(lua.LString(checkAction(L, 1).ID()))
		return 1
	},
	"label": func(L *lua.LState) int {
		L.Push(lua.LString(checkAction(L, 1).Label()))
		return 1
	},
	"set_label": func(L *lua.LState) int {
		checkAction(L, 1).SetLabel(L.CheckString(2))
		return 0
	},
	"async": func(L *lua.LState) int {
		L.Push(lua.LBool(checkAction(L, 1).Async()))
		return 1
	},
	"canceled": func(L *lua.LState) int {
		L.Push(lua.LBool(checkAction(L, 1).Canceled()))
		return 1
	},
}
