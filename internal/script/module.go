package script

import (
	lua "github.com/yuin/gopher-lua"
)

// installModule registers the action type and the global undo table.
func (e *Engine) installModule() {
	L := e.L

	mt := L.NewTypeMetatable(actionTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), actionMethods))
	L.SetField(mt, "__tostring", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString("undo.action(" + checkAction(L, 1).Label() + ")"))
		return 1
	}))

	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"action":     e.luaNewAction,
		"add":        e.luaAdd,
		"undo":       e.luaUndo,
		"redo":       e.luaRedo,
		"process_to": e.luaProcessTo,
		"can_undo":   e.luaCanUndo,
		"can_redo":   e.luaCanRedo,
		"undo_label": e.luaUndoLabel,
		"redo_label": e.luaRedoLabel,
		"index":      e.luaIndex,
		"len":        e.luaLen,
		"processing": e.luaProcessing,
		"limit":      e.luaLimit,
		"set_limit":  e.luaSetLimit,
		"purge":      e.luaPurge,
	})
	L.SetGlobal("undo", mod)
}

func (e *Engine) luaNewAction(L *lua.LState) int {
	a := e.newAction(L, L.CheckTable(1))
	L.Push(a.ud)
	return 1
}

func (e *Engine) luaAdd(L *lua.LState) int {
	L.Push(lua.LBool(e.manager.Add(checkAction(L, 1))))
	return 1
}

func (e *Engine) luaUndo(L *lua.LState) int {
	e.manager.Undo()
	return 0
}

func (e *Engine) luaRedo(L *lua.LState) int {
	e.manager.Redo()
	return 0
}

func (e *Engine) luaProcessTo(L *lua.LState) int {
	e.manager.ProcessTo(L.CheckInt(1))
	return 0
}

func (e *Engine) luaCanUndo(L *lua.LState) int {
	L.Push(lua.LBool(e.manager.CanUndo()))
	return 1
}

func (e *Engine) luaCanRedo(L *lua.LState) int {
	L.Push(lua.LBool(e.manager.CanRedo()))
	return 1
}

func (e *Engine) luaUndoLabel(L *lua.LState) int {
	pushLabel(L, e.manager.UndoLabel)
	return 1
}

func (e *Engine) luaRedoLabel(L *lua.LState) int {
	pushLabel(L, e.manager.RedoLabel)
	return 1
}

func pushLabel(L *lua.LState, get func() (string, bool)) {
	if label, ok := get(); ok {
		L.Push(lua.LString(label))
		return
	}
	L.Push(lua.LNil)
}

func (e *Engine) luaIndex(L *lua.LState) int {
	L.Push(lua.LNumber(e.manager.UndoIndex()))
	return 1
}

func (e *Engine) luaLen(L *lua.LState) int {
	L.Push(lua.LNumber(e.manager.Len()))
	return 1
}

func (e *Engine) luaProcessing(L *lua.LState) int {
	L.Push(lua.LBool(e.manager.Processing()))
	return 1
}

func (e *Engine) luaLimit(L *lua.LState) int {
	L.Push(lua.LNumber(e.manager.Limit()))
	return 1
}

func (e *Engine) luaSetLimit(L *lua.LState) int {
	if err := e.manager.SetLimit(L.CheckInt(1)); err != nil {
		L.RaiseError("set_limit: %s", err.Error())
	}
	return 0
}

func (e *Engine) luaPurge(L *lua.LState) int {
	e.manager.PurgeAll()
	return 0
}
