// Package script lets Lua code define undoable actions and drive an
// undo.Manager.
//
// Scripts run in a sandboxed gopher-lua state with only the base, table,
// string and math libraries. A global table named undo is installed:
//
//	local a = undo.action{
//	    label = "insert",
//	    undo  = function() ... end,
//	    redo  = function() ... end,
//	    merge = function(other_label, other) return other_label == "insert" end,
//	    cancel = function() ... end,
//	}
//	undo.add(a)
//	undo.undo()
//
// Actions created with async = true receive a done function as the only
// argument to undo and redo. The manager stays busy until done is called,
// which may happen later from another script chunk.
//
// Errors raised inside action callbacks are logged and do not reach the
// manager. An async callback that fails is treated as finished so the
// manager does not wait forever.
//
// An Engine is not safe for concurrent use. gopher-lua states are
// single-threaded, as is the undo manager.
package script
