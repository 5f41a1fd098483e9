package script

import (
	"fmt"
	"log/slog"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/undostack/internal/undo"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for callback errors and print output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine runs Lua scripts against an undo manager.
type Engine struct {
	L       *lua.LState
	manager *undo.Manager
	logger  *slog.Logger
	closed  bool
}

// New creates a sandboxed Lua state bound to manager.
func New(manager *undo.Manager, opts ...Option) (*Engine, error) {
	if manager == nil {
		return nil, ErrNilManager
	}

	e := &Engine{
		manager: manager,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(e.L)
	e.L.SetGlobal("print", e.L.NewFunction(e.luaPrint))
	e.installModule()

	return e, nil
}

// openSafeLibraries opens the libraries that cannot reach the host.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// dofile and loadfile are part of base but read the file system.
	L.SetGlobal("dofile", lua.LNil)
	L.SetGlobal("loadfile", lua.LNil)
}

// Manager returns the bound undo manager.
func (e *Engine) Manager() *undo.Manager {
	return e.manager
}

// DoString executes a Lua chunk.
func (e *Engine) DoString(code string) error {
	if e.closed {
		return ErrStateClosed
	}
	return e.doWithRecovery(func() error {
		return e.L.DoString(code)
	})
}

// DoFile executes a Lua file.
func (e *Engine) DoFile(path string) error {
	if e.closed {
		return ErrStateClosed
	}
	return e.doWithRecovery(func() error {
		return e.L.DoFile(path)
	})
}

// Close releases the Lua state. Actions created by the engine stay in the
// manager but their callbacks become no-ops.
func (e *Engine) Close() error {
	if e.closed {
		return ErrStateClosed
	}
	e.closed = true
	e.L.Close()
	return nil
}

func (e *Engine) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// call invokes fn in protected mode and returns its first result.
func (e *Engine) call(fn *lua.LFunction, args ...lua.LValue) (lua.LValue, error) {
	if e.closed {
		return lua.LNil, ErrStateClosed
	}

	var ret lua.LValue = lua.LNil
	err := e.doWithRecovery(func() error {
		if err := e.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
			return err
		}
		ret = e.L.Get(-1)
		e.L.Pop(1)
		return nil
	})
	return ret, err
}

// luaPrint routes print output to the logger so it cannot corrupt a
// terminal UI.
func (e *Engine) luaPrint(L *lua.LState) int {
	top := L.GetTop()
	parts := make([]string, 0, top)
	for i := 1; i <= top; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	e.logger.Info("lua print", "message", strings.Join(parts, "\t"))
	return 0
}
