package expr

import (
	"context"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/cinder/internal/indent/column"
)

const (
	// DefaultFunc is the global Lua function called for each line.
	DefaultFunc = "indent"

	// DefaultTimeout bounds a single evaluation.
	DefaultTimeout = time.Second

	moduleName = "cinder"
)

// Host gives an expression access to the buffer being indented.
type Host interface {
	LineCount() int
	Line(lnum int) string
	CIndent(lnum int) int
	LispIndent(lnum int) int
	ShiftWidth() int
	TabStop() int
}

// Evaluator runs an indent expression.
type Evaluator struct {
	L *lua.LState

	mu       sync.Mutex
	funcName string
	timeout  time.Duration
	closed   bool
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithFunc sets the name of the global function to call.
func WithFunc(name string) Option {
	return func(e *Evaluator) {
		e.funcName = name
	}
}

// WithTimeout bounds each evaluation. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(e *Evaluator) {
		e.timeout = d
	}
}

// New loads source into a sandboxed Lua state. It fails with
// ErrNoIndentFunc when the source does not define the indent function.
func New(source string, opts ...Option) (*Evaluator, error) {
	e := &Evaluator{
		funcName: DefaultFunc,
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	e.L = L

	if err := e.doWithRecovery(func() error { return L.DoString(source) }); err != nil {
		L.Close()
		return nil, fmt.Errorf("load indent expression: %w", err)
	}
	if fn := L.GetGlobal(e.funcName); fn.Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("%w: %q", ErrNoIndentFunc, e.funcName)
	}
	return e, nil
}

// openSafeLibraries opens the libraries an expression may use. io, os,
// debug and package are left out, as are the loaders.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Indent calls the indent function for line lnum. A negative result is
// returned as -1.
func (e *Evaluator) Indent(ctx context.Context, host Host, lnum int) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return 0, ErrStateClosed
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()

	e.L.SetGlobal(moduleName, e.L.SetFuncs(e.L.NewTable(), hostFuncs(host)))
	defer e.L.SetGlobal(moduleName, lua.LNil)

	stackTop := e.L.GetTop()
	err := e.doWithRecovery(func() error {
		return e.L.CallByParam(lua.P{
			Fn:      e.L.GetGlobal(e.funcName),
			NRet:    1,
			Protect: true,
		}, lua.LNumber(lnum))
	})
	if err != nil {
		e.L.SetTop(stackTop)
		return 0, fmt.Errorf("indent expression for line %d: %w", lnum, err)
	}

	ret := e.L.Get(-1)
	e.L.Pop(1)
	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("%w: got %s", ErrBadResult, ret.Type())
	}
	if n < 0 {
		return -1, nil
	}
	return int(n), nil
}

// doWithRecovery executes fn, turning a panic into an error.
func (e *Evaluator) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Close releases the Lua state. Later calls return ErrStateClosed.
func (e *Evaluator) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.L.Close()
	e.closed = true
	return nil
}

func hostFuncs(host Host) map[string]lua.LGFunction {
	lineArg := func(L *lua.LState) int {
		return L.CheckInt(1)
	}
	return map[string]lua.LGFunction{
		"getline": func(L *lua.LState) int {
			L.Push(lua.LString(host.Line(lineArg(L))))
			return 1
		},
		"line_count": func(L *lua.LState) int {
			L.Push(lua.LNumber(host.LineCount()))
			return 1
		},
		"indent": func(L *lua.LState) int {
			L.Push(lua.LNumber(column.IndentOf(host.Line(lineArg(L)), host.TabStop())))
			return 1
		},
		"cindent": func(L *lua.LState) int {
			L.Push(lua.LNumber(host.CIndent(lineArg(L))))
			return 1
		},
		"lispindent": func(L *lua.LState) int {
			L.Push(lua.LNumber(host.LispIndent(lineArg(L))))
			return 1
		},
		"shiftwidth": func(L *lua.LState) int {
			L.Push(lua.LNumber(host.ShiftWidth()))
			return 1
		},
		"tabstop": func(L *lua.LState) int {
			L.Push(lua.LNumber(host.TabStop()))
			return 1
		},
	}
}
