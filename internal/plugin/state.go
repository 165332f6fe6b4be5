package plugin

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 5 * time.Second

// State wraps a sandboxed Lua interpreter for rule scripts.
//
// gopher-lua states are not goroutine-safe; State serializes all access
// through a mutex. Scripts see the base, table, string and math
// libraries plus the nimstorm module. File loading primitives and the
// io/os/debug libraries are not available.
type State struct {
	mu      sync.Mutex
	L       *lua.LState
	timeout time.Duration
	changes Changes
	closed  bool
}

// Option configures a State.
type Option func(*State)

// WithTimeout sets the execution timeout for script runs.
func WithTimeout(d time.Duration) Option {
	return func(s *State) {
		s.timeout = d
	}
}

// NewState creates a sandboxed Lua state with the nimstorm module
// registered.
func NewState(opts ...Option) *State {
	s := &State{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	openSafeLibraries(L)

	// Base installs file loading primitives that would bypass the
	// sandbox.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	s.L = L
	s.register()
	return s
}

// openSafeLibraries opens only the Lua standard libraries that cannot
// touch the file system or the process.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// register installs the nimstorm module. Each function accepts strings
// or tables of strings; a string may carry several space-separated
// words.
func (s *State) register() {
	funcs := map[string]lua.LGFunction{
		"add_indenters":      s.addTo(&s.changes.Indenters),
		"remove_indenters":   s.removeFrom(&s.changes.Indenters),
		"add_dedenters":      s.addTo(&s.changes.Dedenters),
		"remove_dedenters":   s.removeFrom(&s.changes.Dedenters),
		"add_block_start":    s.addTo(&s.changes.BlockStart),
		"remove_block_start": s.removeFrom(&s.changes.BlockStart),
		"add_operators":      s.addTo(&s.changes.Operators),
		"remove_operators":   s.removeFrom(&s.changes.Operators),
	}
	mod := s.L.SetFuncs(s.L.NewTable(), funcs)
	s.L.SetGlobal("nimstorm", mod)
}

func (s *State) addTo(edit *Edit) lua.LGFunction {
	return func(L *lua.LState) int {
		edit.Add = append(edit.Add, collectWords(L)...)
		return 0
	}
}

func (s *State) removeFrom(edit *Edit) lua.LGFunction {
	return func(L *lua.LState) int {
		edit.Remove = append(edit.Remove, collectWords(L)...)
		return 0
	}
}

// collectWords gathers the string arguments of a call, flattening table
// arguments and splitting strings on whitespace.
func collectWords(L *lua.LState) []string {
	var words []string
	top := L.GetTop()
	for i := 1; i <= top; i++ {
		switch v := L.Get(i).(type) {
		case lua.LString:
			words = append(words, strings.Fields(string(v))...)
		case *lua.LTable:
			v.ForEach(func(_, item lua.LValue) {
				if str, ok := item.(lua.LString); ok {
					words = append(words, strings.Fields(string(str))...)
				}
			})
		default:
			L.ArgError(i, "string or table of strings expected")
		}
	}
	return words
}

// LoadFile runs the script at path and records its edits.
func (s *State) LoadFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	return s.protect(func() error {
		return s.L.DoFile(path)
	})
}

// LoadString runs inline script source and records its edits.
func (s *State) LoadString(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}
	return s.protect(func() error {
		return s.L.DoString(code)
	})
}

// protect runs fn under the configured timeout and converts panics
// into errors.
func (s *State) protect(fn func() error) (err error) {
	if s.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.L.SetContext(ctx)
		defer s.L.RemoveContext()
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Changes returns a copy of the edits recorded so far.
func (s *State) Changes() Changes {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changes.clone()
}

// Close releases the Lua state. Further loads return ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.L.Close()
	return nil
}
