package shell

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DefaultIFS is the field separator set used by read when IFS is unset.
const DefaultIFS = " \t\n"

// ErrReadOnly is returned when a built-in tries to change or remove a
// read-only variable.
type ErrReadOnly struct {
	Name string
}

func (e *ErrReadOnly) Error() string {
	return fmt.Sprintf("%s: read-only variable", e.Name)
}

// Variable is a single shell variable.
//
// A variable may be exported without being defined: "export FOO" before any
// assignment marks the name so that a later assignment inherits the flag.
type Variable struct {
	Value    string
	Defined  bool
	Exported bool
	ReadOnly bool
}

// FuncBody is an opaque function definition owned by the parser/evaluator.
type FuncBody interface{}

// Environment is the session-wide shell state: the variable table, the
// function table and the descriptor table. It is created once per session and
// mutated in place by built-ins.
//
// Built-ins execute one at a time against a single Environment; the lock only
// guards against incidental cross-goroutine reads, like MapEnv in the
// environments this was modeled on.
type Environment struct {
	rw    sync.RWMutex
	vars  map[string]Variable
	funcs map[string]FuncBody
	fds   map[int]*EnvFd

	// LastStatus is the exit status of the most recently executed command,
	// consumed by exit with no arguments.
	LastStatus int
}

// NewEnvironment creates an Environment with descriptors 0, 1 and 2 bound to
// the given streams. Nil bindings become null streams so the invariant that
// slots 0-2 are always present holds.
func NewEnvironment(stdin, stdout, stderr *EnvFd) *Environment {
	if stdin == nil {
		stdin = NewNullFd()
	}
	if stdout == nil {
		stdout = NewNullFd()
	}
	if stderr == nil {
		stderr = NewNullFd()
	}

	return &Environment{
		vars:  make(map[string]Variable),
		funcs: make(map[string]FuncBody),
		fds: map[int]*EnvFd{
			0: stdin,
			1: stdout,
			2: stderr,
		},
	}
}

// LookupVar retrieves a variable, defined or not.
func (e *Environment) LookupVar(name string) (Variable, bool) {
	e.rw.RLock()
	defer e.rw.RUnlock()

	v, ok := e.vars[name]
	return v, ok
}

// Getenv retrieves the value of a variable, "" if undefined.
func (e *Environment) Getenv(name string) string {
	v, _ := e.LookupVar(name)
	return v.Value
}

// SetVar assigns a value, keeping any existing exported flag. Assigning to a
// read-only variable fails.
func (e *Environment) SetVar(name, value string) error {
	e.rw.Lock()
	defer e.rw.Unlock()

	v := e.vars[name]
	if v.ReadOnly {
		return &ErrReadOnly{Name: name}
	}
	v.Value = value
	v.Defined = true
	e.vars[name] = v
	return nil
}

// ExportVar marks a variable exported. The name doesn't need a value yet; a
// later assignment inherits the flag.
func (e *Environment) ExportVar(name string) {
	e.rw.Lock()
	defer e.rw.Unlock()

	v := e.vars[name]
	v.Exported = true
	e.vars[name] = v
}

// SetReadOnly marks a variable read-only. There is no ordinary path back.
func (e *Environment) SetReadOnly(name string) {
	e.rw.Lock()
	defer e.rw.Unlock()

	v := e.vars[name]
	v.ReadOnly = true
	e.vars[name] = v
}

// UnsetVar removes a variable. Removing an absent name succeeds; removing a
// read-only one fails and leaves it in place.
func (e *Environment) UnsetVar(name string) error {
	e.rw.Lock()
	defer e.rw.Unlock()

	if v, ok := e.vars[name]; ok && v.ReadOnly {
		return &ErrReadOnly{Name: name}
	}
	delete(e.vars, name)
	return nil
}

// SetFunc defines or replaces a shell function.
func (e *Environment) SetFunc(name string, body FuncBody) {
	e.rw.Lock()
	defer e.rw.Unlock()
	e.funcs[name] = body
}

// LookupFunc retrieves a shell function definition.
func (e *Environment) LookupFunc(name string) (FuncBody, bool) {
	e.rw.RLock()
	defer e.rw.RUnlock()

	body, ok := e.funcs[name]
	return body, ok
}

// UnsetFunc removes a shell function, absent names included.
func (e *Environment) UnsetFunc(name string) {
	e.rw.Lock()
	defer e.rw.Unlock()
	delete(e.funcs, name)
}

// Exported returns the names of all exported variables, sorted for
// deterministic output. Names exported before being defined are included.
func (e *Environment) Exported() []string {
	e.rw.RLock()
	defer e.rw.RUnlock()

	var names []string
	for name, v := range e.vars {
		if v.Exported {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Environ returns the exported, defined variables as a sorted "key=value"
// list, the base environment for launched programs.
func (e *Environment) Environ() []string {
	e.rw.RLock()
	defer e.rw.RUnlock()

	var env []string
	for name, v := range e.vars {
		if v.Exported && v.Defined {
			env = append(env, fmt.Sprintf("%s=%s", name, v.Value))
		}
	}
	sort.Strings(env)
	return env
}

// IFS returns the current field separator set for read.
func (e *Environment) IFS() string {
	if v, ok := e.LookupVar("IFS"); ok && v.Defined {
		return v.Value
	}
	return DefaultIFS
}

// Fd returns the binding for a descriptor slot, nil if the slot is empty.
func (e *Environment) Fd(n int) *EnvFd {
	e.rw.RLock()
	defer e.rw.RUnlock()
	return e.fds[n]
}

// SetFd rebinds a descriptor slot, returning the previous binding so the
// caller can close or restore it.
func (e *Environment) SetFd(n int, fd *EnvFd) *EnvFd {
	e.rw.Lock()
	defer e.rw.Unlock()

	old := e.fds[n]
	e.fds[n] = fd
	return old
}

// OverlayEnviron layers per-invocation overrides on top of a base "key=value"
// environment list. Overrides win over base entries.
func OverlayEnviron(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}

	merged := make(map[string]string, len(base)+len(overrides))
	for _, entry := range base {
		split := strings.SplitN(entry, "=", 2)
		key, value := split[0], ""
		if len(split) > 1 {
			value = split[1]
		}
		merged[key] = value
	}
	for key, value := range overrides {
		merged[key] = value
	}

	var env []string
	for key, value := range merged {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}
	sort.Strings(env)
	return env
}
