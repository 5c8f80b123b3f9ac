package shell

import (
	"errors"
	"fmt"
	"sort"
)

// ExecData is the per-invocation input for a built-in: the argument list with
// the command name already stripped, and environment overrides scoped to this
// single invocation only.
type ExecData struct {
	Args []string
	Env  map[string]string
}

// Builtin is a command implemented inside the shell process itself.
type Builtin interface {
	Main(ioc *IOContext, env *Environment, data ExecData) (int, error)
}

// BuiltinFunc adapts a function to the Builtin interface.
type BuiltinFunc func(ioc *IOContext, env *Environment, data ExecData) (int, error)

func (f BuiltinFunc) Main(ioc *IOContext, env *Environment, data ExecData) (int, error) {
	return f(ioc, env, data)
}

var _ Builtin = (BuiltinFunc)(nil)

// builtins is the fixed set of shell built-ins. Lookups are exact and
// case-sensitive; this is deliberately not an extension point.
var builtins = map[string]Builtin{}

func init() {
	builtins["exec"] = BuiltinFunc(Exec)
	builtins["exit"] = BuiltinFunc(Exit)
	builtins["export"] = BuiltinFunc(Export)
	builtins["read"] = BuiltinFunc(Read)
	builtins["unset"] = BuiltinFunc(Unset)
}

// Find looks up a built-in by name. A miss signals that the command is not a
// built-in and should fall through to external command execution.
func Find(name string) (Builtin, bool) {
	b, ok := builtins[name]
	return b, ok
}

// BuiltinNames lists the built-in command names, sorted.
func BuiltinNames() []string {
	var names []string
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExitError is the non-local control transfer produced by the exit built-in.
// The command executor must recognize it and stop interpreting, finishing
// with the carried status; it is not a reportable failure.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// Execute resolves the session's descriptor bindings into a fresh I/O context
// and runs the built-in against it. A body error is reported as one
// "<name>: error: <message>" line on the resolved stderr with status 1.
// Exit's control transfer and descriptor-resolution failures are returned to
// the caller instead of being reported here.
func Execute(name string, b Builtin, env *Environment, data ExecData) (int, error) {
	ioc, err := ResolveIO(env)
	if err != nil {
		return 1, err
	}
	defer ioc.Close()

	code, err := b.Main(ioc, env, data)
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return code, err
		}
		fmt.Fprintf(ioc.Stderr(), "%s: error: %v\n", name, err)
		return 1, nil
	}
	return code, nil
}
