package shell

import (
	"os/exec"
)

// Exec implements the exec built-in: replace the shell process with the
// given program. On success this never returns; the calling process and all
// its in-memory state are gone. A launch failure is an ordinary recoverable
// error and the session continues, mirroring command-not-found handling.
//
// The replacement's environment is built from scratch: the shell's exported
// variables layered with the invocation's overrides, nothing else. The
// resolved stdin/stdout/stderr are duplicated - not moved - onto descriptors
// 0-2 before the transfer, so the shell's own handles stay valid on the
// error path. Descriptors above 2 are not propagated.
func Exec(ioc *IOContext, env *Environment, data ExecData) (int, error) {
	if len(data.Args) == 0 {
		// exec with only redirections is a no-op.
		return 0, nil
	}

	path, err := exec.LookPath(data.Args[0])
	if err != nil {
		return 1, err
	}

	environ := OverlayEnviron(env.Environ(), data.Env)
	return 1, replaceProcess(path, data.Args, environ, ioc)
}
