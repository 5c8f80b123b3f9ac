//go:build windows
// +build windows

package shell

import (
	"errors"
	"os"
	"os/exec"
)

// replaceProcess emulates process replacement where no exec facility exists:
// spawn the program with the resolved streams, wait for it, then terminate
// this process with the child's exact exit status. Intentional platform
// divergence from the POSIX replace-in-place behavior, not a bug.
func replaceProcess(path string, argv, environ []string, ioc *IOContext) error {
	cmd := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Env:    environ,
		Stdin:  ioc.Stdin(),
		Stdout: ioc.Stdout(),
		Stderr: ioc.Stderr(),
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		return err
	}
	os.Exit(0)
	panic("unreachable")
}
