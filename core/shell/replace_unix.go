//go:build !windows
// +build !windows

package shell

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// replaceProcess binds the resolved streams to descriptors 0-2 and replaces
// the current process image. All descriptor work happens before the
// irreversible transfer; once unix.Exec succeeds nothing in this process
// runs again, so there is deliberately no cleanup path after it. Only a
// launch failure returns.
//
// Buffer and null bindings have no OS descriptor to hand over; those slots
// keep whatever the process already has inherited.
func replaceProcess(path string, argv, environ []string, ioc *IOContext) error {
	for slot := 0; slot < 3; slot++ {
		raw, ok := ioc.binding(slot).RawFd()
		if !ok {
			continue
		}
		if raw == slot {
			continue
		}
		// Duplicate rather than move: the shell's handles must stay valid
		// if the exec below fails.
		dup, err := unix.Dup(raw)
		if err != nil {
			return fmt.Errorf("dup fd %d: %v", slot, err)
		}
		if err := unix.Dup2(dup, slot); err != nil {
			unix.Close(dup)
			return fmt.Errorf("dup2 fd %d: %v", slot, err)
		}
		unix.Close(dup)
	}

	return unix.Exec(path, argv, environ)
}
