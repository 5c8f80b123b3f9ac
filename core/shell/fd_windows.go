//go:build windows
// +build windows

package shell

import "golang.org/x/sys/windows"

// dupRawFd duplicates an OS descriptor via DuplicateHandle.
func dupRawFd(fd int) (int, error) {
	p := windows.CurrentProcess()
	var dup windows.Handle
	err := windows.DuplicateHandle(p, windows.Handle(fd), p, &dup, 0, true, windows.DUPLICATE_SAME_ACCESS)
	if err != nil {
		return 0, err
	}
	return int(dup), nil
}
