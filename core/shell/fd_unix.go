//go:build !windows
// +build !windows

package shell

import "golang.org/x/sys/unix"

// dupRawFd duplicates an OS descriptor. The duplicate shares the underlying
// open file description but has an independent lifetime.
func dupRawFd(fd int) (int, error) {
	return unix.Dup(fd)
}
