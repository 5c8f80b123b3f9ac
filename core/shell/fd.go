package shell

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// FdKind selects the active representation of an EnvFd. The set is closed:
// every switch over it handles all four kinds.
type FdKind int

const (
	// FdFile is an open file owned by the shell.
	FdFile FdKind = iota
	// FdRaw is an inherited OS-level descriptor number.
	FdRaw
	// FdPiped is an owned in-memory buffer standing in for a pipe endpoint.
	FdPiped
	// FdNull is an empty read source and a discarding write sink.
	FdNull
)

// EnvFd is the current backing of one logical descriptor slot.
type EnvFd struct {
	Kind FdKind

	file *os.File
	raw  int
	pipe *bytes.Buffer
}

// NewFileFd binds a slot to an open file.
func NewFileFd(f *os.File) *EnvFd {
	return &EnvFd{Kind: FdFile, file: f}
}

// NewRawFd binds a slot to an inherited OS descriptor number.
func NewRawFd(fd int) *EnvFd {
	return &EnvFd{Kind: FdRaw, raw: fd}
}

// NewPipeFd binds a slot to an in-memory buffer.
func NewPipeFd(buf *bytes.Buffer) *EnvFd {
	return &EnvFd{Kind: FdPiped, pipe: buf}
}

// NewNullFd binds a slot to the null stream.
func NewNullFd() *EnvFd {
	return &EnvFd{Kind: FdNull}
}

// Clone duplicates the binding. File and raw descriptors get an OS-level dup
// so the clone's lifetime is independent of the original; a built-in may
// resolve two slots to the same underlying binding.
//
// A piped buffer clone shares the underlying buffer with no independent
// cursor, so reads through one handle consume bytes the other never sees.
// Known defect, kept until redirection grows a real pipe type.
func (fd *EnvFd) Clone() (*EnvFd, error) {
	switch fd.Kind {
	case FdFile:
		dup, err := dupRawFd(int(fd.file.Fd()))
		if err != nil {
			return nil, fmt.Errorf("dup %s: %v", fd.file.Name(), err)
		}
		return NewFileFd(os.NewFile(uintptr(dup), fd.file.Name())), nil
	case FdRaw:
		dup, err := dupRawFd(fd.raw)
		if err != nil {
			return nil, fmt.Errorf("dup fd %d: %v", fd.raw, err)
		}
		return NewFileFd(os.NewFile(uintptr(dup), fmt.Sprintf("fd/%d", fd.raw))), nil
	case FdPiped:
		return NewPipeFd(fd.pipe), nil
	case FdNull:
		return NewNullFd(), nil
	}
	return nil, fmt.Errorf("unknown descriptor binding %d", fd.Kind)
}

// Reader returns the readable stream for the binding.
func (fd *EnvFd) Reader() io.ReadCloser {
	switch fd.Kind {
	case FdFile:
		return fd.file
	case FdRaw:
		return fd.osFile()
	case FdPiped:
		return io.NopCloser(fd.pipe)
	case FdNull:
		return &nullStream{}
	}
	return &nullStream{}
}

// Writer returns the writable stream for the binding.
func (fd *EnvFd) Writer() io.WriteCloser {
	switch fd.Kind {
	case FdFile:
		return fd.file
	case FdRaw:
		return fd.osFile()
	case FdPiped:
		return nopWriteCloser{fd.pipe}
	case FdNull:
		return &nullStream{}
	}
	return &nullStream{}
}

// RawFd reports the OS-level descriptor behind the binding, if it has one.
// Buffer and null bindings do not.
func (fd *EnvFd) RawFd() (int, bool) {
	switch fd.Kind {
	case FdFile:
		return int(fd.file.Fd()), true
	case FdRaw:
		return fd.raw, true
	}
	return 0, false
}

// Close releases any OS resource the binding owns.
func (fd *EnvFd) Close() error {
	switch fd.Kind {
	case FdFile:
		return fd.file.Close()
	case FdRaw:
		return fd.osFile().Close()
	}
	return nil
}

// osFile lazily wraps a raw descriptor so it can be read, written and closed
// like a file. The wrapper is memoized so Close only runs once.
func (fd *EnvFd) osFile() *os.File {
	if fd.file == nil {
		fd.file = os.NewFile(uintptr(fd.raw), fmt.Sprintf("fd/%d", fd.raw))
	}
	return fd.file
}

// nullStream reads as an empty source and discards writes.
type nullStream struct{}

var _ io.ReadCloser = (*nullStream)(nil)
var _ io.WriteCloser = (*nullStream)(nil)

func (*nullStream) Read([]byte) (int, error) {
	return 0, io.EOF
}

func (*nullStream) Write(b []byte) (int, error) {
	return len(b), nil
}

func (*nullStream) Close() error {
	return nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
