package shell

import (
	"fmt"
	"io"
)

// IOContext holds the streams resolved from the session's descriptor table
// for a single built-in invocation. Contexts are never reused: each
// invocation resolves a fresh one and closes it when the built-in returns.
type IOContext struct {
	stdin  io.ReadCloser
	stdout io.WriteCloser
	stderr io.WriteCloser

	// bindings are the per-invocation clones of descriptor slots 0-2, kept
	// so exec can reach the descriptors behind the streams.
	bindings [3]*EnvFd
}

// ResolveIO translates the current bindings for descriptors 0, 1 and 2 into
// concrete stream handles. Resolution is ordered - stdin, then stdout, then
// stderr - and each slot is cloned first, so two slots backed by the same
// binding end up with independent handles. Any duplication failure aborts
// the invocation before the built-in body runs.
func ResolveIO(env *Environment) (*IOContext, error) {
	ctx := &IOContext{}

	for slot := 0; slot < 3; slot++ {
		bound := env.Fd(slot)
		if bound == nil {
			bound = NewNullFd()
		}
		clone, err := bound.Clone()
		if err != nil {
			ctx.Close()
			return nil, fmt.Errorf("fd %d: %v", slot, err)
		}
		ctx.bindings[slot] = clone
	}

	ctx.stdin = ctx.bindings[0].Reader()
	ctx.stdout = ctx.bindings[1].Writer()
	ctx.stderr = ctx.bindings[2].Writer()
	return ctx, nil
}

// Stdin returns the resolved standard input.
func (c *IOContext) Stdin() io.ReadCloser {
	return c.stdin
}

// Stdout returns the resolved standard output.
func (c *IOContext) Stdout() io.WriteCloser {
	return c.stdout
}

// Stderr returns the resolved standard error.
func (c *IOContext) Stderr() io.WriteCloser {
	return c.stderr
}

// binding returns the resolved clone for a slot, for descriptor-level use.
func (c *IOContext) binding(slot int) *EnvFd {
	return c.bindings[slot]
}

// Close releases the resolved clones. The session's own bindings are
// untouched.
func (c *IOContext) Close() error {
	var firstErr error
	for _, fd := range c.bindings {
		if fd == nil {
			continue
		}
		if err := fd.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
