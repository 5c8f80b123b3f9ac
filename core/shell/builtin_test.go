package shell

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func TestFind(t *testing.T) {
	for _, name := range []string{"exec", "exit", "export", "read", "unset"} {
		t.Run(name, func(t *testing.T) {
			b, ok := Find(name)
			assert.True(t, ok)
			assert.NotNil(t, b)
		})
	}

	// Lookups are exact and case-sensitive.
	for _, name := range []string{"Exec", "EXIT", "cd", "exports", ""} {
		t.Run("miss-"+name, func(t *testing.T) {
			_, ok := Find(name)
			assert.False(t, ok)
		})
	}
}

func TestBuiltinNames(t *testing.T) {
	assert.Equal(t, []string{"exec", "exit", "export", "read", "unset"}, BuiltinNames())
}

func TestExecute_BodyErrorBecomesDiagnostic(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithTestNameForDir(true),
	)

	env, stdout, stderr := testSession("")

	// read with no names is an argument-grammar failure.
	b, _ := Find("read")
	code, err := Execute("read", b, env, ExecData{})
	assert.Nil(t, err)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())

	g.Assert(t, "diagnostic", stderr.Bytes())
}

func TestExecute_ExitPassesThrough(t *testing.T) {
	env, _, stderr := testSession("")

	b, _ := Find("exit")
	code, err := Execute("exit", b, env, ExecData{Args: []string{"3"}})

	var exitErr *ExitError
	assert.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, 3, code)
	// A control transfer is not a reported error.
	assert.Empty(t, stderr.String())
}

func TestExecute_SuccessStatusUnchanged(t *testing.T) {
	env, _, stderr := testSession("")

	b, _ := Find("export")
	code, err := Execute("export", b, env, ExecData{Args: []string{"FOO=bar"}})
	assert.Nil(t, err)
	assert.Equal(t, 0, code)
	assert.Empty(t, stderr.String())
}
