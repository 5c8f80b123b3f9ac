package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func runUnset(t *testing.T, env *Environment, args ...string) int {
	t.Helper()

	b, _ := Find("unset")
	code, err := Execute("unset", b, env, ExecData{Args: args})
	assert.Nil(t, err)
	return code
}

func TestUnset_Variable(t *testing.T) {
	env, _, _ := testSession("")
	assert.Nil(t, env.SetVar("FOO", "bar"))

	assert.Equal(t, 0, runUnset(t, env, "FOO"))

	_, ok := env.LookupVar("FOO")
	assert.False(t, ok)
}

func TestUnset_AbsentNameIsNotAnError(t *testing.T) {
	env, _, _ := testSession("")

	assert.Equal(t, 0, runUnset(t, env, "NEVER_SET"))
}

func TestUnset_ReadOnlyRejected(t *testing.T) {
	env, _, stderr := testSession("")
	assert.Nil(t, env.SetVar("GUARDED", "keep"))
	env.SetReadOnly("GUARDED")

	assert.Equal(t, 1, runUnset(t, env, "GUARDED"))
	assert.Contains(t, stderr.String(), "unset: error:")
	assert.Contains(t, stderr.String(), "read-only")

	// Still present.
	assert.Equal(t, "keep", env.Getenv("GUARDED"))
}

func TestUnset_ContinuesPastReadOnly(t *testing.T) {
	env, _, _ := testSession("")
	assert.Nil(t, env.SetVar("A", "1"))
	assert.Nil(t, env.SetVar("GUARDED", "keep"))
	env.SetReadOnly("GUARDED")
	assert.Nil(t, env.SetVar("Z", "26"))

	assert.Equal(t, 1, runUnset(t, env, "A", "GUARDED", "Z"))

	// The rejection doesn't stop later names from being removed.
	_, ok := env.LookupVar("A")
	assert.False(t, ok)
	_, ok = env.LookupVar("Z")
	assert.False(t, ok)
	assert.Equal(t, "keep", env.Getenv("GUARDED"))
}

func TestUnset_Functions(t *testing.T) {
	env, _, _ := testSession("")
	env.SetFunc("greet", "echo hi")
	assert.Nil(t, env.SetVar("greet", "a variable too"))

	assert.Equal(t, 0, runUnset(t, env, "-f", "greet"))

	// Only the function goes; the variable of the same name stays.
	_, ok := env.LookupFunc("greet")
	assert.False(t, ok)
	assert.Equal(t, "a variable too", env.Getenv("greet"))
}

func TestUnset_ReadOnlyVariableDoesNotBlockFunctions(t *testing.T) {
	env, _, _ := testSession("")
	env.SetFunc("guarded", "body")
	assert.Nil(t, env.SetVar("guarded", "value"))
	env.SetReadOnly("guarded")

	// The read-only flag protects the variable, not the function.
	assert.Equal(t, 0, runUnset(t, env, "-f", "guarded"))

	_, ok := env.LookupFunc("guarded")
	assert.False(t, ok)
	assert.Equal(t, "value", env.Getenv("guarded"))
}

func TestUnset_LastFlagWins(t *testing.T) {
	env, _, _ := testSession("")
	env.SetFunc("thing", "body")
	assert.Nil(t, env.SetVar("thing", "value"))

	// -f then -v: variables are the target.
	assert.Equal(t, 0, runUnset(t, env, "-f", "-v", "thing"))

	_, varOk := env.LookupVar("thing")
	assert.False(t, varOk)
	_, funcOk := env.LookupFunc("thing")
	assert.True(t, funcOk)

	// -v then -f: functions are the target.
	assert.Nil(t, env.SetVar("thing", "value"))
	assert.Equal(t, 0, runUnset(t, env, "-v", "-f", "thing"))

	_, varOk = env.LookupVar("thing")
	assert.True(t, varOk)
	_, funcOk = env.LookupFunc("thing")
	assert.False(t, funcOk)
}
