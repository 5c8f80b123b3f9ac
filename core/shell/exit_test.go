package shell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runExit(t *testing.T, env *Environment, args ...string) (int, error) {
	t.Helper()

	b, _ := Find("exit")
	return Execute("exit", b, env, ExecData{Args: args})
}

func statusOf(t *testing.T, err error) int {
	t.Helper()

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("want ExitError, got %v", err)
	}
	return exitErr.Code
}

func TestExit_Numeric(t *testing.T) {
	env, _, _ := testSession("")

	code, err := runExit(t, env, "42")
	assert.Equal(t, 42, statusOf(t, err))
	assert.Equal(t, 42, code)
}

func TestExit_NoArgumentUsesLastStatus(t *testing.T) {
	env, _, _ := testSession("")
	env.LastStatus = 7

	_, err := runExit(t, env)
	assert.Equal(t, 7, statusOf(t, err))
}

func TestExit_Modulo256(t *testing.T) {
	cases := []struct {
		arg  string
		want int
	}{
		{"0", 0},
		{"255", 255},
		{"256", 0},
		{"257", 1},
		{"511", 255},
		{"-1", 255},
	}

	for _, tc := range cases {
		t.Run(tc.arg, func(t *testing.T) {
			env, _, _ := testSession("")
			_, err := runExit(t, env, tc.arg)
			assert.Equal(t, tc.want, statusOf(t, err))
		})
	}
}

func TestExit_NonNumericArgument(t *testing.T) {
	env, _, stderr := testSession("")

	code, err := runExit(t, env, "later")
	assert.Nil(t, err)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "exit: error:")
	assert.Contains(t, stderr.String(), "numeric argument required")
}

func TestExit_TooManyArguments(t *testing.T) {
	env, _, stderr := testSession("")

	code, err := runExit(t, env, "1", "2")
	assert.Nil(t, err)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "exit: error:")
}
