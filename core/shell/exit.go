package shell

import (
	"errors"
	"fmt"
	"strconv"
)

// Exit implements the exit built-in.
//
// exit [STATUS]
//
// With no argument the status of the most recently executed command is used.
// The status is wrapped into the 0-255 range. The returned ExitError unwinds
// the command loop past normal sequencing; only a malformed argument is an
// ordinary reportable failure.
func Exit(ioc *IOContext, env *Environment, data ExecData) (int, error) {
	switch len(data.Args) {
	case 0:
		return env.LastStatus, &ExitError{Code: env.LastStatus}
	case 1:
		n, err := strconv.Atoi(data.Args[0])
		if err != nil {
			return 1, fmt.Errorf("%s: numeric argument required", data.Args[0])
		}
		code := ((n % 256) + 256) % 256
		return code, &ExitError{Code: code}
	default:
		return 1, errors.New("too many arguments")
	}
}
