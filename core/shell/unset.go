package shell

import (
	"github.com/pborman/getopt/v2"
)

// modeFlag writes a fixed value through to a shared target when its option
// is seen, so the last of a set of mutually exclusive flags wins by parse
// order.
type modeFlag struct {
	target *string
	mode   string
}

func (m modeFlag) Set(string, getopt.Option) error {
	*m.target = m.mode
	return nil
}

func (m modeFlag) String() string {
	return m.mode
}

var _ getopt.Value = modeFlag{}

// Unset implements the unset built-in.
//
// unset [-f|-v] [NAME...]
//
// -v (the default) removes variables, -f removes functions; the last flag
// given wins. Absent names are not errors. A read-only variable is left in
// place and recorded as a failure, but the remaining names are still
// processed; the final status is nonzero if any removal was rejected.
func Unset(ioc *IOContext, env *Environment, data ExecData) (int, error) {
	mode := "v"
	opts := getopt.New()
	opts.Flag(modeFlag{&mode, "f"}, 'f', "treat each NAME as a shell function").SetFlag()
	opts.Flag(modeFlag{&mode, "v"}, 'v', "treat each NAME as a shell variable").SetFlag()
	if err := opts.Getopt(append([]string{"unset"}, data.Args...), nil); err != nil {
		return 1, err
	}

	var rejected error
	for _, name := range opts.Args() {
		if mode == "f" {
			env.UnsetFunc(name)
			continue
		}
		if err := env.UnsetVar(name); err != nil {
			rejected = err
			continue
		}
	}

	if rejected != nil {
		return 1, rejected
	}
	return 0, nil
}
