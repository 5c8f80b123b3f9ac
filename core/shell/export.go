package shell

import (
	"fmt"
	"strings"

	"github.com/pborman/getopt/v2"
)

// Export implements the export built-in.
//
// export [-p] [NAME[=VALUE]...]
//
// NAME=VALUE assigns and exports; a bare NAME is exported whether or not it
// currently has a value, so a future assignment inherits the flag. -p prints
// the exported variables, one per line, sorted by name.
func Export(ioc *IOContext, env *Environment, data ExecData) (int, error) {
	opts := getopt.New()
	list := opts.Bool('p', "print all exported variables")
	if err := opts.Getopt(append([]string{"export"}, data.Args...), nil); err != nil {
		return 1, err
	}

	if *list {
		w := ioc.Stdout()
		for _, name := range env.Exported() {
			v, _ := env.LookupVar(name)
			if v.Defined {
				fmt.Fprintf(w, "export %s=%s\n", name, v.Value)
			} else {
				fmt.Fprintf(w, "export %s\n", name)
			}
		}
		return 0, nil
	}

	for _, arg := range opts.Args() {
		name := arg
		if eq := strings.IndexByte(arg, '='); eq >= 0 {
			name = arg[:eq]
			if err := env.SetVar(name, arg[eq+1:]); err != nil {
				return 1, err
			}
		}
		env.ExportVar(name)
	}
	return 0, nil
}
