package shell

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/pborman/getopt/v2"
)

var errEndOfInput = errors.New("end of input")

// Read implements the read built-in.
//
// read [-r] NAME...
//
// One logical line is read from stdin, split into as many fields as there
// are names using the bytes of IFS, and assigned field-by-field. With -r
// backslash is an ordinary character; otherwise a lone trailing backslash
// continues the line and backslash escapes are resolved per field after
// splitting.
func Read(ioc *IOContext, env *Environment, data ExecData) (int, error) {
	opts := getopt.New()
	raw := opts.Bool('r', "do not treat backslash as an escape character")
	if err := opts.Getopt(append([]string{"read"}, data.Args...), nil); err != nil {
		return 1, err
	}

	names := opts.Args()
	if len(names) == 0 {
		return 1, errors.New("at least one variable name is required")
	}

	line, err := readLogicalLine(ioc.Stdin(), *raw)
	if err != nil {
		return 1, err
	}

	fields := splitFields(line, env.IFS(), len(names))
	for i, name := range names {
		var value []byte
		if i < len(fields) {
			value = fields[i]
		}
		if !*raw {
			value = resolveEscapes(value)
		}
		if err := env.SetVar(name, string(value)); err != nil {
			return 1, err
		}
	}
	return 0, nil
}

// readLogicalLine reads up to and including the next line terminator and
// strips it. In non-raw mode an odd run of trailing backslashes means the
// final one is an unescaped continuation marker: it is dropped and the next
// line is spliced on, until a line ends with an even run (possibly zero).
//
// Reaching end of input before any byte at all is an error; a non-empty
// final line without a terminator is kept as data.
func readLogicalLine(r io.Reader, raw bool) ([]byte, error) {
	br := bufio.NewReader(r)
	var buf []byte
	sawData := false

	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			sawData = true
		}
		if err != nil && err != io.EOF {
			return nil, err
		}
		atEOF := err == io.EOF

		line = bytes.TrimSuffix(line, []byte{'\n'})
		if !raw && oddTrailingBackslashes(line) {
			buf = append(buf, line[:len(line)-1]...)
			if !atEOF {
				continue
			}
			break
		}

		buf = append(buf, line...)
		break
	}

	if !sawData {
		return nil, errEndOfInput
	}
	return buf, nil
}

// oddTrailingBackslashes reports whether the line ends in an unescaped
// backslash: adjacent pairs cancel out, leaving one real escape when the
// trailing run is odd.
func oddTrailingBackslashes(line []byte) bool {
	n := 0
	for i := len(line) - 1; i >= 0 && line[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// splitFields splits line into at most n fields using the bytes of ifs as
// the delimiter set. The first n-1 fields each end at the first unconsumed
// delimiter; the final field absorbs everything that remains, further
// delimiters included, so no input is ever discarded.
func splitFields(line []byte, ifs string, n int) [][]byte {
	if n <= 1 {
		return [][]byte{line}
	}

	var fields [][]byte
	start := 0
	for i := 0; i < len(line) && len(fields) < n-1; i++ {
		if strings.IndexByte(ifs, line[i]) >= 0 {
			fields = append(fields, line[start:i])
			start = i + 1
		}
	}
	return append(fields, line[start:])
}

// resolveEscapes removes each backslash, keeping the byte that follows it
// literally. Continuation already consumed any true trailing backslash, so a
// dangling escape cannot survive here.
func resolveEscapes(field []byte) []byte {
	out := make([]byte, 0, len(field))
	escaped := false
	for _, b := range field {
		switch {
		case escaped:
			out = append(out, b)
			escaped = false
		case b == '\\':
			escaped = true
		default:
			out = append(out, b)
		}
	}
	return out
}
