package shell

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/anmitsu/go-shlex"
)

const (
	EnvHome     = "HOME"
	EnvPWD      = "PWD"
	EnvPath     = "PATH"
	EnvPrompt   = "PS1"
	EnvHostname = "HOSTNAME"
	EnvUser     = "USER"

	DefaultPrompt = `\u@\h:\w\$ `
)

// Shell is the interactive command loop that hosts the built-ins. Command
// lines are tokenized, leading NAME=VALUE words are peeled off as
// per-invocation environment overrides, built-ins run through the registry
// and anything else falls through to external command execution.
type Shell struct {
	Env      *Environment
	Readline *readline.Instance

	stderr io.Writer

	quit     bool
	exitCode int
}

// NewCommandShell builds a Shell for one-shot command execution, without a
// line editor.
func NewCommandShell(env *Environment) *Shell {
	return &Shell{
		Env:    env,
		stderr: env.Fd(2).Writer(),
	}
}

// NewShell wires a line editor over the session's descriptor bindings.
func NewShell(env *Environment, isTerminal bool) (*Shell, error) {
	cfg := &readline.Config{
		Stdin:  readline.NewCancelableStdin(env.Fd(0).Reader()),
		Stdout: env.Fd(1).Writer(),
		Stderr: env.Fd(2).Writer(),
		FuncIsTerminal: func() bool {
			return isTerminal
		},
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	return &Shell{
		Env:      env,
		Readline: rl,
		stderr:   env.Fd(2).Writer(),
	}, nil
}

func (s *Shell) prompt() string {
	prompt := s.Env.Getenv(EnvPrompt)
	if prompt == "" {
		prompt = DefaultPrompt
	}
	prompt = strings.ReplaceAll(prompt, `\u`, s.Env.Getenv(EnvUser))
	prompt = strings.ReplaceAll(prompt, `\h`, s.Env.Getenv(EnvHostname))

	pwd := s.Env.Getenv(EnvPWD)
	home := s.Env.Getenv(EnvHome)
	if home != "" && strings.HasPrefix(pwd, home) {
		pwd = "~" + strings.TrimPrefix(pwd, home)
	}
	prompt = strings.ReplaceAll(prompt, `\w`, pwd)
	prompt = strings.ReplaceAll(prompt, `\$`, "$")

	return prompt
}

// Run drives the interactive loop until exit or end of input and returns the
// final status.
func (s *Shell) Run() int {
	for !s.quit {
		s.Readline.SetPrompt(s.prompt())
		line, err := s.Readline.Readline()

		switch {
		case err == io.EOF:
			return s.Env.LastStatus // Input closed, quit.

		case err == readline.ErrInterrupt:
			// Interrupt clears the line.
			continue

		case err != nil:
			log.Printf("readline: %v", err)
			return 1

		case strings.TrimSpace(line) == "":
			continue

		default:
			s.RunCommand(line)
		}
	}
	return s.exitCode
}

// RunCommand executes a single command line against the session, updating
// the last exit status.
func (s *Shell) RunCommand(line string) {
	words, err := shlex.Split(line, true)
	if err != nil {
		fmt.Fprintf(s.stderr, "sh: %v\n", err)
		s.Env.LastStatus = 1
		return
	}

	overrides, args := splitAssignments(words)
	if len(args) == 0 {
		// An assignment-only line mutates the shell itself.
		for name, value := range overrides {
			if err := s.Env.SetVar(name, value); err != nil {
				fmt.Fprintf(s.stderr, "sh: %v\n", err)
				s.Env.LastStatus = 1
				return
			}
		}
		s.Env.LastStatus = 0
		return
	}

	data := ExecData{Args: args[1:], Env: overrides}

	if builtin, ok := Find(args[0]); ok {
		code, err := Execute(args[0], builtin, s.Env, data)
		var exitErr *ExitError
		switch {
		case errors.As(err, &exitErr):
			s.quit = true
			s.exitCode = exitErr.Code
			code = exitErr.Code
		case err != nil:
			fmt.Fprintf(s.stderr, "sh: %s: %v\n", args[0], err)
			code = 1
		}
		s.Env.LastStatus = code
		return
	}

	s.runExternal(args, overrides)
}

// runExternal executes a non-built-in command with the exported environment
// plus the invocation's overrides.
func (s *Shell) runExternal(args []string, overrides map[string]string) {
	path, err := exec.LookPath(args[0])
	if err != nil {
		fmt.Fprintf(s.stderr, "sh: %s: command not found\n", args[0])
		s.Env.LastStatus = 127
		return
	}

	ioc, err := ResolveIO(s.Env)
	if err != nil {
		fmt.Fprintf(s.stderr, "sh: %s: %v\n", args[0], err)
		s.Env.LastStatus = 1
		return
	}
	defer ioc.Close()

	cmd := &exec.Cmd{
		Path:   path,
		Args:   args,
		Env:    OverlayEnviron(s.Env.Environ(), overrides),
		Stdin:  ioc.Stdin(),
		Stdout: ioc.Stdout(),
		Stderr: ioc.Stderr(),
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			s.Env.LastStatus = exitErr.ExitCode()
			return
		}
		fmt.Fprintf(s.stderr, "sh: %s: %v\n", args[0], err)
		s.Env.LastStatus = 126
		return
	}
	s.Env.LastStatus = 0
}

// splitAssignments peels leading NAME=VALUE words off a command line; they
// become environment overrides for the invocation that follows.
func splitAssignments(words []string) (map[string]string, []string) {
	overrides := make(map[string]string)
	for i, word := range words {
		eq := strings.IndexByte(word, '=')
		if eq <= 0 || !validName(word[:eq]) {
			return overrides, words[i:]
		}
		overrides[word[:eq]] = word[eq+1:]
	}
	return overrides, nil
}

// validName reports whether s is a portable shell variable name.
func validName(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z'):
		case i > 0 && '0' <= r && r <= '9':
		default:
			return false
		}
	}
	return len(s) > 0
}
