package cmd

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/isgasho/mesabox/core/config"
	"github.com/isgasho/mesabox/core/shell"
)

var commandLine string

// shCmd runs the command interpreter over the inherited descriptors.
var shCmd = &cobra.Command{
	Use:   "sh",
	Short: "Standard command interpreter for the suite",
	RunE: func(cmd *cobra.Command, args []string) error {
		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		env := newSessionEnv(configuration)

		if commandLine != "" {
			s := shell.NewCommandShell(env)
			s.RunCommand(commandLine)
			os.Exit(env.LastStatus)
		}

		isTerminal := term.IsTerminal(int(os.Stdin.Fd()))
		s, err := shell.NewShell(env, isTerminal)
		if err != nil {
			return err
		}
		os.Exit(s.Run())
		return nil
	},
}

// newSessionEnv builds the session Environment: descriptors 0-2 bound to the
// inherited process descriptors, variables seeded from the configuration.
func newSessionEnv(configuration *config.Configuration) *shell.Environment {
	env := shell.NewEnvironment(shell.NewRawFd(0), shell.NewRawFd(1), shell.NewRawFd(2))

	for _, v := range configuration.Env {
		_ = env.SetVar(v.Name, v.Value)
		if v.Export {
			env.ExportVar(v.Name)
		}
		if v.ReadOnly {
			env.SetReadOnly(v.Name)
		}
	}

	_ = env.SetVar(shell.EnvPath, configuration.DefaultPath)
	env.ExportVar(shell.EnvPath)
	if configuration.Prompt != "" {
		_ = env.SetVar(shell.EnvPrompt, configuration.Prompt)
	}
	if configuration.IFS != "" {
		_ = env.SetVar("IFS", configuration.IFS)
	}

	if u, err := user.Current(); err == nil {
		_ = env.SetVar(shell.EnvUser, u.Username)
		_ = env.SetVar(shell.EnvHome, u.HomeDir)
		env.ExportVar(shell.EnvUser)
		env.ExportVar(shell.EnvHome)
	}
	if host, err := os.Hostname(); err == nil {
		_ = env.SetVar(shell.EnvHostname, host)
	}
	if wd, err := os.Getwd(); err == nil {
		_ = env.SetVar(shell.EnvPWD, wd)
		env.ExportVar(shell.EnvPWD)
	}
	_ = env.SetVar("PPID", fmt.Sprintf("%d", os.Getppid()))

	return env
}

func init() {
	shCmd.Flags().StringVarP(&commandLine, "command", "c", "", "run a single command and exit")
	rootCmd.AddCommand(shCmd)
}
