package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/isgasho/mesabox/core/shell"
)

var colorBoldBlue = color.New(color.FgBlue, color.Bold)

// builtinsCmd lists the commands the shell implements internally.
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the shell's built-in commands.",
	RunE: func(cmd *cobra.Command, args []string) error {
		useColor := term.IsTerminal(int(os.Stdout.Fd()))

		for _, name := range shell.BuiltinNames() {
			if useColor {
				fmt.Fprintln(cmd.OutOrStdout(), colorBoldBlue.Sprint(name))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
