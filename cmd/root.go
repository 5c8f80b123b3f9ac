package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/isgasho/mesabox/core/config"
)

var cfgPath string

func loadConfig() (*config.Configuration, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.Load(afero.NewOsFs(), cfgPath)
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mesabox",
	Short: "Multi-call POSIX utility suite",
	Long:  `A multi-call binary bundling a POSIX-style shell and its built-in commands.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen once
// to the rootCmd.
//
// When the binary is invoked through a link named after a subcommand
// (busybox-style multi-call), that subcommand runs directly.
func Execute() {
	if name := filepath.Base(os.Args[0]); name != rootCmd.Name() {
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == name {
				rootCmd.SetArgs(append([]string{name}, os.Args[1:]...))
				break
			}
		}
	}

	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config path (empty for built-in defaults)")
}
