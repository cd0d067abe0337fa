/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/radiotray/internal/colors"
	"github.com/cristianoliveira/radiotray/internal/config"
	"github.com/cristianoliveira/radiotray/internal/logging"
)

// Version is the version of radiotray.
const Version = "0.1.0"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "radiotray",
	Short: "An internet radio player for the terminal.",
	Long: `An internet radio player for the terminal.

radiotray fetches stations from a radio-browser directory, keeps a local
favorites list, and streams over the system speaker. Run "radiotray tui"
for the interactive player or use the subcommands directly.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			config.Set("debug", "true")
		}
		if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
			config.Set("quiet", "true")
		}
		colors.SetDebug(config.GetBool("debug", false))
		colors.SetQuiet(config.GetBool("quiet", false))
		if err := logging.InitGlobal(); err != nil {
			colors.Warning(fmt.Sprintf("logging disabled: %v", err))
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.ShutdownGlobal()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("radiotray v%s\n", Version))

	// Hide the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress informational output")
}

// exitError prints the error and terminates. Commands call it instead of
// returning so cobra does not repeat the message.
func exitError(err error) {
	colors.Error(err.Error())
	os.Exit(1)
}
