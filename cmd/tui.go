/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cristianoliveira/radiotray/internal/audio"
	"github.com/cristianoliveira/radiotray/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive player",
	Long: `Open the interactive player: browse stations grouped by country,
filter, toggle favorites, and stream the selection.`,
	Run: func(cmd *cobra.Command, args []string) {
		a := newApp()
		defer closeApp(a)
		a.AttachEngine(audio.New())

		if err := tui.Run(a); err != nil {
			exitError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
