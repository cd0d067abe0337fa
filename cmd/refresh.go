/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/radiotray/internal/colors"
)

// refreshCmd represents the refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the local station cache",
	Long: `Fetch a fresh station collection from the directory service,
bypassing the cache. The cache is only overwritten when the fetch
returns stations.`,
	Run: func(cmd *cobra.Command, args []string) {
		a := newApp()
		defer closeApp(a)

		stations := a.Refresh(cmd.Context())
		if len(stations) > 0 {
			colors.Success(fmt.Sprintf("cached %d stations", len(stations)))
		}
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
