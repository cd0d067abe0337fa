/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cristianoliveira/radiotray/internal/catalog"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stations grouped by country",
	Long: `List the station collection grouped by country, the home country
first. Uses the local cache when it is still fresh; otherwise the
directory service is queried.`,
	Run: func(cmd *cobra.Command, args []string) {
		favOnly, _ := cmd.Flags().GetBool("favorites")
		filter, _ := cmd.Flags().GetString("filter")

		a := newApp()
		defer closeApp(a)

		a.LoadStations(cmd.Context())
		if favOnly {
			a.Catalog.SetViewMode(catalog.ViewFavorites)
		}
		// The view switch resets the filter, so apply it afterwards.
		a.Catalog.SetFilter(filter)

		printGroups(cmd, a.Catalog.Groups(), a.Favorites.IsFavorite)
	},
}

func init() {
	listCmd.Flags().BoolP("favorites", "f", false, "list only favorite stations")
	listCmd.Flags().String("filter", "", "filter by name, country, or tags")
	rootCmd.AddCommand(listCmd)
}
