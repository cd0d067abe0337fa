/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/radiotray/internal/app"
	"github.com/cristianoliveira/radiotray/internal/colors"
	"github.com/cristianoliveira/radiotray/internal/station"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the station directory by name",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := strings.Join(args, " ")

		a := newApp()
		defer closeApp(a)

		results, err := a.Source.Search(cmd.Context(), query, app.SearchLimit())
		if err != nil {
			colors.Warning(fmt.Sprintf("search failed: %v", err))
		}
		if len(results) == 0 {
			colors.Info(fmt.Sprintf("No stations match %q", query))
			return
		}

		groups := station.GroupByCountry(results, a.Source.HomeCountry())
		printGroups(cmd, groups, a.Favorites.IsFavorite)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
