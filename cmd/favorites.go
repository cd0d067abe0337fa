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

// favoritesCmd represents the favorites command
var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage the favorite stations",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the favorite stations",
	Run: func(cmd *cobra.Command, args []string) {
		a := newApp()
		defer closeApp(a)

		favs := a.Favorites.All()
		if len(favs) == 0 {
			colors.Info("No favorites yet")
			return
		}
		for _, s := range favs {
			cmd.Printf("%s\n", formatStation(s, true))
		}
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <uuid|name>",
	Short: "Add a station to the favorites",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := newApp()
		defer closeApp(a)

		st := resolveStation(cmd, a, strings.Join(args, " "))
		if a.Favorites.Add(st) {
			colors.Success(fmt.Sprintf("added %s", st.Name))
			return
		}
		colors.Info(fmt.Sprintf("%s is already a favorite", st.Name))
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <uuid|name>",
	Short: "Remove a station from the favorites",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := newApp()
		defer closeApp(a)

		st := resolveStation(cmd, a, strings.Join(args, " "))
		if a.Favorites.Remove(st.StationUUID) {
			colors.Success(fmt.Sprintf("removed %s", st.Name))
			return
		}
		colors.Info(fmt.Sprintf("%s is not a favorite", st.Name))
	},
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle <uuid|name>",
	Short: "Toggle the favorite status of a station",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := newApp()
		defer closeApp(a)

		st := resolveStation(cmd, a, strings.Join(args, " "))
		if a.Favorites.Toggle(st) {
			colors.Success(fmt.Sprintf("added %s", st.Name))
			return
		}
		colors.Success(fmt.Sprintf("removed %s", st.Name))
	},
}

var favoritesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all favorites",
	Run: func(cmd *cobra.Command, args []string) {
		a := newApp()
		defer closeApp(a)

		count := a.Favorites.Count()
		a.Favorites.Clear()
		colors.Success(fmt.Sprintf("cleared %d favorites", count))
	},
}

// resolveStation finds a station in the favorites first, then in the full
// catalog, loading the collection on demand. Exits when nothing matches.
func resolveStation(cmd *cobra.Command, a *app.App, query string) station.Station {
	for _, s := range a.Favorites.All() {
		if s.StationUUID == query || strings.EqualFold(s.Name, query) {
			return s
		}
	}

	a.LoadStations(cmd.Context())
	st, ok := a.Catalog.Resolve(query)
	if !ok {
		exitError(fmt.Errorf("no station matches %q", query))
	}
	return st
}

func init() {
	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
	favoritesCmd.AddCommand(favoritesToggleCmd)
	favoritesCmd.AddCommand(favoritesClearCmd)
	rootCmd.AddCommand(favoritesCmd)
}
