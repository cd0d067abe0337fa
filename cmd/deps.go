/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cristianoliveira/radiotray/internal/app"
	"github.com/cristianoliveira/radiotray/internal/colors"
	"github.com/cristianoliveira/radiotray/internal/station"
)

var (
	groupHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	stationMetaStyle = lipgloss.NewStyle().Faint(true)
)

// newApp builds the application context or exits.
func newApp() *app.App {
	a, err := app.New()
	if err != nil {
		exitError(err)
	}
	return a
}

func closeApp(a *app.App) {
	if err := a.Close(); err != nil {
		colors.Warning(fmt.Sprintf("close: %v", err))
	}
}

// printGroups writes a grouped station listing to stdout.
func printGroups(cmd *cobra.Command, groups []station.Group, isFavorite func(string) bool) {
	if len(groups) == 0 {
		colors.Info("No stations to show")
		return
	}
	for _, g := range groups {
		cmd.Printf("%s\n", groupHeaderStyle.Render(fmt.Sprintf("%s (%d)", g.Country, len(g.Stations))))
		for _, s := range g.Stations {
			cmd.Printf("%s\n", formatStation(s, isFavorite(s.StationUUID)))
		}
	}
}

// formatStation renders one listing line: marker, name, stream details,
// and the UUID used to address the station in other commands.
func formatStation(s station.Station, favorite bool) string {
	marker := " "
	if favorite {
		marker = "*"
	}
	var details []string
	if s.Codec != "" {
		details = append(details, strings.ToLower(s.Codec))
	}
	if s.Bitrate > 0 {
		details = append(details, fmt.Sprintf("%dk", s.Bitrate))
	}
	details = append(details, s.StationUUID)
	return fmt.Sprintf("  %s %-40s %s", marker, s.Name, stationMetaStyle.Render(strings.Join(details, " ")))
}
