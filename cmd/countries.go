/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/radiotray/internal/colors"
)

// countriesCmd represents the countries command
var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List the countries known to the station directory",
	Run: func(cmd *cobra.Command, args []string) {
		a := newApp()
		defer closeApp(a)

		countries, err := a.Source.FetchCountries(cmd.Context())
		if err != nil {
			colors.Warning(fmt.Sprintf("could not fetch countries: %v", err))
		}
		if len(countries) == 0 {
			colors.Info("No countries to show")
			return
		}
		for _, c := range countries {
			cmd.Printf("%s\n", c)
		}
	},
}

func init() {
	rootCmd.AddCommand(countriesCmd)
}
