/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the radiotray version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("radiotray v%s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
