/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/radiotray/internal/audio"
	"github.com/cristianoliveira/radiotray/internal/colors"
	"github.com/cristianoliveira/radiotray/internal/player"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play <uuid|name>",
	Short: "Play a station until interrupted",
	Long: `Resolve a station by UUID or name and stream it over the system
speaker. Metadata lines are printed as they change. Stop with Ctrl-C.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := strings.Join(args, " ")

		a := newApp()
		defer closeApp(a)
		coord := a.AttachEngine(audio.New())

		a.LoadStations(cmd.Context())
		if err := a.Play(query); err != nil {
			exitError(err)
		}

		current, _ := coord.Current()
		colors.Success(fmt.Sprintf("Playing %s", current.Name))

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(interrupt)

		for {
			select {
			case ev, ok := <-coord.Events():
				if !ok {
					return
				}
				switch ev := ev.(type) {
				case player.MetadataChanged:
					colors.Info(fmt.Sprintf("%s: %s", ev.Key, ev.Value))
				case player.PlaybackError:
					colors.Error(ev.Message)
				case player.StateChanged:
					if ev.State == player.StateStopped {
						return
					}
				}
			case <-interrupt:
				a.Stop()
				return
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}
