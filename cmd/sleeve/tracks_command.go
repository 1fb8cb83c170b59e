package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"sleeve/internal/config"
	"sleeve/internal/media"
)

func newTracksCommand(opts *globalOptions) *cobra.Command {
	settings := config.Default()

	cmd := &cobra.Command{
		Use:   "tracks <directory>",
		Short: "List the audio files a render would process, in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings.SourceDir = args[0]
			if err := settings.Normalize(); err != nil {
				return err
			}

			set, err := media.Discover(settings)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(set.Tracks))
			for i, track := range set.Tracks {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					track.Name,
					humanize.Bytes(uint64(track.Size)),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"#", "File", "Size"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight},
			))
			fmt.Fprintf(out, "%d tracks, cover %s\n", len(set.Tracks), set.Cover)
			return nil
		},
	}

	cmd.Flags().StringVarP(&settings.Cover, "cover", "c", settings.Cover, "Cover image filename")
	cmd.Flags().StringVar(&settings.Pattern, "pattern", settings.Pattern, "Glob pattern for audio files")

	return cmd
}
