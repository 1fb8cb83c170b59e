package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sleeve/internal/config"
	"sleeve/internal/ffmpeg"
	"sleeve/internal/render"
)

func newRenderCommand(opts *globalOptions) *cobra.Command {
	settings := config.Default()

	cmd := &cobra.Command{
		Use:   "render <directory>",
		Short: "Render the album video for a directory of WAV files",
		Long: `Render a single static-cover video from the WAV files in a directory.

Each WAV is normalized to 24-bit/48k FLAC, the tracks are joined in
filename order without re-encoding, and the result is muxed against the
cover image using the selected encoder profile. Cover and output paths
resolve relative to the directory unless absolute.

Examples:
  sleeve render ~/rips/album
  sleeve render ~/rips/album --cover front.jpg --output album.mkv
  sleeve render ~/rips/album --pattern '*_mixdown.wav' --profile x264`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings.SourceDir = args[0]
			settings.FFmpegBinary = opts.ffmpegBinary
			settings.LogLevel = opts.logLevel
			settings.LogFormat = opts.logFormat
			if err := settings.Normalize(); err != nil {
				return err
			}

			logger, err := opts.newLogger()
			if err != nil {
				return err
			}

			binary, err := ffmpeg.Resolve(settings.FFmpegBinary)
			if err != nil {
				return err
			}

			pipeline, err := render.New(settings, ffmpeg.NewCommand(binary), logger)
			if err != nil {
				return err
			}

			output, err := pipeline.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&settings.Cover, "cover", "c", settings.Cover, "Cover image filename")
	cmd.Flags().StringVar(&settings.Pattern, "pattern", settings.Pattern, "Glob pattern for audio files")
	cmd.Flags().StringVarP(&settings.Output, "output", "o", settings.Output, "Output video filename")
	cmd.Flags().StringVar(&settings.Profile, "profile", settings.Profile, "Encoder profile")

	return cmd
}
