package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"sleeve/internal/logging"
)

// globalOptions carries the persistent flags every subcommand reads.
type globalOptions struct {
	logLevel     string
	logFormat    string
	ffmpegBinary string
}

func (o *globalOptions) newLogger() (*slog.Logger, error) {
	return logging.New(logging.Options{Level: o.logLevel, Format: o.logFormat})
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "sleeve",
		Short:         "Render a static-cover album video from a directory of WAV files",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "console", "Log format (console, json)")
	rootCmd.PersistentFlags().StringVar(&opts.ffmpegBinary, "ffmpeg", "", "Path to the ffmpeg binary (default: resolve from PATH)")

	rootCmd.AddCommand(newRenderCommand(opts))
	rootCmd.AddCommand(newTracksCommand(opts))
	rootCmd.AddCommand(newDepsCommand(opts))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
