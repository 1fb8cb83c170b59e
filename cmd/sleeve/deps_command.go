package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sleeve/internal/deps"
)

func newDepsCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of the external encoding dependencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			fmt.Fprintln(out, renderSectionHeader("External dependencies", colorize))
			statuses := deps.Check(cmd.Context(), opts.ffmpegBinary)
			failed := false
			for _, status := range statuses {
				kind := statusOK
				message := status.Command
				if !status.Available {
					kind = statusError
					message = status.Detail
					failed = true
				}
				fmt.Fprintln(out, renderStatusLine(status.Name, kind, message, colorize))
			}

			if failed {
				return fmt.Errorf("missing external dependencies")
			}
			return nil
		},
	}
}
