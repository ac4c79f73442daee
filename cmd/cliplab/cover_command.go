package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newCoverCommand(ctx *commandContext) *cobra.Command {
	var timestampMs int64
	var output string

	cmd := &cobra.Command{
		Use:   "cover <video>",
		Short: "Select the cover frame, or regenerate it at the trim start",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEditSession(cmd.Context(), args[0], func(s *editSession) error {
				if cmd.Flags().Changed("timestamp-ms") {
					if timestampMs < 0 || timestampMs > s.ctrl.TotalDuration().Milliseconds() {
						return fmt.Errorf("timestamp %dms outside the source duration", timestampMs)
					}
					if err := s.sel.GenerateAt(cmd.Context(), timestampMs); err != nil {
						return err
					}
				} else if err := s.sel.Generate(cmd.Context()); err != nil {
					return err
				}

				c, ok := s.sel.Cover()
				if !ok {
					return fmt.Errorf("no cover frame available")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cover frame at %dms (%d bytes)\n",
					c.TimestampMS, len(c.Image))
				if output != "" {
					if err := os.WriteFile(output, c.Image, 0o644); err != nil {
						return fmt.Errorf("write cover image: %w", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
				}
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&timestampMs, "timestamp-ms", 0, "Select the frame at this timestamp instead of the trim start")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the cover image to this path")
	return cmd
}
