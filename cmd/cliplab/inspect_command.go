package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cliplab/internal/media/ffprobe"
	"cliplab/internal/textutil"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <video>",
		Short: "Probe a video and print its editing-relevant metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			result, err := ffprobe.Inspect(cmd.Context(), cfg.Tools.FFprobe, args[0])
			if err != nil {
				return err
			}

			width, height := result.Dimensions()
			rows := [][]string{
				{"Title", textutil.DisplayTitle(args[0])},
				{"Duration", formatDuration(result.Duration())},
				{"Dimensions", fmt.Sprintf("%dx%d", width, height)},
				{"Rotation", fmt.Sprintf("%d°", result.RotationDegrees())},
				{"Container", result.Format.FormatName},
			}
			if stream, ok := result.VideoStream(); ok {
				rows = append(rows, []string{"Video codec", stream.CodecName})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}
}
