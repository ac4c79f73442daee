package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cliplab/internal/session"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <video>",
		Short: "Show the saved edit state for a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *session.Store) error {
				record, err := store.Load(cmd.Context(), args[0])
				if errors.Is(err, session.ErrNotFound) {
					fmt.Fprintf(cmd.OutOrStdout(), "No saved session for %s\n", args[0])
					return nil
				}
				if err != nil {
					return err
				}

				cover := "none"
				if record.HasCover {
					cover = fmt.Sprintf("%dms", record.CoverTimestampMS)
				}
				ratio := "unset"
				if record.PreferredRatio > 0 {
					ratio = fmt.Sprintf("%.4f", record.PreferredRatio)
				}
				rows := [][]string{
					{"Title", record.DisplayTitle},
					{"Trim", fmt.Sprintf("%.4f – %.4f", record.TrimMin, record.TrimMax)},
					{"Crop", cropSummary(record.CropMin, record.CropMax)},
					{"Rotation", fmt.Sprintf("%d°", normalizedDegrees(record.RotationSteps))},
					{"Aspect ratio", ratio},
					{"Cover", cover},
					{"Updated", record.UpdatedAt.Local().Format("2006-01-02 15:04:05")},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
				return nil
			})
		},
	}
}

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved edit sessions, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *session.Store) error {
				records, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(records) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No saved sessions")
					return nil
				}

				rows := make([][]string, 0, len(records))
				for _, record := range records {
					rows = append(rows, []string{
						record.DisplayTitle,
						fmt.Sprintf("%.2f – %.2f", record.TrimMin, record.TrimMax),
						fmt.Sprintf("%d°", normalizedDegrees(record.RotationSteps)),
						formatBool(record.HasCover),
						record.UpdatedAt.Local().Format("2006-01-02 15:04"),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Title", "Trim", "Rotation", "Cover", "Updated"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
}

func newResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <video>",
		Short: "Discard the saved edit state for a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *session.Store) error {
				if err := store.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reset %s\n", args[0])
				return nil
			})
		},
	}
}

func normalizedDegrees(steps int) int {
	return (((steps % 4) + 4) % 4) * 90
}
