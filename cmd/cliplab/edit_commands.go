package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cliplab/internal/editor"
	"cliplab/internal/geometry"
)

func newTrimCommand(ctx *commandContext) *cobra.Command {
	var start, end float64

	cmd := &cobra.Command{
		Use:   "trim <video>",
		Short: "Set the trim range as fractions of the source duration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEditSession(cmd.Context(), args[0], func(s *editSession) error {
				if err := s.ctrl.SetTrimFractions(start, end); err != nil {
					var bounds *geometry.TrimBoundsError
					if errors.As(err, &bounds) {
						return fmt.Errorf("trim rejected: %w", err)
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Trim set to %s – %s (%s)\n",
					formatDuration(s.ctrl.TrimStart()),
					formatDuration(s.ctrl.TrimEnd()),
					formatDuration(s.ctrl.TrimEnd()-s.ctrl.TrimStart()))
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&start, "start", 0, "Trim start as a fraction in [0,1]")
	cmd.Flags().Float64Var(&end, "end", 1, "Trim end as a fraction in [0,1]")
	return cmd
}

func newCropCommand(ctx *commandContext) *cobra.Command {
	var minFlag, maxFlag string

	cmd := &cobra.Command{
		Use:   "crop <video>",
		Short: "Set the crop region as normalized x,y corner points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minPoint, err := parsePoint(minFlag)
			if err != nil {
				return err
			}
			maxPoint, err := parsePoint(maxFlag)
			if err != nil {
				return err
			}
			return ctx.withEditSession(cmd.Context(), args[0], func(s *editSession) error {
				if err := s.ctrl.SetCropFractions(minPoint, maxPoint); err != nil {
					return err
				}
				size := s.ctrl.CroppedSize()
				fmt.Fprintf(cmd.OutOrStdout(), "Crop set to %s – %s (%dx%d)\n",
					formatPoint(minPoint), formatPoint(maxPoint), size.Width, size.Height)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&minFlag, "min", "0,0", "Top-left corner as x,y fractions")
	cmd.Flags().StringVar(&maxFlag, "max", "1,1", "Bottom-right corner as x,y fractions")
	return cmd
}

func newRotateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rotate <video> [left|right]",
		Short: "Rotate the video a quarter turn (default left)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := editor.RotateLeft
			if len(args) == 2 {
				switch args[1] {
				case "left":
					direction = editor.RotateLeft
				case "right":
					direction = editor.RotateRight
				default:
					return fmt.Errorf("unknown direction %q (expected left or right)", args[1])
				}
			}
			return ctx.withEditSession(cmd.Context(), args[0], func(s *editSession) error {
				s.ctrl.Rotate(direction)
				fmt.Fprintf(cmd.OutOrStdout(), "Rotation is now %d°\n", s.ctrl.Rotation())
				return nil
			})
		},
	}
}

func newRatioCommand(ctx *commandContext) *cobra.Command {
	var value float64
	var fromCrop bool

	cmd := &cobra.Command{
		Use:   "ratio <video>",
		Short: "Set the preferred aspect ratio and recenter the crop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromCrop && value != 0 {
				return errors.New("--value and --from-crop are mutually exclusive")
			}
			if !fromCrop && value <= 0 {
				return errors.New("--value must be positive")
			}
			return ctx.withEditSession(cmd.Context(), args[0], func(s *editSession) error {
				if fromCrop {
					s.ctrl.SetAspectRatioFromCurrentCrop()
				} else {
					s.ctrl.SetPreferredAspectRatio(value)
				}
				minPoint, maxPoint := s.ctrl.CropFractions()
				fmt.Fprintf(cmd.OutOrStdout(), "Aspect ratio %.4f, crop %s – %s\n",
					s.ctrl.PreferredAspectRatio(), formatPoint(minPoint), formatPoint(maxPoint))
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&value, "value", 0, "Aspect ratio as width/height, e.g. 1.7778")
	cmd.Flags().BoolVar(&fromCrop, "from-crop", false, "Derive the ratio from the current crop region")
	return cmd
}

func cropSummary(minPoint, maxPoint geometry.Point) string {
	if minPoint == (geometry.Point{}) && maxPoint == (geometry.Point{X: 1, Y: 1}) {
		return "full frame"
	}
	return fmt.Sprintf("%s – %s", formatPoint(minPoint), formatPoint(maxPoint))
}
