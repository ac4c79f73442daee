package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cliplab/internal/geometry"
)

// parsePoint parses "x,y" into a normalized point.
func parsePoint(value string) (geometry.Point, error) {
	parts := strings.Split(strings.TrimSpace(value), ",")
	if len(parts) != 2 {
		return geometry.Point{}, fmt.Errorf("point %q must be x,y", value)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("point %q: %w", value, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("point %q: %w", value, err)
	}
	if x < 0 || x > 1 || y < 0 || y > 1 {
		return geometry.Point{}, fmt.Errorf("point %q outside [0,1]", value)
	}
	return geometry.Point{X: x, Y: y}, nil
}

func formatPoint(p geometry.Point) string {
	return fmt.Sprintf("%.3f,%.3f", p.X, p.Y)
}

func formatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}

func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
