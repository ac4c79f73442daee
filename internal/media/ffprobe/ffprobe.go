package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index     int    `json:"index"`
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
	Duration  string `json:"duration"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Tags      Tags   `json:"tags"`
	SideData  []Side `json:"side_data_list"`
	FrameRate string `json:"avg_frame_rate"`
	BitRate   string `json:"bit_rate"`
}

// Tags captures the stream tags cliplab reads.
type Tags struct {
	Rotate string `json:"rotate"`
}

// Side captures rotation reported through display matrix side data.
type Side struct {
	Type     string  `json:"side_data_type"`
	Rotation float64 `json:"rotation"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	FormatName string `json:"format_name"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(output)))
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// VideoStream returns the first video stream, or false when none exists.
func (r Result) VideoStream() (Stream, bool) {
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") {
			return stream, true
		}
	}
	return Stream{}, false
}

// Duration returns the container duration, preferring the format entry and
// falling back to the first video stream.
func (r Result) Duration() time.Duration {
	if secs := parseFloat(r.Format.Duration); secs > 0 {
		return durationFromSeconds(secs)
	}
	if stream, ok := r.VideoStream(); ok {
		if secs := parseFloat(stream.Duration); secs > 0 {
			return durationFromSeconds(secs)
		}
	}
	return 0
}

// durationFromSeconds rounds to the nearest microsecond so decimal second
// strings such as "10.005000" survive the float conversion intact.
func durationFromSeconds(secs float64) time.Duration {
	return time.Duration(math.Round(secs*1e6)) * time.Microsecond
}

// Dimensions returns the pixel dimensions of the first video stream.
func (r Result) Dimensions() (width, height int) {
	stream, ok := r.VideoStream()
	if !ok {
		return 0, 0
	}
	return stream.Width, stream.Height
}

// RotationDegrees returns the container rotation in degrees, normalized to
// {0, 90, 180, 270}. Both the legacy rotate tag and display matrix side
// data are consulted.
func (r Result) RotationDegrees() int {
	stream, ok := r.VideoStream()
	if !ok {
		return 0
	}
	var raw float64
	if stream.Tags.Rotate != "" {
		raw = parseFloat(stream.Tags.Rotate)
	} else {
		for _, side := range stream.SideData {
			if strings.EqualFold(side.Type, "Display Matrix") {
				raw = -side.Rotation
				break
			}
		}
	}
	degrees := int(math.Round(raw)) % 360
	if degrees < 0 {
		degrees += 360
	}
	return degrees
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return 0
}
