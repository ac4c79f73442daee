package thumbs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// FFmpegGenerator extracts frames with the ffmpeg binary.
type FFmpegGenerator struct {
	binary string
}

// NewFFmpegGenerator creates a generator using the given ffmpeg binary; an
// empty value falls back to "ffmpeg" on PATH.
func NewFFmpegGenerator(binary string) *FFmpegGenerator {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	return &FFmpegGenerator{binary: binary}
}

// Generate implements Generator. The frame is written to a temporary file
// and read back; ffmpeg cannot stream JPEG output reliably across builds.
func (g *FFmpegGenerator) Generate(ctx context.Context, sourcePath string, timestampMs int64, qualityPercent int) ([]byte, error) {
	sourcePath = strings.TrimSpace(sourcePath)
	if sourcePath == "" {
		return nil, errors.New("thumbs generate: empty source path")
	}
	if timestampMs < 0 {
		return nil, fmt.Errorf("thumbs generate: negative timestamp %d", timestampMs)
	}
	if qualityPercent < 0 || qualityPercent > 100 {
		return nil, fmt.Errorf("thumbs generate: quality %d outside [0,100]", qualityPercent)
	}

	tmpDir, err := os.MkdirTemp("", "cliplab-thumb-")
	if err != nil {
		return nil, fmt.Errorf("thumbs generate: %w", err)
	}
	defer os.RemoveAll(tmpDir)
	outputPath := filepath.Join(tmpDir, "frame.jpg")

	args := BuildArgs(sourcePath, outputPath, timestampMs, qualityPercent)
	cmd := exec.CommandContext(ctx, g.binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("thumbs generate: %w: %s", err, strings.TrimSpace(string(output)))
	}

	image, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, fmt.Errorf("thumbs generate: read frame: %w", err)
	}
	if len(image) == 0 {
		return nil, errors.New("thumbs generate: ffmpeg produced an empty frame")
	}
	return image, nil
}

// BuildArgs assembles the ffmpeg invocation for a single-frame JPEG grab.
// Seeking happens before the input for fast keyframe-based positioning.
func BuildArgs(sourcePath, outputPath string, timestampMs int64, qualityPercent int) []string {
	seek := time.Duration(timestampMs) * time.Millisecond
	return []string{
		"-v", "error",
		"-hide_banner",
		"-ss", formatSeek(seek),
		"-i", sourcePath,
		"-frames:v", "1",
		"-q:v", fmt.Sprintf("%d", qualityScale(qualityPercent)),
		"-y",
		outputPath,
	}
}

// qualityScale maps a 0-100 percentage to ffmpeg's 2 (best) to 31 (worst)
// JPEG quantizer.
func qualityScale(percent int) int {
	scaled := 31 - (percent*29)/100
	if scaled < 2 {
		scaled = 2
	}
	if scaled > 31 {
		scaled = 31
	}
	return scaled
}

func formatSeek(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
