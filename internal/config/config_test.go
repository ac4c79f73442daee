package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cliplab/internal/config"
)

func TestDefaultValidates(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Edit.CoverThumbnailQuality != 10 || cfg.Edit.TrimThumbnailQuality != 10 {
		t.Errorf("default thumbnail qualities = %d/%d, want 10/10", cfg.Edit.CoverThumbnailQuality, cfg.Edit.TrimThumbnailQuality)
	}
	if cfg.MaxDuration() != 0 {
		t.Errorf("default MaxDuration = %s, want 0 (full source)", cfg.MaxDuration())
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	payload := `
[paths]
session_dir = "` + dir + `/sessions"
log_dir = "` + dir + `/logs"

[edit]
min_duration_ms = 1000
max_duration_ms = 60000
cover_thumbnail_quality = 40
`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatalf("Load did not report the file: exists=%v path=%q", exists, resolved)
	}
	if cfg.MinDuration() != time.Second || cfg.MaxDuration() != time.Minute {
		t.Errorf("durations = %s/%s, want 1s/1m", cfg.MinDuration(), cfg.MaxDuration())
	}
	if cfg.Edit.CoverThumbnailQuality != 40 {
		t.Errorf("cover quality = %d, want 40", cfg.Edit.CoverThumbnailQuality)
	}
	// Unset fields keep defaults.
	if cfg.Edit.TrimThumbnailQuality != 10 {
		t.Errorf("trim quality = %d, want default 10", cfg.Edit.TrimThumbnailQuality)
	}
	if cfg.Tools.FFprobe != "ffprobe" {
		t.Errorf("ffprobe binary = %q, want default", cfg.Tools.FFprobe)
	}
}

func TestValidateRejectsInvertedDurations(t *testing.T) {
	cfg := config.Default()
	cfg.Edit.MinDurationMS = 5000
	cfg.Edit.MaxDurationMS = 2000
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "max_duration_ms") {
		t.Fatalf("inverted durations accepted: %v", err)
	}
}

func TestValidateRejectsQualityOutOfRange(t *testing.T) {
	cfg := config.Default()
	cfg.Edit.CoverThumbnailQuality = 120
	if err := cfg.Validate(); err == nil {
		t.Fatal("quality 120 accepted")
	}
}

func TestValidateRejectsUnknownLogFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("log format xml accepted")
	}
}
