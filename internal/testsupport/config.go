package testsupport

import (
	"path/filepath"
	"testing"

	"cliplab/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.SessionDir = filepath.Join(base, "sessions")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithDurationBounds sets the trim duration bounds on the test config.
func WithDurationBounds(minMS, maxMS int64) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Edit.MinDurationMS = minMS
		cfg.Edit.MaxDurationMS = maxMS
	}
}

// WithCoverQuality sets the cover thumbnail quality on the test config.
func WithCoverQuality(quality int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Edit.CoverThumbnailQuality = quality
	}
}
