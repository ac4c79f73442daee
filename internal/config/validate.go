package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateEdit(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.SessionDir) == "" {
		return errors.New("paths.session_dir must be set")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateEdit() error {
	if c.Edit.MinDurationMS < 0 {
		return errors.New("edit.min_duration_ms must not be negative")
	}
	if c.Edit.MaxDurationMS < 0 {
		return errors.New("edit.max_duration_ms must not be negative")
	}
	if c.Edit.MaxDurationMS > 0 && c.Edit.MaxDurationMS <= c.Edit.MinDurationMS {
		return fmt.Errorf("edit.max_duration_ms (%d) must exceed edit.min_duration_ms (%d)", c.Edit.MaxDurationMS, c.Edit.MinDurationMS)
	}
	for name, quality := range map[string]int{
		"edit.cover_thumbnail_quality": c.Edit.CoverThumbnailQuality,
		"edit.trim_thumbnail_quality":  c.Edit.TrimThumbnailQuality,
	} {
		if quality < 0 || quality > 100 {
			return fmt.Errorf("%s must be between 0 and 100", name)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
