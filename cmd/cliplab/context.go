package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"cliplab/internal/config"
	"cliplab/internal/cover"
	"cliplab/internal/editor"
	"cliplab/internal/logging"
	"cliplab/internal/media"
	"cliplab/internal/session"
	"cliplab/internal/thumbs"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) withStore(fn func(*session.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := session.Open(cfg)
	if err != nil {
		if errors.Is(err, session.ErrLocked) {
			return fmt.Errorf("%w; close the other cliplab process and retry", err)
		}
		return err
	}
	defer store.Close()
	return fn(store)
}

// editSession wires the full stack for one asset: probed media source,
// controller with configured bounds, cover selection, and any persisted
// record replayed on top.
type editSession struct {
	cfg    *config.Config
	store  *session.Store
	source *media.FileSource
	ctrl   *editor.Controller
	sel    *cover.Selection
}

// withEditSession runs fn inside a fully wired session and persists the
// resulting state afterwards.
func (c *commandContext) withEditSession(ctx context.Context, assetPath string, fn func(*editSession) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger := c.ensureLogger()

	return c.withStore(func(store *session.Store) error {
		source := media.NewFileSource(assetPath)
		if err := source.Open(ctx, cfg.Tools.FFprobe); err != nil {
			return err
		}

		ctrl, err := editor.New(source, editor.Options{
			MinDuration: cfg.MinDuration(),
			MaxDuration: cfg.MaxDuration(),
			Logger:      logger,
		})
		if err != nil {
			return err
		}
		generator := thumbs.NewFFmpegGenerator(cfg.Tools.FFmpeg)
		sel := cover.New(ctrl, generator, assetPath, cover.Options{
			Quality: cfg.Edit.CoverThumbnailQuality,
			Logger:  logger,
		})
		defer sel.Dispose()

		if err := ctrl.Initialize(0); err != nil {
			return err
		}

		record, err := store.Load(ctx, assetPath)
		switch {
		case errors.Is(err, session.ErrNotFound):
			// First edit of this asset.
		case err != nil:
			return err
		default:
			if err := record.Apply(ctrl, sel); err != nil {
				return fmt.Errorf("restore session: %w", err)
			}
		}

		if err := fn(&editSession{cfg: cfg, store: store, source: source, ctrl: ctrl, sel: sel}); err != nil {
			return err
		}

		snapshot := session.Snapshot(assetPath, ctrl, sel)
		if record != nil {
			snapshot.CreatedAt = record.CreatedAt
		}
		return store.Save(ctx, snapshot)
	})
}
