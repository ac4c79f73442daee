package session

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
    asset_path         TEXT PRIMARY KEY,
    display_title      TEXT NOT NULL,
    rotation_steps     INTEGER NOT NULL DEFAULT 0,
    trim_min           REAL NOT NULL DEFAULT 0,
    trim_max           REAL NOT NULL DEFAULT 1,
    crop_min_x         REAL NOT NULL DEFAULT 0,
    crop_min_y         REAL NOT NULL DEFAULT 0,
    crop_max_x         REAL NOT NULL DEFAULT 1,
    crop_max_y         REAL NOT NULL DEFAULT 1,
    preferred_ratio    REAL NOT NULL DEFAULT 0,
    cover_timestamp_ms INTEGER NOT NULL DEFAULT 0,
    has_cover          INTEGER NOT NULL DEFAULT 0,
    created_at         TEXT NOT NULL,
    updated_at         TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions(updated_at);
`

func (s *Store) applySchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
