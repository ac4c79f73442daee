package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"cliplab/internal/config"
)

// ErrNotFound reports that no session exists for the requested asset.
var ErrNotFound = errors.New("session not found")

// ErrLocked reports that another cliplab instance holds the session store.
var ErrLocked = errors.New("session store is locked by another process")

// Store manages session persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the session database, acquires the store
// lock, and applies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.SessionDir, "sessions.lock"))
	held, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	if !held {
		return nil, ErrLocked
	}

	dbPath := filepath.Join(cfg.Paths.SessionDir, "sessions.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.applySchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close closes the database and releases the store lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var firstErr error
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			firstErr = err
		}
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Save upserts the record, stamping UpdatedAt (and CreatedAt on insert).
func (s *Store) Save(ctx context.Context, record *Record) error {
	if record == nil || record.AssetPath == "" {
		return errors.New("save session: empty asset path")
	}
	now := time.Now().UTC()
	record.UpdatedAt = now
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}

	_, err := s.db.ExecContext(ctx, `
        INSERT INTO sessions (
            asset_path, display_title, rotation_steps,
            trim_min, trim_max,
            crop_min_x, crop_min_y, crop_max_x, crop_max_y,
            preferred_ratio, cover_timestamp_ms, has_cover,
            created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(asset_path) DO UPDATE SET
            display_title = excluded.display_title,
            rotation_steps = excluded.rotation_steps,
            trim_min = excluded.trim_min,
            trim_max = excluded.trim_max,
            crop_min_x = excluded.crop_min_x,
            crop_min_y = excluded.crop_min_y,
            crop_max_x = excluded.crop_max_x,
            crop_max_y = excluded.crop_max_y,
            preferred_ratio = excluded.preferred_ratio,
            cover_timestamp_ms = excluded.cover_timestamp_ms,
            has_cover = excluded.has_cover,
            updated_at = excluded.updated_at`,
		record.AssetPath, record.DisplayTitle, record.RotationSteps,
		record.TrimMin, record.TrimMax,
		record.CropMin.X, record.CropMin.Y, record.CropMax.X, record.CropMax.Y,
		record.PreferredRatio, record.CoverTimestampMS, boolToInt(record.HasCover),
		record.CreatedAt.Format(time.RFC3339Nano), record.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save session %q: %w", record.AssetPath, err)
	}
	return nil
}

// Load returns the record for the asset, or ErrNotFound.
func (s *Store) Load(ctx context.Context, assetPath string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` FROM sessions WHERE asset_path = ?`, assetPath)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, assetPath)
	}
	if err != nil {
		return nil, fmt.Errorf("load session %q: %w", assetPath, err)
	}
	return record, nil
}

// List returns all records ordered by most recent update.
func (s *Store) List(ctx context.Context) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` FROM sessions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return records, nil
}

// Delete removes the record for the asset; missing records are not an error.
func (s *Store) Delete(ctx context.Context, assetPath string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE asset_path = ?`, assetPath); err != nil {
		return fmt.Errorf("delete session %q: %w", assetPath, err)
	}
	return nil
}

const selectColumns = `
    SELECT asset_path, display_title, rotation_steps,
           trim_min, trim_max,
           crop_min_x, crop_min_y, crop_max_x, crop_max_y,
           preferred_ratio, cover_timestamp_ms, has_cover,
           created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var record Record
	var hasCover int
	var createdAt, updatedAt string
	err := row.Scan(
		&record.AssetPath, &record.DisplayTitle, &record.RotationSteps,
		&record.TrimMin, &record.TrimMax,
		&record.CropMin.X, &record.CropMin.Y, &record.CropMax.X, &record.CropMax.Y,
		&record.PreferredRatio, &record.CoverTimestampMS, &hasCover,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	record.HasCover = hasCover != 0
	if record.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if record.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &record, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
