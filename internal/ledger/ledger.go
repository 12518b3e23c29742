// Package ledger records written model files in a SQLite database, one
// row per output path. Re-exporting a path replaces its row.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/gogpu/glyph3d"
	"github.com/gogpu/glyph3d/export"
	"github.com/gogpu/glyph3d/internal/ledger/migrations"
)

// ErrNotConfigured is returned when a nil or closed store is used.
var ErrNotConfigured = errors.New("ledger: storage is not configured")

// Entry is one recorded artifact.
type Entry struct {
	Path       string
	Format     string
	Glyph      string
	Codepoint  rune
	Style      int
	Size       int64
	SHA256     string
	RecordedAt time.Time
}

// Store persists artifact entries.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the ledger at path and applies the
// embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &glyph3d.InvalidInputError{What: "ledger path", Value: path}
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Record stores a, replacing any earlier entry for the same path.
func (s *Store) Record(ctx context.Context, a export.Artifact) error {
	if s == nil || s.db == nil {
		return ErrNotConfigured
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO artifacts (path, format, glyph, codepoint, style, size, sha256, recorded_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(path) DO UPDATE SET
    format = excluded.format,
    glyph = excluded.glyph,
    codepoint = excluded.codepoint,
    style = excluded.style,
    size = excluded.size,
    sha256 = excluded.sha256,
    recorded_at = excluded.recorded_at`,
		a.Path,
		a.Format.Ext(),
		a.Glyph.Identifier(),
		int64(a.Glyph.Codepoint),
		a.Style,
		a.Size,
		a.SHA256,
		s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record artifact %s: %w", a.Path, err)
	}
	return nil
}

// List returns every entry ordered by path.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	if s == nil || s.db == nil {
		return nil, ErrNotConfigured
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT path, format, glyph, codepoint, style, size, sha256, recorded_at
FROM artifacts ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e          Entry
			codepoint  int64
			recordedAt int64
		)
		if err := rows.Scan(&e.Path, &e.Format, &e.Glyph, &codepoint, &e.Style, &e.Size, &e.SHA256, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan artifact: %w", err)
		}
		e.Codepoint = rune(codepoint)
		e.RecordedAt = time.UnixMilli(recordedAt).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	return out, nil
}
