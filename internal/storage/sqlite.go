//go:build !js

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/geocoin/geocoin/internal/storage/migrations"
	"github.com/geocoin/geocoin/internal/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the blob in a row of a SQLite database, one row per
// save slot.
type SQLiteStore struct {
	db   *sql.DB
	slot string
}

// OpenSQLite opens the database at path and applies migrations.
func OpenSQLite(path, slot string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if strings.TrimSpace(slot) == "" {
		return nil, errors.New("save slot is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), db, migrations.FS, "."); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteStore{db: db, slot: slot}, nil
}

// Close releases the database.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) Load() (string, bool, error) {
	var blob string
	err := s.db.QueryRow(`SELECT blob FROM saves WHERE slot = ?`, s.slot).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load save %q: %w", s.slot, err)
	}
	return blob, true, nil
}

func (s *SQLiteStore) Save(blob string) error {
	_, err := s.db.Exec(`
INSERT INTO saves (slot, blob, updated_at) VALUES (?, ?, ?)
ON CONFLICT(slot) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at
`, s.slot, blob, time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("save %q: %w", s.slot, err)
	}
	return nil
}

func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM saves WHERE slot = ?`, s.slot); err != nil {
		return fmt.Errorf("clear save %q: %w", s.slot, err)
	}
	return nil
}
