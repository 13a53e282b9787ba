package persistence

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLite stores blobs in a single key/payload table inside a local file. It is
// the default backend: per-profile durable storage with no external process.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the database file and the state table.
func NewSQLite(path string, logger *zap.Logger) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
        key TEXT PRIMARY KEY,
        payload BLOB NOT NULL
    )`); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("opened sqlite storage", zap.String("path", path))
	return &SQLite{db: db}, nil
}

// Get reads the payload stored under key.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

// Set replaces the payload stored under key.
func (s *SQLite) Set(ctx context.Context, key string, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO state (key, payload) VALUES (?, ?)
        ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`, key, payload)
	return err
}

// Delete removes the key if present.
func (s *SQLite) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM state WHERE key = ?`, key)
	return err
}

// Ping verifies the database file is reachable.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
