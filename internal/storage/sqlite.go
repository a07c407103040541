package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLiteBackend stores blobs as rows of a key-value table.
type SQLiteBackend struct {
	db   *sql.DB
	path string
}

// NewSQLiteBackend opens (or creates) the database at path and ensures the
// schema exists. Use ":memory:" for a throwaway database.
func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A second connection to ":memory:" would see an empty database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	if path == ":memory:" {
		path = ""
	}
	return &SQLiteBackend{db: db, path: path}, nil
}

// Get implements Backend.
func (s *SQLiteBackend) Get(key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying %q: %w", key, err)
	}
	return []byte(value), true, nil
}

// Set implements Backend.
func (s *SQLiteBackend) Set(key string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, string(value))
	if err != nil {
		return fmt.Errorf("upserting %q: %w", key, err)
	}
	return nil
}

// Close implements Backend.
func (s *SQLiteBackend) Close() error { return s.db.Close() }
