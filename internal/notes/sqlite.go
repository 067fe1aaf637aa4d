package notes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	keyNotes          = "notes"
	keyHighlightColor = "highlightColor"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// SQLiteStore implements Store on a single kv table. Values are JSON encoded.
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

// OpenSQLite opens (or creates) dir/store.sqlite.
func OpenSQLite(dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	path := filepath.Join(dir, "store.sqlite")
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func getValue(ctx context.Context, q queryer, key string, out any) (bool, error) {
	var raw string
	err := q.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

func putValue(ctx context.Context, e execer, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	_, err = e.ExecContext(ctx, `
		INSERT INTO kv(key, value, updated_at) VALUES(?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(data), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Notes returns all notes, newest first.
func (s *SQLiteStore) Notes() ([]Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var list []Note
	if _, err := getValue(context.Background(), s.db, keyNotes, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SaveNotes replaces the note list.
func (s *SQLiteStore) SaveNotes(list []Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if list == nil {
		list = []Note{}
	}
	return putValue(context.Background(), s.db, keyNotes, list)
}

// Update runs fn over the note list inside one transaction.
func (s *SQLiteStore) Update(fn func([]Note) ([]Note, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	var list []Note
	if _, err := getValue(ctx, tx, keyNotes, &list); err != nil {
		_ = tx.Rollback()
		return err
	}
	list, err = fn(list)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if list == nil {
		list = []Note{}
	}
	if err := putValue(ctx, tx, keyNotes, list); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// HighlightColor returns the stored color or DefaultHighlightColor.
func (s *SQLiteStore) HighlightColor() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var color string
	found, err := getValue(context.Background(), s.db, keyHighlightColor, &color)
	if err != nil {
		return DefaultHighlightColor, err
	}
	if !found || color == "" {
		return DefaultHighlightColor, nil
	}
	return color, nil
}

// SetHighlightColor stores the highlight color.
func (s *SQLiteStore) SetHighlightColor(color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return putValue(context.Background(), s.db, keyHighlightColor, color)
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
