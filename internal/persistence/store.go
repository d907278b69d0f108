// Package persistence provides SQLite-backed save-slot storage. Each
// slot holds one binary snapshot of the game plus enough metadata to
// list and pick saves without decoding them.
package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store wraps a SQLite connection for save storage.
type Store struct {
	conn *sqlx.DB
}

// SaveInfo describes one save slot.
type SaveInfo struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Turn      int       `db:"turn" json:"turn"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Open opens or creates a save database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		turn INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL,
		snapshot BLOB NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_saves_name ON saves(name);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// SaveSnapshot stores a snapshot under a new slot id and returns it.
// An existing slot with the same name is replaced.
func (s *Store) SaveSnapshot(name string, turn int, snapshot []byte) (string, error) {
	tx, err := s.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM saves WHERE name = ?", name); err != nil {
		return "", err
	}

	id := uuid.NewString()
	_, err = tx.Exec(
		"INSERT INTO saves (id, name, turn, created_at, snapshot) VALUES (?, ?, ?, ?, ?)",
		id, name, turn, time.Now().UTC(), snapshot,
	)
	if err != nil {
		return "", fmt.Errorf("insert save %q: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}

	slog.Info("game saved", "slot", name, "turn", turn, "bytes", len(snapshot))
	return id, nil
}

// LoadSnapshot returns the snapshot blob and info for a slot id.
func (s *Store) LoadSnapshot(id string) ([]byte, SaveInfo, error) {
	var row struct {
		SaveInfo
		Snapshot []byte `db:"snapshot"`
	}
	err := s.conn.Get(&row,
		"SELECT id, name, turn, created_at, snapshot FROM saves WHERE id = ?", id)
	if err != nil {
		return nil, SaveInfo{}, fmt.Errorf("load save %q: %w", id, err)
	}
	return row.Snapshot, row.SaveInfo, nil
}

// LoadLatest returns the most recent save, if any.
func (s *Store) LoadLatest() ([]byte, SaveInfo, error) {
	var id string
	err := s.conn.Get(&id, "SELECT id FROM saves ORDER BY created_at DESC LIMIT 1")
	if err != nil {
		return nil, SaveInfo{}, fmt.Errorf("load latest save: %w", err)
	}
	return s.LoadSnapshot(id)
}

// ListSaves returns all save slots, newest first.
func (s *Store) ListSaves() ([]SaveInfo, error) {
	var saves []SaveInfo
	err := s.conn.Select(&saves,
		"SELECT id, name, turn, created_at FROM saves ORDER BY created_at DESC")
	return saves, err
}

// SaveMeta stores a key-value pair.
func (s *Store) SaveMeta(key, value string) error {
	_, err := s.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (s *Store) GetMeta(key string) (string, error) {
	var value string
	err := s.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	return value, err
}
