// Package localstore is a durable key-value store for anonymous visitors.
// Each (session, name) pair holds one JSON-serialized collection, the same
// layout a browser would keep under a single localStorage key. A missing row
// reads as nil, which callers treat as an empty collection.
package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS collections (
	session_id TEXT NOT NULL,
	name       TEXT NOT NULL,
	value      BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	PRIMARY KEY (session_id, name)
);
CREATE INDEX IF NOT EXISTS idx_collections_updated_at ON collections (updated_at);
`

type Store struct {
	db *sql.DB
}

// Open opens (and migrates) the store at path. ":memory:" works for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("localstore: open %s: %w", path, err)
	}
	// The sqlite driver serializes writes; a single connection avoids
	// table-lock errors under concurrent sessions.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("localstore: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the stored value, or nil when the key has never been written.
func (s *Store) Get(ctx context.Context, sessionID, name string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM collections WHERE session_id = ? AND name = ?`,
		sessionID, name,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("localstore: get %s/%s: %w", sessionID, name, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, sessionID, name string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO collections (session_id, name, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (session_id, name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		sessionID, name, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("localstore: set %s/%s: %w", sessionID, name, err)
	}
	return nil
}

// Delete removes the key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, sessionID, name string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM collections WHERE session_id = ? AND name = ?`,
		sessionID, name,
	)
	if err != nil {
		return fmt.Errorf("localstore: delete %s/%s: %w", sessionID, name, err)
	}
	return nil
}

// Purge drops every collection untouched since the cutoff. Session lifetime
// policy lives with the caller; this is plain storage hygiene.
func (s *Store) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM collections WHERE updated_at < ?`, cutoff.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("localstore: purge: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
