// Package storage provides persistence for Synk.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// StateStore persists session state as string-keyed JSON documents.
// It is the durable mirror behind the in-memory session; callers decide
// what a failed read or write means.
type StateStore struct {
	db *DB
}

// NewStateStore creates a new state store
func NewStateStore(db *DB) *StateStore {
	return &StateStore{db: db}
}

// Save serializes v as JSON and upserts it under key.
func (s *StateStore) Save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode state %q: %w", key, err)
	}

	_, err = s.db.conn.Exec(`
		INSERT INTO state (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save state %q: %w", key, err)
	}

	return nil
}

// Load decodes the value stored under key into dest. It reports whether
// the key was present; a missing key is not an error.
func (s *StateStore) Load(key string, dest any) (bool, error) {
	var value string
	err := s.db.conn.QueryRow("SELECT value FROM state WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load state %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(value), dest); err != nil {
		return false, fmt.Errorf("failed to decode state %q: %w", key, err)
	}

	return true, nil
}

// Delete removes the value stored under key. Deleting a missing key is a no-op.
func (s *StateStore) Delete(key string) error {
	if _, err := s.db.conn.Exec("DELETE FROM state WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete state %q: %w", key, err)
	}
	return nil
}

// Keys returns all stored keys, for diagnostics and tests.
func (s *StateStore) Keys() ([]string, error) {
	rows, err := s.db.conn.Query("SELECT key FROM state ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}

	return keys, rows.Err()
}
