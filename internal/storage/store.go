package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ziadkadry99/studiofront/internal/db"
)

// Store is the shared key/value storage every viewer tab reads from.
// Writes are published on the hub so other tabs can react.
type Store struct {
	db  *db.DB
	hub *Hub
	now func() time.Time
}

// NewStore creates a storage store publishing changes to hub.
func NewStore(d *db.DB, hub *Hub) *Store {
	return &Store{db: d, hub: hub, now: func() time.Time { return time.Now().UTC() }}
}

// Hub returns the change hub the store publishes to.
func (s *Store) Hub() *Hub { return s.hub }

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM shared_storage WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("getting %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key and publishes the change.
func (s *Store) Set(ctx context.Context, key, value string) error {
	now := s.now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO shared_storage (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now,
	)
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	s.hub.Publish(ChangeEvent{Key: key, NewValue: value, ChangedAt: now})
	return nil
}

// Remove deletes key. Removing an absent key returns ErrNotFound.
func (s *Store) Remove(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM shared_storage WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	s.hub.Publish(ChangeEvent{Key: key, Removed: true, ChangedAt: s.now()})
	return nil
}

// List returns every entry ordered by key.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value, updated_at FROM shared_storage ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing storage: %w", err)
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Value, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
