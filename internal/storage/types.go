package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// ChangeEvent is published whenever a key is written or removed.
// A removal carries an empty NewValue and Removed set.
type ChangeEvent struct {
	Key       string    `json:"key"`
	NewValue  string    `json:"newValue"`
	Removed   bool      `json:"removed,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

// Entry is a stored key/value pair.
type Entry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
