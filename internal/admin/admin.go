// Package admin edits the card snapshot kept in shared storage. Every write
// replaces the whole snapshot, which in turn signals every open viewer.
package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ziadkadry99/studiofront/internal/cards"
	"github.com/ziadkadry99/studiofront/internal/storage"
)

var (
	ErrCardNotFound  = errors.New("card not found")
	ErrPhotoNotFound = errors.New("photo not found")
	ErrDuplicateID   = errors.New("card id already exists")
)

// Editor performs read-modify-write edits on the snapshot. Edits made by
// one Editor are serialized; writers in other processes are not, and the
// last write wins.
type Editor struct {
	mu      sync.Mutex
	storage *storage.Store
	key     string
}

// NewEditor creates an editor for the snapshot under key.
func NewEditor(st *storage.Store, key string) *Editor {
	return &Editor{storage: st, key: key}
}

// List returns the stored cards. A missing snapshot is an empty list.
func (e *Editor) List(ctx context.Context) ([]cards.Card, error) {
	raw, err := e.storage.Get(ctx, e.key)
	if errors.Is(err, storage.ErrNotFound) {
		return []cards.Card{}, nil
	}
	if err != nil {
		return nil, err
	}
	return cards.DecodeSnapshot([]byte(raw))
}

func (e *Editor) save(ctx context.Context, cs []cards.Card) error {
	data, err := cards.EncodeSnapshot(cs)
	if err != nil {
		return err
	}
	return e.storage.Set(ctx, e.key, string(data))
}

// edit loads the snapshot, applies fn and writes the result back.
func (e *Editor) edit(ctx context.Context, fn func([]cards.Card) ([]cards.Card, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cs, err := e.List(ctx)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}
	cs, err = fn(cs)
	if err != nil {
		return err
	}
	return e.save(ctx, cs)
}

func indexOf(cs []cards.Card, id string) int {
	for i, c := range cs {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Create appends a card, assigning an id when none is given.
func (e *Editor) Create(ctx context.Context, c cards.Card) (cards.Card, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Photos == nil {
		c.Photos = []cards.Photo{}
	}
	err := e.edit(ctx, func(cs []cards.Card) ([]cards.Card, error) {
		if indexOf(cs, c.ID) >= 0 {
			return nil, ErrDuplicateID
		}
		return append(cs, c), nil
	})
	return c, err
}

// Update replaces the card with the same id, keeping its position. Photos
// left nil keep the stored ones. It returns the card as stored.
func (e *Editor) Update(ctx context.Context, c cards.Card) (cards.Card, error) {
	err := e.edit(ctx, func(cs []cards.Card) ([]cards.Card, error) {
		i := indexOf(cs, c.ID)
		if i < 0 {
			return nil, ErrCardNotFound
		}
		if c.Photos == nil {
			c.Photos = cs[i].Photos
		}
		cs[i] = c
		return cs, nil
	})
	if err != nil {
		return cards.Card{}, err
	}
	return c, nil
}

// Delete removes a card and, with it, its photos.
func (e *Editor) Delete(ctx context.Context, id string) error {
	return e.edit(ctx, func(cs []cards.Card) ([]cards.Card, error) {
		i := indexOf(cs, id)
		if i < 0 {
			return nil, ErrCardNotFound
		}
		return append(cs[:i], cs[i+1:]...), nil
	})
}

// AddPhoto appends a photo to a card.
func (e *Editor) AddPhoto(ctx context.Context, id string, p cards.Photo) error {
	return e.edit(ctx, func(cs []cards.Card) ([]cards.Card, error) {
		i := indexOf(cs, id)
		if i < 0 {
			return nil, ErrCardNotFound
		}
		cs[i].Photos = append(cs[i].Photos, p)
		return cs, nil
	})
}

// RemovePhoto removes the first photo of a card with the given url.
func (e *Editor) RemovePhoto(ctx context.Context, id, url string) error {
	return e.edit(ctx, func(cs []cards.Card) ([]cards.Card, error) {
		i := indexOf(cs, id)
		if i < 0 {
			return nil, ErrCardNotFound
		}
		photos := cs[i].Photos
		for j, p := range photos {
			if p.URL == url {
				cs[i].Photos = append(photos[:j], photos[j+1:]...)
				return cs, nil
			}
		}
		return nil, ErrPhotoNotFound
	})
}
