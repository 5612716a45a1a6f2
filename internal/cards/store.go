package cards

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Store holds the ordered card list the carousel reads from.
//
// Each Load takes a request token. A load that completes after a newer one
// has already been applied still returns its result to the caller, but the
// snapshot keeps the newer data.
type Store struct {
	source Source
	log    *zap.Logger

	mu      sync.RWMutex
	cards   []Card
	err     error
	applied uint64

	tokens atomic.Uint64

	subMu  sync.Mutex
	subs   map[int]func([]Card)
	nextID int
}

// NewStore creates a store over source. Until the first load, Current
// returns the sample cards.
func NewStore(source Source, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		source: source,
		log:    log,
		cards:  SampleCards(),
		subs:   make(map[int]func([]Card)),
	}
}

// Load fetches cards from the source and replaces the snapshot. On any
// failure, including an empty result, the sample cards are swapped in and
// returned together with a *LoadError. The returned slice is never empty.
func (s *Store) Load(ctx context.Context) ([]Card, error) {
	cards, _, err := s.load(ctx)
	return cards, err
}

// LoadLatest loads like Load, for callers that display the result. When a
// newer load has already been applied, the stale result is dropped and the
// applied snapshot is returned along with the error it was loaded with.
func (s *Store) LoadLatest(ctx context.Context) ([]Card, error) {
	cards, applied, err := s.load(ctx)
	if applied {
		return cards, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.cards), s.err
}

// Refresh reloads and notifies subscribers. It is the entry point for
// out-of-band change signals.
func (s *Store) Refresh(ctx context.Context) error {
	cards, applied, err := s.load(ctx)
	if applied {
		s.notify(cards)
	}
	return err
}

func (s *Store) load(ctx context.Context) ([]Card, bool, error) {
	token := s.tokens.Add(1)

	cards, err := s.source.Fetch(ctx)
	if err == nil && len(cards) == 0 {
		err = &LoadError{Kind: ErrEmpty}
	}

	var loadErr error
	if err != nil {
		le := asLoadError(err)
		loadErr = le
		s.log.Warn("card load failed, using sample cards",
			zap.String("kind", le.Kind.Error()), zap.Error(le.Err))
		cards = SampleCards()
	}

	applied := s.apply(token, cards, loadErr)
	if !applied {
		s.log.Debug("discarding stale card load", zap.Uint64("token", token))
	}
	return clone(cards), applied, loadErr
}

func (s *Store) apply(token uint64, cards []Card, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token <= s.applied {
		return false
	}
	s.cards = clone(cards)
	s.err = err
	s.applied = token
	return true
}

// Current returns a copy of the last applied snapshot.
func (s *Store) Current() []Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.cards)
}

// Err returns the *LoadError of the last applied load, or nil when the
// current snapshot came from the source.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Subscribe registers fn to be called with the new snapshot after every
// applied Refresh. fn runs on the refreshing goroutine and must not block.
func (s *Store) Subscribe(fn func([]Card)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(cards []Card) {
	s.subMu.Lock()
	fns := make([]func([]Card), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(clone(cards))
	}
}
