// Package crosstab turns shared-storage writes made by one viewer into card
// reloads for every other viewer.
package crosstab

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/studiofront/internal/storage"
)

// DefaultSettle is the delay between a change signal and the reload.
const DefaultSettle = 100 * time.Millisecond

// Refresher reloads cards and notifies the carousels showing them.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Sync listens for changes to one storage key. Signals that arrive inside
// the settle window collapse into a single reload. Concurrent writers are
// not reconciled: the last write is what gets loaded.
type Sync struct {
	hub    *storage.Hub
	key    string
	target Refresher
	settle time.Duration
	log    *zap.Logger
}

// New creates a Sync for key. A non-positive settle uses DefaultSettle.
func New(hub *storage.Hub, key string, target Refresher, settle time.Duration, log *zap.Logger) *Sync {
	if settle <= 0 {
		settle = DefaultSettle
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Sync{hub: hub, key: key, target: target, settle: settle, log: log}
}

// Run blocks until ctx is done.
func (s *Sync) Run(ctx context.Context) error {
	events, cancel := s.hub.Subscribe(32)
	defer cancel()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Key != s.key {
				continue
			}
			s.log.Debug("shared storage changed", zap.String("key", ev.Key), zap.Bool("removed", ev.Removed))
			if timer == nil {
				timer = time.NewTimer(s.settle)
				fire = timer.C
			}
		case <-fire:
			timer, fire = nil, nil
			if err := s.target.Refresh(ctx); err != nil {
				s.log.Warn("reload after storage change fell back to sample cards", zap.Error(err))
			}
		}
	}
}
