package carousel

import (
	"sync"
	"time"
)

// DefaultTransition is how long an animated slide change keeps the model locked.
const DefaultTransition = 500 * time.Millisecond

// State is the carousel position. It is owned by exactly one Model.
type State struct {
	CurrentIndex    int  `json:"current_index"`
	TotalCount      int  `json:"total_count"`
	IsTransitioning bool `json:"is_transitioning"`
	InfiniteMode    bool `json:"infinite_mode"`
}

// Move is published each time the position changes. Animated is false only
// for the snap back into the middle copy after an infinite-mode wrap.
type Move struct {
	State    State
	Animated bool
}

// Model is the position state machine: Idle until an advance is accepted,
// Transitioning until the transition duration elapses. Requests that arrive
// while Transitioning are dropped, not queued.
type Model struct {
	mu       sync.Mutex
	state    State
	duration time.Duration
	clock    Clock
	timer    Timer
	gen      uint64
	listener func(Move)
}

// Option configures a Model.
type Option func(*Model)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c Clock) Option { return func(m *Model) { m.clock = c } }

// WithTransition sets the transition lock duration.
func WithTransition(d time.Duration) Option { return func(m *Model) { m.duration = d } }

// WithListener registers the function moves are published to. It is called
// with the model locked and must not call back into the Model.
func WithListener(fn func(Move)) Option { return func(m *Model) { m.listener = fn } }

// NewModel returns an Idle model at index 0 with no cards.
func NewModel(infinite bool, opts ...Option) *Model {
	m := &Model{
		state:    State{InfiniteMode: infinite},
		duration: DefaultTransition,
		clock:    realClock{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// wrap normalizes i into [0, n).
func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// State returns a copy of the current state.
func (m *Model) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Advance moves one card forward (+1) or back (-1) and reports whether the
// request was accepted. In infinite mode the index may sit one step outside
// [0, total) until the transition settles.
func (m *Model) Advance(dir int) bool {
	if dir != 1 && dir != -1 {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.IsTransitioning || m.state.TotalCount == 0 {
		return false
	}

	next := m.state.CurrentIndex + dir
	if !m.state.InfiniteMode {
		next = wrap(next, m.state.TotalCount)
	}
	m.begin(next)
	return true
}

// GoTo jumps straight to index. Out-of-range indices are rejected.
func (m *Model) GoTo(index int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.IsTransitioning || index < 0 || index >= m.state.TotalCount {
		return false
	}
	m.begin(index)
	return true
}

// begin must be called with mu held.
func (m *Model) begin(index int) {
	m.state.CurrentIndex = index
	m.state.IsTransitioning = true
	m.gen++
	gen := m.gen
	m.emit(Move{State: m.state, Animated: true})
	m.timer = m.clock.AfterFunc(m.duration, func() { m.settle(gen) })
}

func (m *Model) settle(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen || !m.state.IsTransitioning {
		return
	}
	m.timer = nil
	m.state.IsTransitioning = false

	n := m.state.TotalCount
	if m.state.InfiniteMode && n > 0 {
		if w := wrap(m.state.CurrentIndex, n); w != m.state.CurrentIndex {
			m.state.CurrentIndex = w
			m.emit(Move{State: m.state, Animated: false})
		}
	}
}

// SetTotal records a new card count after a load. A shrinking list clamps
// the index (finite mode) or rewraps it (infinite mode). An in-flight
// transition keeps its lock, and in infinite mode an index one step past
// either edge is left for settle to snap back.
func (m *Model) SetTotal(n int) {
	if n < 0 {
		n = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.TotalCount = n
	switch {
	case n == 0:
		m.state.CurrentIndex = 0
	case m.state.InfiniteMode:
		i := m.state.CurrentIndex
		if m.state.IsTransitioning && i >= -1 && i <= n {
			return
		}
		m.state.CurrentIndex = wrap(i, n)
	case m.state.CurrentIndex >= n:
		m.state.CurrentIndex = n - 1
	case m.state.CurrentIndex < 0:
		m.state.CurrentIndex = 0
	}
}

// Close cancels a pending transition and releases the lock.
func (m *Model) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.gen++
	m.state.IsTransitioning = false
	if n := m.state.TotalCount; n > 0 {
		m.state.CurrentIndex = wrap(m.state.CurrentIndex, n)
	}
}

func (m *Model) emit(mv Move) {
	if m.listener != nil {
		m.listener(mv)
	}
}
