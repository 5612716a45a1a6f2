package carousel

import (
	"math/rand"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const step = 500 * time.Millisecond

func newTestModel(t *testing.T, infinite bool, total int) (*Model, *ManualClock, *[]Move) {
	t.Helper()
	clock := NewManualClock()
	var moves []Move
	m := NewModel(infinite,
		WithClock(clock),
		WithTransition(step),
		WithListener(func(mv Move) { moves = append(moves, mv) }),
	)
	m.SetTotal(total)
	t.Cleanup(m.Close)
	return m, clock, &moves
}

func TestInitialState(t *testing.T) {
	m := NewModel(false)
	st := m.State()
	if st.CurrentIndex != 0 || st.TotalCount != 0 || st.IsTransitioning {
		t.Errorf("unexpected initial state: %+v", st)
	}
}

func TestAdvanceWithNoCardsIsNoop(t *testing.T) {
	m, clock, moves := newTestModel(t, true, 0)
	if m.Advance(1) {
		t.Error("Advance with zero cards should be rejected")
	}
	if len(*moves) != 0 || clock.Pending() != 0 {
		t.Errorf("expected no moves and no timers, got %d moves, %d timers", len(*moves), clock.Pending())
	}
}

func TestAdvanceRejectsInvalidDirection(t *testing.T) {
	m, _, _ := newTestModel(t, false, 5)
	for _, dir := range []int{0, 2, -3} {
		if m.Advance(dir) {
			t.Errorf("Advance(%d) should be rejected", dir)
		}
	}
}

func TestFiniteWraparound(t *testing.T) {
	m, clock, moves := newTestModel(t, false, 5)

	m.SetTotal(5)
	if !m.GoTo(4) {
		t.Fatal("GoTo(4) rejected")
	}
	clock.Advance(step)

	if !m.Advance(1) {
		t.Fatal("Advance(+1) rejected")
	}
	if got := m.State().CurrentIndex; got != 0 {
		t.Errorf("finite mode normalizes immediately: index = %d, want 0", got)
	}
	clock.Advance(step)

	m.Advance(-1)
	clock.Advance(step)
	if got := m.State().CurrentIndex; got != 4 {
		t.Errorf("advance(-1) from 0: index = %d, want 4", got)
	}
	for _, mv := range *moves {
		if !mv.Animated {
			t.Errorf("finite mode never snaps, got un-animated move %+v", mv)
		}
	}
}

func TestInfiniteWraparoundSettles(t *testing.T) {
	m, clock, moves := newTestModel(t, true, 5)
	m.GoTo(4)
	clock.Advance(step)
	*moves = nil

	m.Advance(1)
	st := m.State()
	if st.CurrentIndex != 5 || !st.IsTransitioning {
		t.Fatalf("during transition expected raw index 5, got %+v", st)
	}

	clock.Advance(step)
	st = m.State()
	if st.CurrentIndex != 0 || st.IsTransitioning {
		t.Fatalf("after settle expected index 0 idle, got %+v", st)
	}
	if len(*moves) != 2 {
		t.Fatalf("expected animated move then snap, got %+v", *moves)
	}
	if !(*moves)[0].Animated || (*moves)[1].Animated {
		t.Errorf("expected animated then instant, got %+v", *moves)
	}
	if (*moves)[1].State.CurrentIndex != 0 {
		t.Errorf("snap should land on 0, got %d", (*moves)[1].State.CurrentIndex)
	}

	m.Advance(-1)
	if got := m.State().CurrentIndex; got != -1 {
		t.Errorf("during transition expected raw index -1, got %d", got)
	}
	clock.Advance(step)
	if got := m.State().CurrentIndex; got != 4 {
		t.Errorf("advance(-1) from 0 settles to %d, want 4", got)
	}
}

func TestAdvanceDroppedWhileTransitioning(t *testing.T) {
	m, clock, moves := newTestModel(t, false, 5)

	if !m.Advance(1) {
		t.Fatal("first advance rejected")
	}
	clock.Advance(step / 2)

	if m.Advance(1) {
		t.Error("advance during transition should be dropped")
	}
	if m.GoTo(3) {
		t.Error("GoTo during transition should be dropped")
	}
	if got := m.State().CurrentIndex; got != 1 {
		t.Errorf("index changed during transition: %d", got)
	}
	if clock.Pending() != 1 {
		t.Errorf("dropped request must not schedule a timer, pending = %d", clock.Pending())
	}

	// The original timer still ends the transition on schedule.
	clock.Advance(step / 2)
	if m.State().IsTransitioning {
		t.Error("transition timer was restarted by a dropped request")
	}
	if len(*moves) != 1 {
		t.Errorf("expected one move, got %d", len(*moves))
	}
}

func TestIndexStaysInRangeAfterSettle(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, infinite := range []bool{false, true} {
		for total := 1; total <= 7; total++ {
			m, clock, _ := newTestModel(t, infinite, total)
			for i := 0; i < 200; i++ {
				dir := 1
				if rng.Intn(2) == 0 {
					dir = -1
				}
				m.Advance(dir)
				if rng.Intn(3) == 0 {
					// Rapid input: a second request lands mid-transition.
					m.Advance(dir)
				}
				clock.Advance(step)
				st := m.State()
				if st.CurrentIndex < 0 || st.CurrentIndex >= total {
					t.Fatalf("infinite=%v total=%d: index %d out of range", infinite, total, st.CurrentIndex)
				}
				if st.IsTransitioning {
					t.Fatalf("infinite=%v total=%d: still transitioning after settle", infinite, total)
				}
			}
		}
	}
}

func TestGoToRejectsOutOfRange(t *testing.T) {
	m, _, _ := newTestModel(t, false, 3)
	for _, idx := range []int{-1, 3, 10} {
		if m.GoTo(idx) {
			t.Errorf("GoTo(%d) should be rejected", idx)
		}
	}
	if !m.GoTo(2) {
		t.Error("GoTo(2) should be accepted")
	}
}

func TestSetTotalShrinks(t *testing.T) {
	finite, fclock, _ := newTestModel(t, false, 5)
	finite.GoTo(4)
	fclock.Advance(step)
	finite.SetTotal(3)
	if got := finite.State().CurrentIndex; got != 2 {
		t.Errorf("finite shrink clamps: index = %d, want 2", got)
	}

	inf, iclock, _ := newTestModel(t, true, 5)
	inf.GoTo(4)
	iclock.Advance(step)
	inf.SetTotal(3)
	if got := inf.State().CurrentIndex; got != 1 {
		t.Errorf("infinite shrink rewraps: index = %d, want 1", got)
	}

	inf.SetTotal(0)
	if st := inf.State(); st.CurrentIndex != 0 || st.TotalCount != 0 {
		t.Errorf("empty list resets index, got %+v", st)
	}
}

func TestSetTotalMidWrapLeavesSnapToSettle(t *testing.T) {
	m, clock, moves := newTestModel(t, true, 5)
	m.Advance(-1)

	m.SetTotal(5)
	if got := m.State().CurrentIndex; got != -1 {
		t.Fatalf("reload mid-transition must keep the raw index, got %d", got)
	}

	clock.Advance(step)
	if len(*moves) != 2 {
		t.Fatalf("expected slide and snap, got %d moves", len(*moves))
	}
	snap := (*moves)[1]
	if snap.Animated || snap.State.CurrentIndex != 4 {
		t.Errorf("expected un-animated snap to 4, got %+v", snap)
	}

	m.Advance(1)
	m.SetTotal(5)
	if got := m.State().CurrentIndex; got != 5 {
		t.Errorf("index one past the end must wait for settle, got %d", got)
	}
	m.SetTotal(3)
	if got := m.State().CurrentIndex; got != 2 {
		t.Errorf("shrinking below the raw index rewraps it, got %d", got)
	}
}

func TestCloseCancelsTransition(t *testing.T) {
	m, clock, moves := newTestModel(t, true, 5)
	m.Advance(-1)
	m.Close()

	st := m.State()
	if st.IsTransitioning || st.CurrentIndex != 4 {
		t.Errorf("Close should unlock and normalize, got %+v", st)
	}
	clock.Advance(step)
	if len(*moves) != 1 {
		t.Errorf("stopped timer must not snap, got %d moves", len(*moves))
	}
	if !m.Advance(1) {
		t.Error("model should accept input after Close")
	}
}

func TestRealClockUnlocks(t *testing.T) {
	done := make(chan Move, 4)
	m := NewModel(true, WithTransition(10*time.Millisecond), WithListener(func(mv Move) { done <- mv }))
	m.SetTotal(2)
	defer m.Close()

	m.Advance(1)
	<-done
	deadline := time.After(2 * time.Second)
	for m.State().IsTransitioning {
		select {
		case <-deadline:
			t.Fatal("transition never settled")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	if !m.Advance(1) {
		t.Error("expected advance to be accepted after settle")
	}
}
