package carousel

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ziadkadry99/studiofront/internal/cards"
)

func TestRepositionCentersCard(t *testing.T) {
	r := NewRenderer(Geometry{CardWidthPx: 310, GapPx: 10}, false)
	pos := r.Reposition(State{CurrentIndex: 0, TotalCount: 5}, 1200)
	if pos.OffsetPx != 445 {
		t.Errorf("offset = %v, want 445", pos.OffsetPx)
	}

	pos = r.Reposition(State{CurrentIndex: 2, TotalCount: 5}, 1200)
	if pos.OffsetPx != -2*320+445 {
		t.Errorf("offset = %v, want %v", pos.OffsetPx, -2*320+445)
	}
}

func TestRepositionInfiniteUsesMiddleCopy(t *testing.T) {
	r := NewRenderer(DefaultGeometry(), true)
	tests := []struct {
		index int
		want  float64
	}{
		{0, -5*320 + 445},
		{4, -9*320 + 445},
		// Raw indices just outside the range land in the neighbouring copies.
		{-1, -4*320 + 445},
		{5, -10*320 + 445},
	}
	for _, tt := range tests {
		pos := r.Reposition(State{CurrentIndex: tt.index, TotalCount: 5, InfiniteMode: true}, 1200)
		if pos.OffsetPx != tt.want {
			t.Errorf("index %d: offset = %v, want %v", tt.index, pos.OffsetPx, tt.want)
		}
	}
}

func TestRepositionFollowsContainerWidth(t *testing.T) {
	r := NewRenderer(DefaultGeometry(), false)
	narrow := r.Reposition(State{TotalCount: 3}, 400)
	if narrow.OffsetPx != 45 {
		t.Errorf("offset at 400px = %v, want 45", narrow.OffsetPx)
	}
}

func TestRenderInfiniteTriplesCards(t *testing.T) {
	cs := cards.SampleCards()
	strip := NewRenderer(DefaultGeometry(), true).Render(cs)

	if len(strip.Slides) != 15 {
		t.Fatalf("expected 15 slides, got %d", len(strip.Slides))
	}
	for slot, s := range strip.Slides {
		if s.Slot != slot {
			t.Errorf("slide %d has slot %d", slot, s.Slot)
		}
		if s.LogicalIndex != slot%5 || s.Block != slot/5 {
			t.Errorf("slide %d: logical %d block %d", slot, s.LogicalIndex, s.Block)
		}
		if s.Card.ID != cs[slot%5].ID {
			t.Errorf("slide %d resolves to %q, want %q", slot, s.Card.ID, cs[slot%5].ID)
		}
	}
}

func TestRenderFiniteSingleCopy(t *testing.T) {
	strip := NewRenderer(DefaultGeometry(), false).Render(cards.SampleCards())
	if len(strip.Slides) != 5 || strip.Infinite {
		t.Errorf("expected 5 slides in finite mode, got %d", len(strip.Slides))
	}
}

func TestRenderIdempotent(t *testing.T) {
	r := NewRenderer(DefaultGeometry(), true)
	cs := cards.SampleCards()
	st := State{CurrentIndex: 3, TotalCount: len(cs), InfiniteMode: true}

	first, second := r.Render(cs), r.Render(cs)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("render differs between calls:\n%s", diff)
	}
	if r.Reposition(st, 900) != r.Reposition(st, 900) {
		t.Error("reposition is not deterministic")
	}
}

func TestStripResolve(t *testing.T) {
	cs := cards.SampleCards()
	strip := NewRenderer(DefaultGeometry(), true).Render(cs)

	card, ok := strip.Resolve(12)
	if !ok || card.ID != cs[2].ID {
		t.Errorf("Resolve(12) = %q %v, want %q", card.ID, ok, cs[2].ID)
	}
	if _, ok := strip.Resolve(15); ok {
		t.Error("Resolve past the end should fail")
	}
	if _, ok := strip.Resolve(-1); ok {
		t.Error("Resolve(-1) should fail")
	}
}
