package carousel

import (
	"testing"

	"github.com/ziadkadry99/studiofront/internal/cards"
)

func newTestCarousel(t *testing.T, infinite bool) (*Carousel, *ManualClock, *[]Frame) {
	t.Helper()
	clock := NewManualClock()
	var frames []Frame
	c := New(Config{Infinite: infinite, Transition: step, Clock: clock}, func(f Frame) {
		frames = append(frames, f)
	})
	t.Cleanup(c.Close)
	return c, clock, &frames
}

func TestShowRendersThenPositions(t *testing.T) {
	c, _, frames := newTestCarousel(t, false)
	c.Show(cards.SampleCards())

	if len(*frames) != 2 {
		t.Fatalf("expected render + position, got %d frames", len(*frames))
	}
	if (*frames)[0].Kind != FrameRender || len((*frames)[0].Strip.Slides) != 5 {
		t.Errorf("unexpected first frame: %+v", (*frames)[0])
	}
	pos := (*frames)[1].Position
	if (*frames)[1].Kind != FramePosition || pos.OffsetPx != 445 {
		t.Errorf("unexpected position frame: %+v", pos)
	}
	if c.State().TotalCount != 5 {
		t.Errorf("total count = %d, want 5", c.State().TotalCount)
	}
}

func TestShowTwiceIsStable(t *testing.T) {
	c, _, _ := newTestCarousel(t, true)
	c.Show(cards.SampleCards())
	first, firstPos := c.Strip(), c.Position()
	c.Show(cards.SampleCards())

	if len(c.Strip().Slides) != len(first.Slides) {
		t.Errorf("slide count changed: %d vs %d", len(c.Strip().Slides), len(first.Slides))
	}
	if c.Position() != firstPos {
		t.Errorf("position changed: %+v vs %+v", c.Position(), firstPos)
	}
}

func TestNextWrapSnapsWithoutAnimation(t *testing.T) {
	c, clock, frames := newTestCarousel(t, true)
	c.Show(cards.SampleCards())
	c.GoTo(4)
	clock.Advance(step)
	*frames = nil

	if !c.Next() {
		t.Fatal("Next rejected")
	}
	if c.Next() {
		t.Error("second Next during transition should be dropped")
	}
	clock.Advance(step)

	if len(*frames) != 2 {
		t.Fatalf("expected slide + snap frames, got %d", len(*frames))
	}
	slide, snap := (*frames)[0].Position, (*frames)[1].Position
	if !slide.Animated || slide.OffsetPx != -10*320+445 {
		t.Errorf("unexpected slide frame: %+v", slide)
	}
	if snap.Animated || snap.OffsetPx != -5*320+445 || snap.Index != 0 {
		t.Errorf("unexpected snap frame: %+v", snap)
	}
}

func TestReloadDuringWrapKeepsSlideAndSnap(t *testing.T) {
	c, clock, frames := newTestCarousel(t, true)
	c.Show(cards.SampleCards())
	*frames = nil

	c.Prev()
	c.Show(cards.SampleCards())
	for _, f := range *frames {
		if f.Kind == FramePosition && f.Position.OffsetPx != -4*320+445 {
			t.Errorf("reload mid-slide moved the strip: %+v", f.Position)
		}
	}

	*frames = nil
	clock.Advance(step)
	if len(*frames) != 1 {
		t.Fatalf("expected one snap frame at settle, got %d", len(*frames))
	}
	snap := (*frames)[0].Position
	if snap.Animated || snap.Index != 4 || snap.OffsetPx != -9*320+445 {
		t.Errorf("unexpected snap frame: %+v", snap)
	}
}

func TestResizeRepositions(t *testing.T) {
	c, _, frames := newTestCarousel(t, false)
	c.Show(cards.SampleCards())
	*frames = nil

	c.Resize(800)
	c.Resize(0)
	if len(*frames) != 1 {
		t.Fatalf("expected one position frame, got %d", len(*frames))
	}
	if got := (*frames)[0].Position.OffsetPx; got != 245 {
		t.Errorf("offset at 800px = %v, want 245", got)
	}
}

func TestSelectPublishesCard(t *testing.T) {
	c, _, frames := newTestCarousel(t, true)
	cs := cards.SampleCards()
	c.Show(cs)
	*frames = nil

	card, ok := c.Select(7)
	if !ok || card.ID != cs[2].ID {
		t.Fatalf("Select(7) = %q %v, want %q", card.ID, ok, cs[2].ID)
	}
	if len(*frames) != 1 || (*frames)[0].Kind != FrameSelected || (*frames)[0].Card.ID != cs[2].ID {
		t.Errorf("unexpected frames: %+v", *frames)
	}

	if _, ok := c.Select(99); ok {
		t.Error("Select outside the strip should fail")
	}
}

func TestCarouselsAreIndependent(t *testing.T) {
	a, clock, _ := newTestCarousel(t, false)
	b, _, _ := newTestCarousel(t, false)
	a.Show(cards.SampleCards())
	b.Show(cards.SampleCards())

	a.Next()
	clock.Advance(step)
	if a.State().CurrentIndex != 1 || b.State().CurrentIndex != 0 {
		t.Errorf("carousels share state: a=%d b=%d", a.State().CurrentIndex, b.State().CurrentIndex)
	}
}
