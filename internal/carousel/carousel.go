package carousel

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ziadkadry99/studiofront/internal/cards"
)

// DefaultContainerWidth is assumed until the viewer reports its real width.
const DefaultContainerWidth = 1200

// FrameKind says what a Frame carries.
type FrameKind string

const (
	FrameRender   FrameKind = "render"
	FramePosition FrameKind = "position"
	FrameSelected FrameKind = "selected"
)

// Frame is an instruction for whatever draws the carousel.
type Frame struct {
	Kind     FrameKind
	Strip    *Strip
	Position *Position
	Card     *cards.Card
}

// Config configures one carousel instance.
type Config struct {
	Geometry   Geometry
	Infinite   bool
	Transition time.Duration
	Clock      Clock
}

// Carousel is one independent carousel: its own position model, renderer
// and rendered strip. Several can live on the same page without sharing state.
type Carousel struct {
	renderer *Renderer
	model    *Model
	out      func(Frame)
	width    atomic.Uint64

	mu    sync.Mutex
	strip Strip
}

// New creates a carousel that reports frames to out. out may be called from
// a timer goroutine and must not call back into the Carousel.
func New(cfg Config, out func(Frame)) *Carousel {
	if cfg.Geometry == (Geometry{}) {
		cfg.Geometry = DefaultGeometry()
	}
	if out == nil {
		out = func(Frame) {}
	}
	c := &Carousel{
		renderer: NewRenderer(cfg.Geometry, cfg.Infinite),
		out:      out,
	}
	c.width.Store(math.Float64bits(DefaultContainerWidth))

	opts := []Option{WithListener(c.onMove)}
	if cfg.Transition > 0 {
		opts = append(opts, WithTransition(cfg.Transition))
	}
	if cfg.Clock != nil {
		opts = append(opts, WithClock(cfg.Clock))
	}
	c.model = NewModel(cfg.Infinite, opts...)
	return c
}

func (c *Carousel) containerWidth() float64 {
	return math.Float64frombits(c.width.Load())
}

func (c *Carousel) onMove(mv Move) {
	pos := c.renderer.Reposition(mv.State, c.containerWidth())
	pos.Animated = mv.Animated
	c.out(Frame{Kind: FramePosition, Position: &pos})
}

// Show renders cards and repositions for the new count.
func (c *Carousel) Show(cs []cards.Card) {
	strip := c.renderer.Render(cs)
	c.mu.Lock()
	c.strip = strip
	c.mu.Unlock()

	c.model.SetTotal(len(cs))
	c.out(Frame{Kind: FrameRender, Strip: &strip})
	c.reposition()
}

func (c *Carousel) reposition() {
	pos := c.renderer.Reposition(c.model.State(), c.containerWidth())
	pos.Animated = true
	c.out(Frame{Kind: FramePosition, Position: &pos})
}

// Next advances one card. It reports false when the request was dropped.
func (c *Carousel) Next() bool { return c.model.Advance(1) }

// Prev goes back one card.
func (c *Carousel) Prev() bool { return c.model.Advance(-1) }

// GoTo jumps to a logical index.
func (c *Carousel) GoTo(index int) bool { return c.model.GoTo(index) }

// Resize records the container width and repositions.
func (c *Carousel) Resize(widthPx float64) {
	if widthPx <= 0 {
		return
	}
	c.width.Store(math.Float64bits(widthPx))
	c.reposition()
}

// Select resolves a clicked slot and publishes the selected card.
func (c *Carousel) Select(slot int) (cards.Card, bool) {
	c.mu.Lock()
	card, ok := c.strip.Resolve(slot)
	c.mu.Unlock()
	if !ok {
		return cards.Card{}, false
	}
	c.out(Frame{Kind: FrameSelected, Card: &card})
	return card, true
}

// State returns the model state.
func (c *Carousel) State() State { return c.model.State() }

// Strip returns the last rendered strip.
func (c *Carousel) Strip() Strip {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.strip
}

// Position returns the offset for the current state without publishing it.
func (c *Carousel) Position() Position {
	return c.renderer.Reposition(c.model.State(), c.containerWidth())
}

// Close cancels any pending transition timer.
func (c *Carousel) Close() { c.model.Close() }
