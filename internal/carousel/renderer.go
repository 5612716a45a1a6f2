package carousel

import "github.com/ziadkadry99/studiofront/internal/cards"

// Geometry is the fixed card size of the strip, in pixels.
type Geometry struct {
	CardWidthPx float64 `json:"card_width_px"`
	GapPx       float64 `json:"gap_px"`
}

// DefaultGeometry matches the landing page stylesheet.
func DefaultGeometry() Geometry {
	return Geometry{CardWidthPx: 310, GapPx: 10}
}

// CardTotalWidth is the distance between the left edges of two neighbours.
func (g Geometry) CardTotalWidth() float64 { return g.CardWidthPx + g.GapPx }

// Slide is one rendered card element. LogicalIndex is the card's position in
// the loaded list whichever copy (Block) the slide belongs to.
type Slide struct {
	Slot         int        `json:"slot"`
	LogicalIndex int        `json:"logical_index"`
	Block        int        `json:"block"`
	Card         cards.Card `json:"card"`
}

// Strip is the rendered row of slides. In infinite mode it holds three
// copies of the cards: previous, current and next.
type Strip struct {
	Slides     []Slide `json:"slides"`
	TotalCount int     `json:"total_count"`
	Infinite   bool    `json:"infinite"`
}

// Resolve maps a clicked slot to its card.
func (s Strip) Resolve(slot int) (cards.Card, bool) {
	if slot < 0 || slot >= len(s.Slides) {
		return cards.Card{}, false
	}
	return s.Slides[slot].Card, true
}

// Position is where the strip should be translated to.
type Position struct {
	OffsetPx float64 `json:"offset_px"`
	Animated bool    `json:"animated"`
	Index    int     `json:"index"`
}

// Renderer projects cards and carousel state onto a strip.
type Renderer struct {
	geometry Geometry
	infinite bool
}

// NewRenderer creates a renderer. infinite must match the model it is paired with.
func NewRenderer(g Geometry, infinite bool) *Renderer {
	return &Renderer{geometry: g, infinite: infinite}
}

// Geometry returns the renderer's card geometry.
func (r *Renderer) Geometry() Geometry { return r.geometry }

// Render builds the strip for cards. It is a pure function of its input.
func (r *Renderer) Render(cs []cards.Card) Strip {
	blocks := 1
	if r.infinite {
		blocks = 3
	}
	strip := Strip{
		Slides:     make([]Slide, 0, blocks*len(cs)),
		TotalCount: len(cs),
		Infinite:   r.infinite,
	}
	for b := 0; b < blocks; b++ {
		for i, c := range cs {
			strip.Slides = append(strip.Slides, Slide{
				Slot:         len(strip.Slides),
				LogicalIndex: i,
				Block:        b,
				Card:         c,
			})
		}
	}
	return strip
}

// Reposition computes the strip offset that centers the current card in a
// container of the given width.
func (r *Renderer) Reposition(st State, containerWidthPx float64) Position {
	slot := st.CurrentIndex
	if st.InfiniteMode {
		slot += st.TotalCount
	}
	center := (containerWidthPx - r.geometry.CardWidthPx) / 2
	return Position{
		OffsetPx: -float64(slot)*r.geometry.CardTotalWidth() + center,
		Index:    st.CurrentIndex,
	}
}
