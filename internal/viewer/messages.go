package viewer

import (
	"github.com/ziadkadry99/studiofront/internal/cards"
	"github.com/ziadkadry99/studiofront/internal/carousel"
)

// request is the incoming WebSocket message format.
type request struct {
	Type  string  `json:"type"` // "next", "prev", "goto", "select" or "resize"
	Index int     `json:"index,omitempty"`
	Slot  int     `json:"slot,omitempty"`
	Width float64 `json:"width,omitempty"`
}

// response is the outgoing WebSocket message format.
type response struct {
	Type     string             `json:"type"` // "render", "position", "selected", "notice" or "error"
	Strip    *carousel.Strip    `json:"strip,omitempty"`
	Position *carousel.Position `json:"position,omitempty"`
	Card     *cards.Card        `json:"card,omitempty"`
	Message  string             `json:"message,omitempty"`
}

func frameResponse(f carousel.Frame) response {
	return response{
		Type:     string(f.Kind),
		Strip:    f.Strip,
		Position: f.Position,
		Card:     f.Card,
	}
}
