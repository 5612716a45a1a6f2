// Package viewer runs one carousel per connected browser tab.
package viewer

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/studiofront/internal/cards"
	"github.com/ziadkadry99/studiofront/internal/carousel"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Viewer serves carousel sessions over WebSocket.
type Viewer struct {
	store  *cards.Store
	cfg    carousel.Config
	log    *zap.Logger
	active atomic.Int64
}

// New creates a Viewer. Every session gets its own carousel built from cfg.
func New(store *cards.Store, cfg carousel.Config, log *zap.Logger) *Viewer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Viewer{store: store, cfg: cfg, log: log}
}

// RegisterRoutes mounts the viewer endpoint onto the given router.
func (v *Viewer) RegisterRoutes(r chi.Router) {
	r.Get("/ws/carousel", v.handleWebSocket)
}

// Active reports the number of connected sessions.
func (v *Viewer) Active() int64 { return v.active.Load() }

func (v *Viewer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		v.log.Warn("viewer: websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	v.active.Add(1)
	defer v.active.Add(-1)

	out := newOutbox()
	defer out.close()

	c := carousel.New(v.cfg, func(f carousel.Frame) { out.push(frameResponse(f)) })
	defer c.Close()

	done := make(chan struct{})
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		v.writeLoop(conn, out, done)
	}()
	defer func() {
		close(done)
		<-writerDone
	}()

	s := &session{carousel: c, out: out}

	// Refreshes reach every session, including reloads that fell back.
	unsubscribe := v.store.Subscribe(func(cs []cards.Card) {
		s.fallback.Store(v.store.Err() != nil)
		c.Show(cs)
	})
	defer unsubscribe()

	// A new page view is a load trigger; failures still render the sample
	// cards and are retried on the next resize. A load overtaken by a newer
	// one shows the newer snapshot.
	s.load = func() {
		cs, err := v.store.LoadLatest(r.Context())
		s.fallback.Store(err != nil)
		if err != nil {
			out.push(response{Type: "notice", Message: noticeFor(err)})
		}
		c.Show(cs)
	}
	s.load()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				v.log.Debug("viewer: websocket read", zap.Error(err))
			}
			return
		}

		var req request
		if err := json.Unmarshal(msg, &req); err != nil {
			out.push(response{Type: "error", Message: "invalid message format"})
			continue
		}
		v.dispatch(s, req)
	}
}

// session is the per-connection state the read loop works on.
type session struct {
	carousel *carousel.Carousel
	out      *outbox
	load     func()
	fallback atomic.Bool // the shown cards are the sample list
}

// dispatch applies one viewer input. Inputs dropped by the transition lock
// produce no response.
func (v *Viewer) dispatch(s *session, req request) {
	c := s.carousel
	switch req.Type {
	case "next":
		c.Next()
	case "prev":
		c.Prev()
	case "goto":
		c.GoTo(req.Index)
	case "resize":
		c.Resize(req.Width)
		if s.fallback.Load() && req.Width > 0 {
			s.load()
		}
	case "select":
		if _, ok := c.Select(req.Slot); !ok {
			s.out.push(response{Type: "error", Message: "no card at that position"})
		}
	default:
		s.out.push(response{Type: "error", Message: "unknown message type: " + req.Type})
	}
}

func (v *Viewer) writeLoop(conn *websocket.Conn, out *outbox, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-out.wake:
		}
		for _, resp := range out.take() {
			if err := conn.WriteJSON(resp); err != nil {
				v.log.Debug("viewer: websocket write", zap.Error(err))
				return
			}
		}
	}
}

func noticeFor(err error) string {
	switch {
	case errors.Is(err, cards.ErrEmpty):
		return "No projects published yet, showing examples."
	case errors.Is(err, cards.ErrParse):
		return "Project data could not be read, showing examples."
	default:
		return "Projects could not be loaded, showing examples."
	}
}
