package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/TestingGuyz/hanuman/internal/observe"
)

// TurnEvent is pushed to every /ws/events subscriber after each processed
// voice turn. The browser console pane renders these live.
type TurnEvent struct {
	SessionID     string    `json:"session_id"`
	Transcription string    `json:"transcription"`
	Reply         string    `json:"reply,omitempty"`
	Mode          string    `json:"mode"`
	Timestamp     time.Time `json:"timestamp"`
}

// subscriberBuffer is the per-subscriber event queue depth. A subscriber
// that falls this far behind starts losing events rather than blocking the
// voice pipeline.
const subscriberBuffer = 16

// eventHub fans turn events out to WebSocket subscribers.
type eventHub struct {
	mu   sync.Mutex
	subs map[chan TurnEvent]struct{}
}

func newEventHub() *eventHub {
	return &eventHub{subs: make(map[chan TurnEvent]struct{})}
}

// subscribe registers a new subscriber and returns its channel plus an
// unsubscribe function.
func (h *eventHub) subscribe() (<-chan TurnEvent, func()) {
	ch := make(chan TurnEvent, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
}

// broadcast delivers ev to all subscribers without blocking. Slow
// subscribers drop events.
func (h *eventHub) broadcast(ev TurnEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// handleEvents upgrades the connection to WebSocket and streams one JSON
// [TurnEvent] per processed turn until the client disconnects.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		observe.Logger(r.Context()).Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	ctx := r.Context()
	events, unsubscribe := s.events.subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := wsjson.Write(writeCtx, conn, ev)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
