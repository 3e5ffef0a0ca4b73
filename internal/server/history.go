package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/TestingGuyz/hanuman/internal/observe"
	"github.com/TestingGuyz/hanuman/internal/store"
)

// defaultHistoryLimit caps history responses when the client asks for no
// particular limit.
const defaultHistoryLimit = 20

// historyResponse is the JSON body returned by GET /api/history.
type historyResponse struct {
	Turns []historyTurn `json:"turns"`
}

// historyTurn is one archived turn in wire form.
type historyTurn struct {
	SessionID  string    `json:"session_id"`
	Mode       string    `json:"mode"`
	UserText   string    `json:"user_text"`
	ReplyText  string    `json:"reply_text"`
	Voice      string    `json:"voice,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	DurationMS int64     `json:"duration_ms"`
}

// handleHistory serves archived turns. Without a q parameter it returns the
// most recent turns of the given session, oldest first; with q it runs a
// full-text search, optionally narrowed by session_id and mode.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		httpError(w, http.StatusNotFound, "history persistence not configured")
		return
	}

	q := r.URL.Query()
	limit := defaultHistoryLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httpError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	var (
		turns []store.Turn
		err   error
	)
	if query := q.Get("q"); query != "" {
		turns, err = s.archive.Search(r.Context(), query, store.SearchOpts{
			SessionID: q.Get("session_id"),
			Mode:      q.Get("mode"),
			Limit:     limit,
		})
	} else {
		sessionID := q.Get("session_id")
		if sessionID == "" {
			httpError(w, http.StatusBadRequest, "session_id or q parameter required")
			return
		}
		turns, err = s.archive.RecentTurns(r.Context(), sessionID, limit)
	}
	if err != nil {
		observe.Logger(r.Context()).Error("history lookup failed", "error", err)
		httpError(w, http.StatusInternalServerError, "history lookup failed")
		return
	}

	resp := historyResponse{Turns: make([]historyTurn, 0, len(turns))}
	for _, t := range turns {
		resp.Turns = append(resp.Turns, historyTurn{
			SessionID:  t.SessionID,
			Mode:       t.Mode,
			UserText:   t.UserText,
			ReplyText:  t.ReplyText,
			Voice:      t.Voice,
			Timestamp:  t.Timestamp,
			DurationMS: t.Duration.Milliseconds(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
