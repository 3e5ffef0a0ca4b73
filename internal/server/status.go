package server

import (
	"net/http"

	"github.com/TestingGuyz/hanuman/internal/conversation"
)

// statusResponse is the JSON body returned by GET /api/status.
type statusResponse struct {
	Sessions  int            `json:"sessions"`
	Providers providerStatus `json:"providers"`
	Session   *sessionStatus `json:"session,omitempty"`
}

// providerStatus reports which optional backends are wired up. Core
// providers (LLM, STT, TTS) are always present or the server refuses to
// start, so only the degradable ones are listed.
type providerStatus struct {
	Search  bool `json:"search"`
	Music   bool `json:"music"`
	History bool `json:"history"`
}

// sessionStatus is the per-session portion, included when the session_id
// query parameter names a live session.
type sessionStatus struct {
	SessionID     string                 `json:"session_id"`
	Mode          string                 `json:"mode"`
	GameScore     conversation.GameScore `json:"game_score"`
	HistoryLength int                    `json:"history_length"`
	LastMessage   string                 `json:"last_message,omitempty"`
	NowPlaying    string                 `json:"now_playing,omitempty"`
}

// handleStatus reports overall provider configuration plus, when session_id
// is supplied and known, that session's conversation state.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Sessions: s.sessions.Count(),
		Providers: providerStatus{
			Search:  s.searchConfigured,
			Music:   s.musicConfigured,
			History: s.archive != nil,
		},
	}

	if id := r.URL.Query().Get("session_id"); id != "" {
		sess, ok := s.sessions.Get(id)
		if !ok {
			httpError(w, http.StatusNotFound, "unknown session")
			return
		}
		status := &sessionStatus{SessionID: sess.ID}
		sess.Run(func(st *conversation.State) {
			status.Mode = string(st.Mode)
			status.GameScore = st.GameScore
			status.HistoryLength = len(st.History)
			status.LastMessage = st.LastMessage()
			if st.NowPlaying != nil {
				status.NowPlaying = st.NowPlaying.Title
			}
		})
		resp.Session = status
	}

	writeJSON(w, http.StatusOK, resp)
}
