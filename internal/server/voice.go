package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/TestingGuyz/hanuman/internal/conversation"
	"github.com/TestingGuyz/hanuman/internal/observe"
	"github.com/TestingGuyz/hanuman/internal/store"
	"github.com/TestingGuyz/hanuman/pkg/provider/music"
)

// maxUploadBytes caps one uploaded utterance. A minute of 16 kHz 16-bit mono
// WAV is under 2 MB, so 15 MB leaves generous headroom for browser formats.
const maxUploadBytes = 15 << 20

// unclearAudio is the sentinel fed to the state machine when transcription
// fails or hears next to nothing. The state machine treats it like any other
// unrecognised utterance, so the assistant answers in persona instead of the
// turn erroring out.
const unclearAudio = "(unclear audio)"

// voiceResponse is the JSON body returned by POST /api/voice. Reply is null
// when the assistant stays silent (idle mode without a wake word); no audio
// is synthesised in that case.
type voiceResponse struct {
	SessionID     string        `json:"session_id"`
	Transcription string        `json:"transcription"`
	Reply         *string       `json:"reply"`
	Mode          string        `json:"mode"`
	AudioURL      string        `json:"audio_url,omitempty"`
	NowPlaying    *music.Track  `json:"now_playing,omitempty"`
	State         stateSnapshot `json:"state"`
}

// stateSnapshot is the session state portion of the voice response.
type stateSnapshot struct {
	Mode          string                 `json:"mode"`
	GameScore     conversation.GameScore `json:"game_score"`
	HistoryLength int                    `json:"history_length"`
}

// handleVoice runs one full voice turn: save upload, transcribe, advance the
// state machine, synthesise the reply, archive, and broadcast.
func (s *Server) handleVoice(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := contextWithTimeout(r, s.turnTimeout)
	defer cancel()
	log := observe.Logger(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	file, _, err := r.FormFile("audio")
	if err != nil {
		httpError(w, http.StatusBadRequest, "missing audio form file")
		return
	}
	defer file.Close()
	audio, err := io.ReadAll(file)
	if err != nil {
		httpError(w, http.StatusBadRequest, "read audio: "+err.Error())
		return
	}

	sess, created, err := s.sessions.GetOrCreate(r.FormValue("session_id"))
	if err != nil {
		httpError(w, http.StatusInternalServerError, "create session: "+err.Error())
		return
	}
	if created {
		s.metrics.ActiveSessions.Add(ctx, 1)
	}

	s.saveUpload(ctx, sess.ID, audio)

	// Transcribe through the fallback chain. Failures and silence both
	// normalise to the sentinel so the turn still completes in persona.
	sttStart := time.Now()
	transcription, err := s.stt.Transcribe(ctx, audio)
	s.metrics.STTDuration.Record(ctx, time.Since(sttStart).Seconds())
	if err != nil {
		log.Warn("transcription failed", "session", sess.ID, "error", err)
		transcription = unclearAudio
	}
	if len(strings.TrimSpace(transcription)) < 2 {
		transcription = unclearAudio
	}

	// Advance the state machine. Turns within a session are serialised.
	var (
		turn       conversation.Turn
		modeBefore conversation.Mode
		snapshot   stateSnapshot
		nowPlaying *music.Track
	)
	sess.Run(func(st *conversation.State) {
		modeBefore = st.Mode
		turn = s.controller.Process(ctx, st, transcription)
		snapshot = stateSnapshot{
			Mode:          string(st.Mode),
			GameScore:     st.GameScore,
			HistoryLength: len(st.History),
		}
		nowPlaying = st.NowPlaying
	})
	s.metrics.RecordTurn(ctx, string(modeBefore))

	resp := voiceResponse{
		SessionID:     sess.ID,
		Transcription: transcription,
		Mode:          snapshot.Mode,
		NowPlaying:    nowPlaying,
		State:         snapshot,
	}

	// Idle-mode replies (help without a wake word) stay text-only; the
	// assistant speaks only once a session is awake.
	var voiceName string
	if turn.Handled {
		resp.Reply = &turn.Reply
		if snapshot.Mode != string(conversation.ModeIdle) {
			resp.AudioURL, voiceName = s.synthesize(ctx, sess.ID, turn.Reply)
		}
	}

	duration := time.Since(start)
	s.metrics.TurnDuration.Record(ctx, duration.Seconds())

	if s.archive != nil && turn.Handled {
		archived := store.Turn{
			SessionID: sess.ID,
			Mode:      string(modeBefore),
			UserText:  transcription,
			ReplyText: turn.Reply,
			Voice:     voiceName,
			Timestamp: time.Now(),
			Duration:  duration,
		}
		if err := s.archive.SaveTurn(ctx, archived); err != nil {
			log.Warn("failed to archive turn", "session", sess.ID, "error", err)
		}
	}

	s.events.broadcast(TurnEvent{
		SessionID:     sess.ID,
		Transcription: transcription,
		Reply:         turn.Reply,
		Mode:          snapshot.Mode,
		Timestamp:     time.Now(),
	})

	log.Info("voice turn processed",
		"session", sess.ID,
		"mode_before", modeBefore,
		"mode_after", snapshot.Mode,
		"handled", turn.Handled,
		"duration", duration,
	)
	writeJSON(w, http.StatusOK, resp)
}

// synthesize runs the reply through the TTS voice cascade and writes the
// audio file. Returns the public URL and the voice name, or empty strings
// when synthesis failed; the turn still succeeds with text only.
func (s *Server) synthesize(ctx context.Context, sessionID, reply string) (audioURL, voiceName string) {
	ttsStart := time.Now()
	audio, voice, err := s.tts.Synthesize(ctx, reply)
	s.metrics.TTSDuration.Record(ctx, time.Since(ttsStart).Seconds())
	if err != nil {
		observe.Logger(ctx).Warn("synthesis failed", "session", sessionID, "error", err)
		return "", ""
	}

	name := fmt.Sprintf("reply_%s_%d.mp3", shortID(sessionID), time.Now().UnixNano())
	if err := os.WriteFile(filepath.Join(s.audioDir, name), audio, 0o644); err != nil {
		observe.Logger(ctx).Error("failed to write reply audio", "file", name, "error", err)
		return "", ""
	}
	return "/audio/" + name, voice.Name
}

// saveUpload archives the raw uploaded utterance next to the replies.
// Best-effort; a failed write never fails the turn.
func (s *Server) saveUpload(ctx context.Context, sessionID string, audio []byte) {
	name := fmt.Sprintf("in_%s_%d.wav", shortID(sessionID), time.Now().UnixNano())
	if err := os.WriteFile(filepath.Join(s.audioDir, name), audio, 0o644); err != nil {
		observe.Logger(ctx).Warn("failed to save uploaded audio", "file", name, "error", err)
	}
}

// handleAudio serves a generated audio file from the audio directory. The
// name path value must be a bare file name.
func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		httpError(w, http.StatusBadRequest, "invalid audio file name")
		return
	}
	path := filepath.Join(s.audioDir, name)
	if _, err := os.Stat(path); err != nil {
		httpError(w, http.StatusNotFound, "audio file not found")
		return
	}
	http.ServeFile(w, r, path)
}

// shortID returns a log-friendly prefix of a session ID.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// contextWithTimeout applies the turn timeout to the request context when
// one is configured.
func contextWithTimeout(r *http.Request, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), d)
}

// errorResponse is the JSON error body shared by all handlers.
type errorResponse struct {
	Error string `json:"error"`
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error":"encode response"}`, http.StatusInternalServerError)
	}
}
