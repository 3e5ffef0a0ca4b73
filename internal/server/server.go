// Package server exposes the Hanuman voice pipeline over HTTP.
//
// The main route is POST /api/voice: the browser uploads one recorded
// utterance, the server transcribes it, runs it through the conversation
// state machine, synthesises the reply, and returns JSON with a link to the
// reply audio. Supporting routes serve generated audio files, per-session
// status, a WebSocket event feed, health probes, and Prometheus metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/TestingGuyz/hanuman/internal/conversation"
	"github.com/TestingGuyz/hanuman/internal/health"
	"github.com/TestingGuyz/hanuman/internal/observe"
	"github.com/TestingGuyz/hanuman/internal/session"
	"github.com/TestingGuyz/hanuman/internal/store"
	"github.com/TestingGuyz/hanuman/pkg/provider/tts"
)

// Transcriber converts one recorded utterance to text. Satisfied by
// [resilience.STTFallback].
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Speaker synthesises reply text and reports which voice spoke it.
// Satisfied by [resilience.TTSFallback].
type Speaker interface {
	Synthesize(ctx context.Context, text string) ([]byte, tts.VoiceProfile, error)
}

// Archiver persists completed turns and serves them back for the history
// route. Satisfied by [store.Store].
type Archiver interface {
	SaveTurn(ctx context.Context, t store.Turn) error
	RecentTurns(ctx context.Context, sessionID string, limit int) ([]store.Turn, error)
	Search(ctx context.Context, query string, opts store.SearchOpts) ([]store.Turn, error)
}

// Server handles all HTTP routes for the voice assistant.
type Server struct {
	addr        string
	audioDir    string
	turnTimeout time.Duration
	sessionTTL  time.Duration

	sessions   *session.Store
	controller *conversation.Controller
	stt        Transcriber
	tts        Speaker
	archive    Archiver
	metrics    *observe.Metrics
	health     *health.Handler
	events     *eventHub

	searchConfigured bool
	musicConfigured  bool
}

// Option is a functional option for [New].
type Option func(*Server)

// WithArchiver enables turn persistence. Without it turns live only in the
// in-memory session state.
func WithArchiver(a Archiver) Option {
	return func(s *Server) { s.archive = a }
}

// WithHealth replaces the default (checkerless) health handler.
func WithHealth(h *health.Handler) Option {
	return func(s *Server) { s.health = h }
}

// WithSessionTTL enables background expiry of sessions idle longer than ttl.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) { s.sessionTTL = ttl }
}

// WithTurnTimeout bounds one full voice turn. Default 60 seconds.
func WithTurnTimeout(d time.Duration) Option {
	return func(s *Server) { s.turnTimeout = d }
}

// WithProviderStatus records which optional providers are configured, for
// the /api/status report.
func WithProviderStatus(search, music bool) Option {
	return func(s *Server) {
		s.searchConfigured = search
		s.musicConfigured = music
	}
}

// New creates a Server. addr is the listen address, audioDir the directory
// for uploaded and synthesised audio (created if missing).
func New(addr, audioDir string, sessions *session.Store, controller *conversation.Controller,
	stt Transcriber, speaker Speaker, metrics *observe.Metrics, opts ...Option) (*Server, error) {

	if err := os.MkdirAll(audioDir, 0o755); err != nil {
		return nil, fmt.Errorf("server: create audio dir: %w", err)
	}

	s := &Server{
		addr:        addr,
		audioDir:    audioDir,
		turnTimeout: 60 * time.Second,
		sessions:    sessions,
		controller:  controller,
		stt:         stt,
		tts:         speaker,
		metrics:     metrics,
		health:      health.New(),
		events:      newEventHub(),
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Handler builds the full route table wrapped in the observability
// middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/voice", s.handleVoice)
	mux.HandleFunc("GET /audio/{name}", s.handleAudio)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("GET /ws/events", s.handleEvents)
	mux.Handle("GET /metrics", promhttp.Handler())
	s.health.Register(mux)

	return observe.Middleware(s.metrics)(mux)
}

// Start runs the HTTP server until ctx is cancelled, then shuts it down
// gracefully. When a session TTL is configured, an expiry loop runs
// alongside the server.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		observe.Logger(ctx).Info("server listening", "addr", s.addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shCtx)
	})

	if s.sessionTTL > 0 {
		g.Go(func() error {
			ticker := time.NewTicker(s.sessionTTL / 2)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if n := s.sessions.Expire(time.Now().Add(-s.sessionTTL)); n > 0 {
						s.metrics.ActiveSessions.Add(ctx, int64(-n))
						observe.Logger(ctx).Info("expired idle sessions", "count", n)
					}
				}
			}
		})
	}

	return g.Wait()
}
