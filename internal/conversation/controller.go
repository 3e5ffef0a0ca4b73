package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/TestingGuyz/hanuman/internal/intent"
	"github.com/TestingGuyz/hanuman/internal/observe"
	"github.com/TestingGuyz/hanuman/pkg/provider/music"
	"github.com/TestingGuyz/hanuman/pkg/provider/search"
)

// Turn is the outcome of processing one utterance.
type Turn struct {
	// Reply is the text to speak back to the user. Empty when Handled is
	// false.
	Reply string

	// Handled reports whether the utterance produced a response. It is false
	// only in the idle mode when no wake word was heard; the session stays
	// silent in that case.
	Handled bool
}

// Controller routes utterances through the conversation state machine. It is
// stateless apart from configuration; all per-session state lives in the
// [State] passed to Process, so one Controller serves every session.
type Controller struct {
	chat     Chatter
	searcher search.WebSearcher
	music    music.Searcher
	rng      *rand.Rand
	metrics  *observe.Metrics
}

// Option is a functional option for the Controller.
type Option func(*Controller)

// WithSearcher enables khoj mode with the given web search backend. Without
// it khoj mode reports that search is not configured.
func WithSearcher(s search.WebSearcher) Option {
	return func(c *Controller) { c.searcher = s }
}

// WithMusic enables gandharva mode with the given song lookup backend.
// Without it gandharva mode reports that music lookup is unavailable.
func WithMusic(m music.Searcher) Option {
	return func(c *Controller) { c.music = m }
}

// WithRand overrides the game move source. Used by tests for deterministic
// rock-paper-scissors rounds.
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) { c.rng = r }
}

// WithMetrics overrides the metrics instance collaborator latencies are
// recorded into. Defaults to [observe.DefaultMetrics].
func WithMetrics(m *observe.Metrics) Option {
	return func(c *Controller) { c.metrics = m }
}

// New creates a Controller. chat must be non-nil; search and music backends
// are optional and their modes degrade gracefully when absent.
func New(chat Chatter, opts ...Option) *Controller {
	c := &Controller{
		chat:    chat,
		rng:     newGameRand(),
		metrics: observe.DefaultMetrics(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Process advances st by one utterance and returns the reply. It never
// returns an error: every failure path degrades to an in-persona reply so a
// voice turn always completes.
//
// Cross-mode actions (help, exit) are checked before anything else in every
// mode, so they work everywhere, including mid-game.
func (c *Controller) Process(ctx context.Context, st *State, utterance string) Turn {
	text := strings.ToLower(strings.TrimSpace(utterance))

	if action := intent.DetectAction(text); action.Matched() {
		switch action.Key {
		case "exit":
			prev := st.Mode
			st.Mode = ModeActive
			st.ClearContext()
			return Turn{
				Reply:   fmt.Sprintf("🚪 Exiting %s mode. Back to main menu, mitra. Say 'help' for options.", prev),
				Handled: true,
			}
		case "help":
			return Turn{Reply: HelpText, Handled: true}
		}
	}

	switch st.Mode {
	case ModeIdle:
		if intent.DetectWakeWord(text).Matched() {
			st.Mode = ModeActive
			st.AddMessage("system", "Hanuman awakened")
			return Turn{Reply: replyGreeting, Handled: true}
		}
		// Stay silent until the wake word is heard.
		return Turn{}

	case ModeActive:
		if mode := intent.DetectMode(text); mode.Matched() {
			return c.enterMode(st, Mode(mode.Key))
		}
		return c.menuChat(ctx, text)

	case ModeAagya:
		return c.chatTurn(ctx, st, text, SystemPrompt)

	case ModeHasya:
		return c.chatTurn(ctx, st, text, SystemPrompt+promptHasya)

	case ModeYudha:
		return Turn{Reply: c.playRound(st, text), Handled: true}

	case ModeGandharva:
		return c.musicTurn(ctx, st, text)

	case ModeKhoj:
		return c.searchTurn(ctx, text)
	}

	return Turn{Reply: replyNotUnderstood, Handled: true}
}

// enterMode switches the session into the selected mode and returns its
// opening line. Mode context is always cleared on entry; yudha additionally
// starts a fresh match.
func (c *Controller) enterMode(st *State, mode Mode) Turn {
	st.Mode = mode
	st.ClearContext()

	var reply string
	switch mode {
	case ModeAagya:
		reply = replyAagyaOpen
	case ModeHasya:
		reply = replyHasyaOpen
	case ModeYudha:
		st.ResetGame()
		reply = replyYudhaOpen
	case ModeGandharva:
		reply = replyGandharvaOpen
	case ModeKhoj:
		reply = replyKhojOpen
	}
	return Turn{Reply: reply, Handled: true}
}

// menuChat handles active-mode utterances that picked no mode: the LLM nudges
// the user toward the menu. Nothing is logged to history from the menu.
func (c *Controller) menuChat(ctx context.Context, text string) Turn {
	reply, err := c.chat.Chat(ctx, SystemPrompt+promptMenuGuidance, text)
	if err != nil {
		slog.Warn("menu chat failed", "error", err)
		reply = replyApology
	}
	return Turn{Reply: reply, Handled: true}
}

// chatTurn handles one aagya or hasya exchange, logging both sides to the
// session history.
func (c *Controller) chatTurn(ctx context.Context, st *State, text, systemPrompt string) Turn {
	reply, err := c.chat.Chat(ctx, systemPrompt, text)
	if err != nil {
		slog.Warn("chat turn failed", "mode", st.Mode, "error", err)
		reply = replyApology
	}
	st.AddMessage("user", text)
	st.AddMessage("ai", reply)
	return Turn{Reply: reply, Handled: true}
}

// musicTurn resolves a song request and records it as now playing.
func (c *Controller) musicTurn(ctx context.Context, st *State, text string) Turn {
	if c.music == nil {
		return Turn{Reply: "YouTube search library not available, mitra.", Handled: true}
	}

	start := time.Now()
	track, err := c.music.Lookup(ctx, text)
	c.metrics.MusicDuration.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		slog.Error("music lookup failed", "query", text, "error", err)
		return Turn{Reply: replyMusicError, Handled: true}
	}
	if track == nil {
		return Turn{Reply: replyNoMelody, Handled: true}
	}

	st.NowPlaying = track
	return Turn{
		Reply:   fmt.Sprintf("🎵 Now playing: %s\nLink: %s", track.Title, track.URL),
		Handled: true,
	}
}

// searchTurn runs a khoj web search and has the LLM narrate the results.
func (c *Controller) searchTurn(ctx context.Context, text string) Turn {
	if c.searcher == nil {
		return Turn{Reply: "Tavily API key not configured, mitra.", Handled: true}
	}

	start := time.Now()
	resp, err := c.searcher.Search(ctx, text, 3)
	c.metrics.SearchDuration.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		slog.Error("web search failed", "query", text, "error", err)
		return Turn{Reply: replySearchError, Handled: true}
	}
	if len(resp.Results) == 0 {
		return Turn{Reply: fmt.Sprintf("No results found for '%s', mitra.", text), Handled: true}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🔍 Khoj results for '%s':\n\n", text)
	for i, r := range resp.Results {
		if i >= 3 {
			break
		}
		fmt.Fprintf(&sb, "%d. %s\n%s\n\n", i+1, r.Title, r.URL)
	}

	reply, err := c.chat.Chat(ctx, SystemPrompt,
		fmt.Sprintf("Summarize these search results about '%s' in Hanuman's divine style:\n%s", text, sb.String()))
	if err != nil {
		slog.Warn("search summary failed", "query", text, "error", err)
		reply = replyApology
	}
	return Turn{Reply: reply, Handled: true}
}
