// Package conversation implements the mode state machine at the heart of the
// assistant: wake-word gating, mode selection, per-mode turn handling, and the
// best-of-three rock-paper-scissors game.
//
// All state lives in an explicit [State] value owned by the caller (one per
// session); the package itself holds no globals, so any number of sessions can
// run concurrently as long as each State is externally serialised.
package conversation

import (
	"time"

	"github.com/TestingGuyz/hanuman/pkg/provider/music"
)

// Mode is the current position in the conversation state machine.
type Mode string

const (
	// ModeIdle is the dormant state. Only the wake word (or help/exit) gets a
	// response; everything else is silently ignored.
	ModeIdle Mode = "idle"

	// ModeActive is the awake main menu. The user picks one of the five
	// interaction modes from here.
	ModeActive Mode = "active"

	// ModeAagya is the advisory/chat mode.
	ModeAagya Mode = "aagya"

	// ModeHasya is the humor mode.
	ModeHasya Mode = "hasya"

	// ModeYudha is the rock-paper-scissors game mode.
	ModeYudha Mode = "yudha"

	// ModeGandharva is the music request mode.
	ModeGandharva Mode = "gandharva"

	// ModeKhoj is the web search mode.
	ModeKhoj Mode = "khoj"
)

// GameScore tracks one best-of-three rock-paper-scissors match.
type GameScore struct {
	User   int `json:"user"`
	AI     int `json:"ai"`
	Rounds int `json:"rounds"`
}

// HistoryEntry is one logged message in a session's conversation history.
type HistoryEntry struct {
	// Role is "user", "ai", or "system".
	Role string `json:"role"`

	// Content is the message text.
	Content string `json:"content"`

	// Timestamp records when the entry was added.
	Timestamp time.Time `json:"timestamp"`
}

// State is the complete conversation state of one session. It is not safe for
// concurrent use; callers serialise access per session.
type State struct {
	// Mode is the current state machine position.
	Mode Mode

	// Context holds mode-scoped scratch data, cleared on every mode change.
	Context map[string]any

	// GameScore is the running rock-paper-scissors match score.
	GameScore GameScore

	// History is the ordered conversation log.
	History []HistoryEntry

	// NowPlaying is the track most recently resolved in gandharva mode, or nil.
	NowPlaying *music.Track
}

// NewState returns a State in the idle mode with empty context.
func NewState() *State {
	return &State{
		Mode:    ModeIdle,
		Context: map[string]any{},
	}
}

// ResetGame zeroes the rock-paper-scissors score.
func (s *State) ResetGame() {
	s.GameScore = GameScore{}
}

// ClearContext drops all mode-scoped scratch data.
func (s *State) ClearContext() {
	s.Context = map[string]any{}
}

// AddMessage appends an entry to the conversation history with the current
// time.
func (s *State) AddMessage(role, content string) {
	s.History = append(s.History, HistoryEntry{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// LastMessage returns the content of the most recent history entry, or ""
// when the history is empty.
func (s *State) LastMessage() string {
	if len(s.History) == 0 {
		return ""
	}
	return s.History[len(s.History)-1].Content
}
