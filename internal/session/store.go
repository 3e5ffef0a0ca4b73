// Package session tracks per-caller conversation sessions.
//
// Each HTTP caller is identified by an opaque session ID; the server creates
// one on the first voice turn and the client echoes it back on subsequent
// turns. A session owns exactly one conversation state, and turns within a
// session are serialised so the state machine never sees interleaved
// utterances. Different sessions proceed independently.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/TestingGuyz/hanuman/internal/conversation"
)

// Session is one caller's conversation. All turn processing goes through
// [Session.Run], which serialises access to the state.
type Session struct {
	// ID is the opaque identifier handed to the client.
	ID string

	// CreatedAt is when the session was first seen.
	CreatedAt time.Time

	mu         sync.Mutex
	state      *conversation.State
	lastActive time.Time
}

// Run executes fn with exclusive access to the session's state. Concurrent
// turns on the same session queue up behind each other.
func (s *Session) Run(fn func(st *conversation.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	fn(s.state)
}

// LastActive returns the time of the most recent Run call.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Store is a concurrency-safe registry of live sessions.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// GetOrCreate returns the session with the given ID, creating it if unknown.
// An empty id always creates a fresh session with a server-generated ID.
// created reports whether this call brought the session into existence, so
// callers can maintain a live-session gauge.
func (st *Store) GetOrCreate(id string) (sess *Session, created bool, err error) {
	if id != "" {
		st.mu.RLock()
		s, ok := st.sessions[id]
		st.mu.RUnlock()
		if ok {
			return s, false, nil
		}
	}

	newID := id
	if newID == "" {
		generated, genErr := generateID()
		if genErr != nil {
			return nil, false, fmt.Errorf("session: generate id: %w", genErr)
		}
		newID = generated
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[newID]; ok {
		return s, false, nil
	}
	now := time.Now()
	s := &Session{
		ID:         newID,
		CreatedAt:  now,
		state:      conversation.NewState(),
		lastActive: now,
	}
	st.sessions[newID] = s
	return s, true, nil
}

// Get returns the session with the given ID, if it exists.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Count returns the number of live sessions.
func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Expire removes sessions whose last activity is older than cutoff and
// returns how many were dropped.
func (st *Store) Expire(cutoff time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	dropped := 0
	for id, s := range st.sessions {
		if s.LastActive().Before(cutoff) {
			delete(st.sessions, id)
			dropped++
		}
	}
	return dropped
}

// generateID returns a 32-character hex session ID from crypto/rand.
func generateID() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf[:]), nil
}
