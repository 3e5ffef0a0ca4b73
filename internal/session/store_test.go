package session_test

import (
	"sync"
	"testing"
	"time"

	"github.com/TestingGuyz/hanuman/internal/conversation"
	"github.com/TestingGuyz/hanuman/internal/session"
)

func TestGetOrCreateGeneratesID(t *testing.T) {
	t.Parallel()

	store := session.NewStore()
	s, created, err := store.GetOrCreate("")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if !created {
		t.Error("fresh session not reported as created")
	}
	if len(s.ID) != 32 {
		t.Errorf("expected 32-char hex ID, got %q", s.ID)
	}
	if store.Count() != 1 {
		t.Errorf("expected 1 session, got %d", store.Count())
	}
}

func TestGetOrCreateReturnsExisting(t *testing.T) {
	t.Parallel()

	store := session.NewStore()
	first, created, err := store.GetOrCreate("caller-1")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if !created {
		t.Error("first GetOrCreate not reported as a creation")
	}
	second, created, err := store.GetOrCreate("caller-1")
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if created {
		t.Error("second GetOrCreate reported a creation for a live session")
	}
	if first != second {
		t.Error("expected same session for same ID")
	}
	if store.Count() != 1 {
		t.Errorf("expected 1 session, got %d", store.Count())
	}
}

func TestFreshSessionsGetDistinctIDs(t *testing.T) {
	t.Parallel()

	store := session.NewStore()
	a, _, _ := store.GetOrCreate("")
	b, _, _ := store.GetOrCreate("")
	if a.ID == b.ID {
		t.Errorf("two fresh sessions share ID %q", a.ID)
	}
	if store.Count() != 2 {
		t.Errorf("expected 2 sessions, got %d", store.Count())
	}
}

func TestStatePersistsAcrossRuns(t *testing.T) {
	t.Parallel()

	store := session.NewStore()
	s, _, _ := store.GetOrCreate("caller-1")

	s.Run(func(st *conversation.State) {
		if st.Mode != conversation.ModeIdle {
			t.Errorf("new session mode = %q, want idle", st.Mode)
		}
		st.Mode = conversation.ModeActive
	})

	again, _, _ := store.GetOrCreate("caller-1")
	again.Run(func(st *conversation.State) {
		if st.Mode != conversation.ModeActive {
			t.Errorf("mode = %q after earlier turn, want active", st.Mode)
		}
	})
}

func TestRunSerialisesTurns(t *testing.T) {
	t.Parallel()

	store := session.NewStore()
	s, _, _ := store.GetOrCreate("caller-1")

	const turns = 50
	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Run(func(st *conversation.State) {
				st.GameScore.Rounds++
			})
		}()
	}
	wg.Wait()

	s.Run(func(st *conversation.State) {
		if st.GameScore.Rounds != turns {
			t.Errorf("rounds = %d after %d serialised turns", st.GameScore.Rounds, turns)
		}
	})
}

func TestGet(t *testing.T) {
	t.Parallel()

	store := session.NewStore()
	if _, ok := store.Get("missing"); ok {
		t.Error("Get on empty store reported a session")
	}
	made, _, _ := store.GetOrCreate("caller-1")
	got, ok := store.Get("caller-1")
	if !ok || got != made {
		t.Error("Get did not return the created session")
	}
}

func TestExpire(t *testing.T) {
	t.Parallel()

	store := session.NewStore()
	stale, _, _ := store.GetOrCreate("stale")
	_ = stale

	time.Sleep(10 * time.Millisecond)
	cutoff := time.Now()

	fresh, _, _ := store.GetOrCreate("fresh")
	fresh.Run(func(st *conversation.State) {})

	dropped := store.Expire(cutoff)
	if dropped != 1 {
		t.Errorf("expired %d sessions, want 1", dropped)
	}
	if _, ok := store.Get("stale"); ok {
		t.Error("stale session survived Expire")
	}
	if _, ok := store.Get("fresh"); !ok {
		t.Error("fresh session was expired")
	}
}
