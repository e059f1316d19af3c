package session

import (
	"testing"
	"time"
)

func TestCreateAndGetTouchesLastSeen(t *testing.T) {
	st := NewStore(DefaultTTL)
	s := st.Create("2025-06-18")
	before := s.LastSeen

	time.Sleep(2 * time.Millisecond)
	got, ok := st.Get(s.ID)
	if !ok {
		t.Fatalf("expected session to be found")
	}
	if !got.LastSeen.After(before) {
		t.Fatalf("expected Get to touch LastSeen")
	}
}

func TestPruneRemovesIdleSessionsWithoutSSE(t *testing.T) {
	st := NewStore(10 * time.Millisecond)
	s := st.Create("2025-06-18")
	future := time.Now().Add(time.Hour)
	removed := st.Prune(future)
	if removed != 1 {
		t.Fatalf("expected 1 session pruned, got %d", removed)
	}
	if _, ok := st.Get(s.ID); ok {
		t.Fatalf("expected session to be gone")
	}
}

func TestPruneNeverRemovesSessionWithLiveSSE(t *testing.T) {
	st := NewStore(1 * time.Millisecond)
	s := st.Create("2025-06-18")

	conn := &SSEConnection{ID: "c1", SessionID: s.ID}
	s.AttachSSE("c1", conn)

	future := time.Now().Add(time.Hour)
	removed := st.Prune(future)
	if removed != 0 {
		t.Fatalf("expected 0 sessions pruned while SSE attached, got %d", removed)
	}
	if _, ok := st.Get(s.ID); !ok {
		t.Fatalf("expected session to survive prune")
	}
}

func TestPruneDisabledWhenTTLNonPositive(t *testing.T) {
	st := NewStore(0)
	st.Create("2025-06-18")
	removed := st.Prune(time.Now().Add(24 * time.Hour))
	if removed != 0 {
		t.Fatalf("expected pruning disabled, got %d removed", removed)
	}
}

func TestPruneIfDueThrottlesRepeatedCalls(t *testing.T) {
	st := NewStore(1 * time.Millisecond)
	st.Create("2025-06-18")
	future := time.Now().Add(time.Hour)

	removed1 := st.PruneIfDue(future)
	if removed1 != 1 {
		t.Fatalf("expected first prune pass to remove the idle session, got %d", removed1)
	}

	st.Create("2025-06-18")
	removed2 := st.PruneIfDue(future)
	if removed2 != 0 {
		t.Fatalf("expected throttled second pass to skip, got %d", removed2)
	}
}
