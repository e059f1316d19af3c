// store.go — the session store: a sessionId→Session map protected by a
// reader/writer lock, with throttled TTL pruning. Adapted from the
// teacher's SSERegistry (cmd/dev-console/sse.go), generalized from a
// connection-only registry into full session lifecycle management.
package session

import (
	"sync"
	"time"

	"github.com/ashfox/ashfox-mcp/internal/metrics"
)

// DefaultTTL is the default idle timeout before an unattended session is
// pruned (spec.md §5).
const DefaultTTL = 30 * time.Minute

// pruneThrottle bounds how often a prune pass actually scans the store,
// even if PruneIfDue is called on every request (spec.md §5: "at most
// every 60s").
const pruneThrottle = 60 * time.Second

// Store holds all live sessions for one server process.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration

	pruneMu     sync.Mutex
	lastPruneAt time.Time
}

// NewStore creates a Store with the given idle TTL. ttl<=0 disables
// pruning entirely.
func NewStore(ttl time.Duration) *Store {
	return &Store{sessions: make(map[string]*Session), ttl: ttl}
}

// Create mints a new session with the given negotiated protocol version.
func (st *Store) Create(protocolVersion string) *Session {
	now := time.Now()
	s := newSession(GenerateID(), protocolVersion, now)
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	metrics.SessionsActive.Inc()
	return s
}

// CreateEphemeral mints an implicit, already-initialized session for
// implicit-session methods (spec.md §4.2 rule 5).
func (st *Store) CreateEphemeral(protocolVersion string) *Session {
	s := st.Create(protocolVersion)
	s.Initialized = true
	return s
}

// Get looks up a session by ID and touches it if found.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		s.Touch(time.Now())
	}
	return s, ok
}

// Delete removes a session outright (used by DELETE <base>).
func (st *Store) Delete(id string) {
	st.mu.Lock()
	_, existed := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if existed {
		metrics.SessionsActive.Dec()
	}
}

// Count returns the number of live sessions.
func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// All returns a snapshot of every live session, for broadcast or
// diagnostics.
func (st *Store) All() []*Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		out = append(out, s)
	}
	return out
}

// PruneIfDue runs a prune pass if one hasn't run in the last pruneThrottle
// interval. Safe to call on every incoming request. TTL<=0 disables
// pruning (spec.md §5).
func (st *Store) PruneIfDue(now time.Time) int {
	if st.ttl <= 0 {
		return 0
	}
	st.pruneMu.Lock()
	if now.Sub(st.lastPruneAt) < pruneThrottle {
		st.pruneMu.Unlock()
		return 0
	}
	st.lastPruneAt = now
	st.pruneMu.Unlock()
	return st.Prune(now)
}

// Prune removes every session idle beyond the store's TTL with no live SSE
// connections (spec.md invariant 3: a session with >=1 live SSE is never
// pruned). Returns the number of sessions removed.
func (st *Store) Prune(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		if s.IsIdleBeyond(st.ttl, now) {
			delete(st.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		metrics.SessionsActive.Sub(float64(removed))
	}
	return removed
}
