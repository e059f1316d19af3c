// session.go — MCP session lifecycle: creation, touch, TTL pruning, and SSE
// attachment tracking. Adapted from the teacher's cmd/dev-console/sse.go
// SSERegistry: session IDs keep the same crypto/rand 128-bit-hex generator,
// generalized from a single SSE-connection-per-session map into a full
// Session value (protocol version, initialized flag, project state owner)
// with its own live-connection set.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/ashfox/ashfox-mcp/internal/project"
)

// GenerateID mints an opaque 128-bit hex session identifier.
func GenerateID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("sess-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// Session is a stateful envelope tying a client's requests and SSE streams
// together (spec.md §3).
type Session struct {
	ID              string
	ProtocolVersion string
	Initialized     bool
	CreatedAt       time.Time
	LastSeen        time.Time
	PrincipalFP     string // optional bound principal fingerprint

	// Project is this session's own versioned project-state handle
	// (spec.md §3: project state is scoped to a session, not shared).
	Project *project.Project

	mu          sync.Mutex
	connections map[string]*SSEConnection
}

func newSession(id, protocolVersion string, now time.Time) *Session {
	return &Session{
		ID:              id,
		ProtocolVersion: protocolVersion,
		CreatedAt:       now,
		LastSeen:        now,
		Project:         project.New(id, "untitled"),
		connections:     make(map[string]*SSEConnection),
	}
}

// Touch updates LastSeen. Callers hold the Store's lock for the lookup; this
// method has its own mutex for the touch itself since sessions may be read
// concurrently with connection attach/detach.
func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	s.LastSeen = now
	s.mu.Unlock()
}

// AttachSSE registers a live SSE connection under connID.
func (s *Session) AttachSSE(connID string, conn *SSEConnection) {
	s.mu.Lock()
	s.connections[connID] = conn
	s.mu.Unlock()
}

// DetachSSE removes a live SSE connection.
func (s *Session) DetachSSE(connID string) {
	s.mu.Lock()
	delete(s.connections, connID)
	s.mu.Unlock()
}

// LiveConnectionCount returns the number of attached SSE connections.
func (s *Session) LiveConnectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.connections)
}

// Connections returns a snapshot slice of currently attached connections.
func (s *Session) Connections() []*SSEConnection {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*SSEConnection, 0, len(s.connections))
	for _, c := range s.connections {
		out = append(out, c)
	}
	return out
}

// Broadcast writes an SSE event to every live connection of this session.
// Per-subscriber emission order is preserved; across subscribers order is
// unspecified (spec.md §5).
func (s *Session) Broadcast(event, dataJSON string) {
	for _, c := range s.Connections() {
		_ = c.WriteEvent(event, dataJSON)
	}
}

// IsIdleBeyond reports whether the session has been idle longer than ttl as
// of now, and has no live SSE connections (the pruning invariant in
// spec.md §3/§8 invariant 3).
func (s *Session) IsIdleBeyond(ttl time.Duration, now time.Time) bool {
	if s.LiveConnectionCount() > 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.LastSeen) > ttl
}
