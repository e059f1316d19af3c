// sse.go — a single SSE connection's framing state.
// Adapted from the teacher's cmd/dev-console/sse.go SSEConnection/WriteEvent.
package session

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// SSEConnection represents one active Server-Sent Events stream attached to
// a session.
type SSEConnection struct {
	ID           string
	SessionID    string
	Writer       http.ResponseWriter
	Flusher      http.Flusher
	ConnectedAt  time.Time
	lastActivity atomic.Int64 // unix nanos
	nextEventID  atomic.Int64
	mu           sync.Mutex
}

// NewSSEConnection wraps w as an SSE sink, failing if it does not support
// flushing.
func NewSSEConnection(id, sessionID string, w http.ResponseWriter) (*SSEConnection, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("sse not supported: response writer does not implement http.Flusher")
	}
	c := &SSEConnection{
		ID:          id,
		SessionID:   sessionID,
		Writer:      w,
		Flusher:     flusher,
		ConnectedAt: time.Now(),
	}
	c.lastActivity.Store(time.Now().UnixNano())
	return c, nil
}

// WriteEvent writes a single SSE frame: "id: <n>\nevent: <name>\ndata: <json>\n\n"
// (spec.md §4.1).
func (c *SSEConnection) WriteEvent(event, dataJSON string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextEventID.Add(1)
	if _, err := fmt.Fprintf(c.Writer, "id: %d\nevent: %s\ndata: %s\n\n", id, event, dataJSON); err != nil {
		return err
	}
	c.Flusher.Flush()
	c.lastActivity.Store(time.Now().UnixNano())
	return nil
}

// WriteKeepAlive writes a comment-only keep-alive frame.
func (c *SSEConnection) WriteKeepAlive() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := fmt.Fprint(c.Writer, ": keepalive\n\n"); err != nil {
		return err
	}
	c.Flusher.Flush()
	c.lastActivity.Store(time.Now().UnixNano())
	return nil
}

// IdleFor reports how long since the connection last wrote anything.
func (c *SSEConnection) IdleFor(now time.Time) time.Duration {
	last := time.Unix(0, c.lastActivity.Load())
	return now.Sub(last)
}
