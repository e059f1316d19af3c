// transport.go — the HTTP+JSON-RPC+SSE surface (spec.md §4.1). Bounded
// body, method/content-type/CORS/bearer enforcement, SSE framing, and a
// DELETE-based session teardown all live here; the transport never parses
// domain objects, it only hands the router a decoded jsonrpc.Request and
// writes back whatever jsonrpc.Response (or SSE frame) the router
// produces. Grounded on the teacher's cmd/dev-console/handler.go
// (HandleHTTP's MaxBytesReader pattern) and server_middleware.go
// (corsMiddleware's Host/Origin validation), generalized from the
// teacher's X-Gasoline-Key header into an Authorization: Bearer check.
package transport

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ashfox/ashfox-mcp/internal/config"
	"github.com/ashfox/ashfox-mcp/internal/jsonrpc"
	"github.com/ashfox/ashfox-mcp/internal/logx"
	"github.com/ashfox/ashfox-mcp/internal/metrics"
	"github.com/ashfox/ashfox-mcp/internal/router"
	"github.com/ashfox/ashfox-mcp/internal/session"
)

// maxBodyBytes is the bounded request body size (spec.md §4.1).
const maxBodyBytes = 5_000_000

// readTimeout bounds how long the server waits to read a request body
// (spec.md §4.1).
const readTimeout = 30 * time.Second

// sseKeepAliveInterval is how often an attached SSE stream receives a
// comment-only keep-alive frame (spec.md §4.1).
const sseKeepAliveInterval = 15 * time.Second

// sseWriteStallTimeout closes an SSE connection whose scheduled keep-alive
// is this long overdue: no write has completed within sseKeepAliveInterval
// plus this timeout (spec.md §5).
const sseWriteStallTimeout = 10 * time.Second

var startedAt = time.Now()

// Server wires the configured transport rules around a Router.
type Server struct {
	Config config.Config
	Router *router.Router
	Log    *logx.Logger
}

// New builds a transport Server.
func New(cfg config.Config, rt *router.Router, log *logx.Logger) *Server {
	return &Server{Config: cfg, Router: rt, Log: log}
}

// Handler builds the complete http.Handler: the JSON-RPC/SSE base path
// plus the ambient /healthz and /metrics endpoints, which bypass
// base-path and session checks entirely (spec.md §4.1 SUPPLEMENT).
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.Config.Path, s.handleBase)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	uptime := int64(time.Since(startedAt).Seconds())
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "uptime_s": uptime})
}

// handleBase is the single entry point for the configured base path:
// OPTIONS (CORS preflight), GET (SSE attach or 406), POST (JSON-RPC), and
// DELETE (session teardown).
func (s *Server) handleBase(w http.ResponseWriter, r *http.Request) {
	s.applyCORS(w, r)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if !s.checkBearer(w, r) {
		return
	}

	switch r.Method {
	case http.MethodPost:
		s.handleJSONRPC(w, r)
	case http.MethodGet:
		s.handleGet(w, r)
	case http.MethodDelete:
		s.handleDelete(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
	}
}

// applyCORS mirrors the teacher's corsMiddleware: echoes back the request
// Origin (never a wildcard), and advertises the allowed methods/headers
// with a 1-day preflight cache (spec.md §4.1).
func (s *Server) applyCORS(w http.ResponseWriter, r *http.Request) {
	if origin := r.Header.Get("Origin"); origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
	}
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "content-type, last-event-id, authorization, mcp-session-id, mcp-protocol-version")
	w.Header().Set("Access-Control-Max-Age", "86400")
}

// checkBearer enforces the optional bearer token using a constant-time
// comparison (grounded on the teacher's AuthMiddleware, cmd/dev-console/
// auth.go). Returns false after writing a 401 if the check failed.
func (s *Server) checkBearer(w http.ResponseWriter, r *http.Request) bool {
	if s.Config.Token == "" {
		return true
	}
	want := "Bearer " + s.Config.Token
	got := r.Header.Get("Authorization")
	if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	return true
}

func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		writeError(w, http.StatusUnsupportedMediaType, "unsupported_media_type")
		return
	}

	// The socket-level 30s read deadline is enforced by http.Server.ReadTimeout
	// (cmd/ashfox-mcp/main.go); this context additionally bounds how long a
	// tool call may block on router/EditorPort work once the body is in hand.
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
	defer cancel()

	var body json.RawMessage
	decodeErr := json.NewDecoder(r.Body).Decode(&body)
	if decodeErr != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(decodeErr, &maxErr):
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large")
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			writeError(w, http.StatusRequestTimeout, "request_timeout")
		case errors.Is(decodeErr, context.Canceled):
			writeError(w, 499, "request_aborted")
		default:
			resp := jsonrpc.NewError(nil, jsonrpc.CodeParseError, "parse error: "+decodeErr.Error())
			writeJSON(w, http.StatusOK, resp)
		}
		return
	}

	var req jsonrpc.Request
	if err := json.Unmarshal(body, &req); err != nil {
		resp := jsonrpc.NewError(nil, jsonrpc.CodeParseError, "parse error: "+err.Error())
		writeJSON(w, http.StatusOK, resp)
		return
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		resp := jsonrpc.NewError(req.ID, jsonrpc.CodeInvalidRequest, "request must carry jsonrpc:\"2.0\" and a string method")
		writeJSON(w, http.StatusOK, resp)
		return
	}

	s.Router.Sessions.PruneIfDue(time.Now())

	resolution := s.Router.ResolveSession(r.Header.Get("Mcp-Session-Id"), r.Header.Get("Mcp-Protocol-Version"), req.Method)
	if resolution.Err != nil {
		resp := jsonrpc.Response{JSONRPC: "2.0", ID: req.ID, Error: resolution.Err}
		metrics.ObserveRequest(req.Method, "session_error")
		writeJSON(w, http.StatusOK, resp)
		return
	}
	sess := resolution.Session

	resp := s.Router.Handle(ctx, sess, req)
	if resp == nil {
		metrics.ObserveRequest(req.Method, "notification")
		w.Header().Set("Mcp-Session-Id", sess.ID)
		w.WriteHeader(http.StatusAccepted)
		return
	}

	status := "ok"
	if resp.Error != nil {
		status = "error"
	}
	metrics.ObserveRequest(req.Method, status)

	w.Header().Set("Mcp-Session-Id", sess.ID)
	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		s.writeSingleSSEEvent(w, *resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeSingleSSEEvent(w http.ResponseWriter, resp jsonrpc.Response) {
	data, _ := json.Marshal(resp)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("id: 1\nevent: message\ndata: " + string(data) + "\n\n"))
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// handleGet serves the long-lived SSE attach for a known session: GET at
// the base path with Accept: text/event-stream (spec.md §4.2).
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if !strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		writeError(w, http.StatusNotAcceptable, "not_acceptable")
		return
	}

	sessID := r.Header.Get("Mcp-Session-Id")
	sess, ok := s.Router.Sessions.Get(sessID)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown_session")
		return
	}

	conn, err := session.NewSSEConnection(session.GenerateID(), sess.ID, w)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sse_unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	sess.AttachSSE(conn.ID, conn)
	metrics.SSEAttached()
	defer func() {
		sess.DetachSSE(conn.ID)
		metrics.SSEDetached()
	}()

	ticker := time.NewTicker(sseKeepAliveInterval)
	defer ticker.Stop()
	stallCheck := time.NewTicker(time.Second)
	defer stallCheck.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if err := conn.WriteKeepAlive(); err != nil {
				return
			}
		case now := <-stallCheck.C:
			if conn.IdleFor(now) > sseKeepAliveInterval+sseWriteStallTimeout {
				return
			}
		}
	}
}

// handleDelete removes the session named by Mcp-Session-Id from the store
// (spec.md §4.1 SUPPLEMENT). SSE streams already attached to that session
// are not closed here; each ends when its client disconnects or its writes
// stall.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	sessID := r.Header.Get("Mcp-Session-Id")
	if sessID == "" {
		writeError(w, http.StatusBadRequest, "missing_session_id")
		return
	}
	s.Router.Sessions.Delete(sessID)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]any{"error": map[string]string{
		"code":    code,
		"message": strings.ReplaceAll(code, "_", " "),
	}})
}
