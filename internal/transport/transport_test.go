package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ashfox/ashfox-mcp/internal/config"
	"github.com/ashfox/ashfox-mcp/internal/editorport"
	"github.com/ashfox/ashfox-mcp/internal/logx"
	"github.com/ashfox/ashfox-mcp/internal/resourcestore"
	"github.com/ashfox/ashfox-mcp/internal/revguard"
	"github.com/ashfox/ashfox-mcp/internal/router"
	"github.com/ashfox/ashfox-mcp/internal/session"
)

func newTestServer(token string) *Server {
	cfg := config.Config{Host: "127.0.0.1", Port: 8787, Path: "/mcp", Token: token, LogLevel: logx.LevelError}
	rt := router.New(
		session.NewStore(session.DefaultTTL),
		resourcestore.New(),
		editorport.NewMemoryPort(),
		revguard.Policy{RequireRevision: true},
		logx.New("test", logx.LevelError),
	)
	return New(cfg, rt, logx.New("test", logx.LevelError))
}

func postJSON(t *testing.T, h http.Handler, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestInitializeOverHTTPReturnsSessionHeader(t *testing.T) {
	s := newTestServer("")
	rec := postJSON(t, s.Handler(), "/mcp", `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-06-18"}}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("Mcp-Session-Id") == "" {
		t.Fatalf("expected Mcp-Session-Id response header")
	}
}

func TestWrongContentTypeIs415(t *testing.T) {
	s := newTestServer("")
	req := httptest.NewRequest(http.MethodPost, "/mcp", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", rec.Code)
	}
}

func TestMissingBearerTokenIs401(t *testing.T) {
	s := newTestServer("secret")
	rec := postJSON(t, s.Handler(), "/mcp", `{"jsonrpc":"2.0","id":1,"method":"ping"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestValidBearerTokenIsAccepted(t *testing.T) {
	s := newTestServer("secret")
	rec := postJSON(t, s.Handler(), "/mcp", `{"jsonrpc":"2.0","id":1,"method":"ping"}`, map[string]string{"Authorization": "Bearer secret"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUnsupportedMethodIs405(t *testing.T) {
	s := newTestServer("")
	req := httptest.NewRequest(http.MethodPatch, "/mcp", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestOversizedBodyIs413(t *testing.T) {
	s := newTestServer("")
	big := bytes.Repeat([]byte("a"), maxBodyBytes+1024)
	body := `{"jsonrpc":"2.0","id":1,"method":"ping","params":{"pad":"` + string(big) + `"}}`
	rec := postJSON(t, s.Handler(), "/mcp", body, nil)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHealthzBypassesBasePathAndAuth(t *testing.T) {
	s := newTestServer("secret")
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("expected status ok, got %v", body)
	}
}

func TestDeleteDetachesSession(t *testing.T) {
	s := newTestServer("")
	initResp := postJSON(t, s.Handler(), "/mcp", `{"jsonrpc":"2.0","id":1,"method":"initialize"}`, nil)
	sessID := initResp.Header().Get("Mcp-Session-Id")

	req := httptest.NewRequest(http.MethodDelete, "/mcp", nil)
	req.Header.Set("Mcp-Session-Id", sessID)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// A second DELETE on the now-gone session still returns 200 (idempotent).
	rec2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodDelete, "/mcp", nil)
	req2.Header.Set("Mcp-Session-Id", sessID)
	s.Handler().ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusOK {
		t.Fatalf("expected 200 on repeat delete, got %d", rec2.Code)
	}
}
