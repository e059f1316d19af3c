package router

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ashfox/ashfox-mcp/internal/editorport"
	"github.com/ashfox/ashfox-mcp/internal/jsonrpc"
	"github.com/ashfox/ashfox-mcp/internal/logx"
	"github.com/ashfox/ashfox-mcp/internal/mcptypes"
	"github.com/ashfox/ashfox-mcp/internal/resourcestore"
	"github.com/ashfox/ashfox-mcp/internal/revguard"
	"github.com/ashfox/ashfox-mcp/internal/session"
)

func newTestRouter(requireRevision bool) *Router {
	return New(
		session.NewStore(session.DefaultTTL),
		resourcestore.New(),
		editorport.NewMemoryPort(),
		revguard.Policy{RequireRevision: requireRevision},
		logx.New("test", logx.LevelError),
	)
}

func req(id any, method string, params any) jsonrpc.Request {
	var raw json.RawMessage
	if params != nil {
		raw, _ = json.Marshal(params)
	}
	data, _ := json.Marshal(map[string]any{"jsonrpc": "2.0", "id": id, "method": method, "params": json.RawMessage(raw)})
	var r jsonrpc.Request
	_ = json.Unmarshal(data, &r)
	return r
}

func TestInitializeMintsSessionAndNegotiatesVersion(t *testing.T) {
	rt := newTestRouter(true)
	res := rt.ResolveSession("", "", "initialize")
	if res.Err != nil || res.Session == nil {
		t.Fatalf("expected a minted session, got err=%v", res.Err)
	}

	resp := rt.Handle(context.Background(), res.Session, req("1", "initialize", map[string]any{"protocolVersion": "bogus"}))
	if resp == nil || resp.Error != nil {
		t.Fatalf("expected a successful initialize response, got %+v", resp)
	}
	var result mcptypes.InitializeResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if result.ProtocolVersion != mcptypes.DefaultProtocolVersion {
		t.Fatalf("expected fallback to default protocol version, got %q", result.ProtocolVersion)
	}
}

func TestToolsListIsImplicitSession(t *testing.T) {
	rt := newTestRouter(true)
	res := rt.ResolveSession("", "", "tools/list")
	if res.Err != nil || res.Session == nil {
		t.Fatalf("expected an ephemeral session, got err=%v", res.Err)
	}
	if !res.Session.Initialized {
		t.Fatalf("expected ephemeral session to be pre-initialized")
	}

	resp := rt.Handle(context.Background(), res.Session, req("1", "tools/list", nil))
	if resp == nil || resp.Error != nil {
		t.Fatalf("expected a successful tools/list response, got %+v", resp)
	}
	var result mcptypes.ToolsListResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if len(result.Tools) == 0 {
		t.Fatalf("expected at least one registered tool")
	}
}

func TestUnknownSessionIDIsRejected(t *testing.T) {
	rt := newTestRouter(true)
	res := rt.ResolveSession("does-not-exist", "", "get_project_state")
	if res.Err == nil {
		t.Fatalf("expected an error for an unknown session id")
	}
	if res.Err.Code != jsonrpc.CodeInvalidRequest {
		t.Fatalf("expected CodeInvalidRequest, got %d", res.Err.Code)
	}
}

func TestToolsCallRequiresMatchingRevision(t *testing.T) {
	rt := newTestRouter(true)
	res := rt.ResolveSession("", "", "tools/call")
	sess := res.Session

	resp := rt.Handle(context.Background(), sess, req("1", "tools/call", map[string]any{
		"name":      "add_bone",
		"arguments": map[string]any{"name": "root", "pivot": []float64{0, 0, 0}},
	}))
	var result mcptypes.CallToolResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected a revision-required failure, got %+v", result)
	}
}

func TestToolsCallSucceedsWithCurrentRevision(t *testing.T) {
	rt := newTestRouter(true)
	res := rt.ResolveSession("", "", "tools/call")
	sess := res.Session
	current := sess.Project.CurrentRevision()

	resp := rt.Handle(context.Background(), sess, req("1", "tools/call", map[string]any{
		"name":      "add_bone",
		"arguments": map[string]any{"name": "root", "pivot": []float64{0, 0, 0}, "ifRevision": current},
	}))
	var result mcptypes.CallToolResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error %+v", result.StructuredContent)
	}
}

func TestNotificationsInitializedMarksSessionInitialized(t *testing.T) {
	rt := newTestRouter(true)
	sess := rt.Sessions.Create(mcptypes.DefaultProtocolVersion)
	sess.Initialized = false

	resp := rt.Handle(context.Background(), sess, req(nil, "notifications/initialized", nil))
	if resp != nil {
		t.Fatalf("expected no response for a notification, got %+v", resp)
	}
	if !sess.Initialized {
		t.Fatalf("expected notifications/initialized to mark the session initialized")
	}
}

func TestResourcesReadUnknownURI(t *testing.T) {
	rt := newTestRouter(true)
	sess := rt.Sessions.CreateEphemeral(mcptypes.DefaultProtocolVersion)

	resp := rt.Handle(context.Background(), sess, req("1", "resources/read", map[string]any{"uri": "ashfox://nope"}))
	if resp == nil || resp.Error == nil {
		t.Fatalf("expected a JSON-RPC error for an unknown resource uri")
	}
	if resp.Error.Code != jsonrpc.CodeInvalidParams {
		t.Fatalf("expected CodeInvalidParams, got %d", resp.Error.Code)
	}
}
