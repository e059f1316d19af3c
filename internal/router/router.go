// router.go — JSON-RPC method routing (spec.md §4.2): session resolution
// (including implicit-session minting), protocol-version negotiation,
// and per-method dispatch. Adapted from the teacher's cmd/dev-console
// handler.go mcpMethodHandlers table: a map[string]methodHandler keyed by
// JSON-RPC method name, generalized to carry a resolved *session.Session
// and the project/tool dispatcher instead of the teacher's single global
// capture buffer.
package router

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ashfox/ashfox-mcp/internal/editorport"
	"github.com/ashfox/ashfox-mcp/internal/jsonrpc"
	"github.com/ashfox/ashfox-mcp/internal/logx"
	"github.com/ashfox/ashfox-mcp/internal/mcptypes"
	"github.com/ashfox/ashfox-mcp/internal/resourcestore"
	"github.com/ashfox/ashfox-mcp/internal/revguard"
	"github.com/ashfox/ashfox-mcp/internal/session"
	"github.com/ashfox/ashfox-mcp/internal/toolerr"
	"github.com/ashfox/ashfox-mcp/internal/toolset"
)

// ServerName/ServerVersion identify this server in initialize responses.
const (
	ServerName    = "ashfox-mcp"
	ServerVersion = "0.1.0"
)

// Router dispatches JSON-RPC requests against sessions, the tool registry,
// and the resource store.
type Router struct {
	Sessions  *session.Store
	Resources *resourcestore.Store
	Editor    editorport.Port
	Policy    revguard.Policy
	Log       *logx.Logger
}

// New builds a Router.
func New(sessions *session.Store, resources *resourcestore.Store, editor editorport.Port, policy revguard.Policy, log *logx.Logger) *Router {
	return &Router{Sessions: sessions, Resources: resources, Editor: editor, Policy: policy, Log: log}
}

// SessionResolution is the outcome of resolving an incoming request's
// session, for the transport to attach Mcp-Session-Id on the response.
type SessionResolution struct {
	Session *session.Session
	Minted  bool
	Err     *jsonrpc.Error
}

// ResolveSession implements spec.md §4.2 rules 3, 5, and 6. Before
// initialize, only initialize is accepted; "tools/list" and the rest of
// the implicit-session set may mint an ephemeral, pre-initialized session
// when no Mcp-Session-Id header was supplied; every other method requires
// a known, initialized session whose stored protocol version matches the
// request's Mcp-Protocol-Version header, when one is present.
func (rt *Router) ResolveSession(headerSessionID, protocolVersionHeader, method string) SessionResolution {
	if method == "initialize" {
		return SessionResolution{Session: rt.Sessions.Create(mcptypes.DefaultProtocolVersion), Minted: true}
	}

	if headerSessionID != "" {
		sess, ok := rt.Sessions.Get(headerSessionID)
		if !ok {
			return SessionResolution{Err: &jsonrpc.Error{Code: jsonrpc.CodeInvalidRequest, Message: "unknown Mcp-Session-Id"}}
		}
		if protocolVersionHeader != "" && protocolVersionHeader != sess.ProtocolVersion {
			return SessionResolution{Err: &jsonrpc.Error{Code: jsonrpc.CodeInvalidRequest, Message: "Mcp-Protocol-Version mismatch"}}
		}
		if !mcptypes.IsImplicitSessionMethod(method) && !sess.Initialized {
			return SessionResolution{Err: &jsonrpc.Error{Code: jsonrpc.CodeServerNotInited, Message: "session is not initialized"}}
		}
		return SessionResolution{Session: sess}
	}

	if mcptypes.IsImplicitSessionMethod(method) {
		return SessionResolution{Session: rt.Sessions.CreateEphemeral(mcptypes.DefaultProtocolVersion), Minted: true}
	}

	return SessionResolution{Err: &jsonrpc.Error{Code: jsonrpc.CodeServerNotInited, Message: "Mcp-Session-Id is required for method " + method}}
}

type methodHandler func(rt *Router, ctx context.Context, sess *session.Session, req jsonrpc.Request) jsonrpc.Response

var methodHandlers = map[string]methodHandler{
	"initialize":               (*Router).handleInitialize,
	"tools/list":               (*Router).handleToolsList,
	"tools/call":               (*Router).handleToolsCall,
	"resources/list":           (*Router).handleResourcesList,
	"resources/read":           (*Router).handleResourcesRead,
	"resources/templates/list": (*Router).handleResourcesTemplatesList,
	"ping":                     (*Router).handlePing,
}

// Handle routes one already-parsed JSON-RPC request against an already
// resolved session. Notifications (no id, or an explicit null id) return
// nil: per JSON-RPC 2.0 they never receive a response.
func (rt *Router) Handle(ctx context.Context, sess *session.Session, req jsonrpc.Request) *jsonrpc.Response {
	if req.IsNotification() {
		if req.Method == "notifications/initialized" {
			sess.Initialized = true
		}
		return nil
	}
	if req.HasInvalidID() {
		resp := jsonrpc.NewError(nil, jsonrpc.CodeInvalidRequest, "id must be a string, number, or absent")
		return &resp
	}

	handler, ok := methodHandlers[req.Method]
	if !ok {
		resp := jsonrpc.NewError(req.ID, jsonrpc.CodeMethodNotFound, "unknown method "+req.Method)
		return &resp
	}
	resp := handler(rt, ctx, sess, req)
	return &resp
}

func (rt *Router) handlePing(ctx context.Context, sess *session.Session, req jsonrpc.Request) jsonrpc.Response {
	return jsonrpc.NewResult(req.ID, map[string]any{})
}

type initializeParams struct {
	ProtocolVersion string `json:"protocolVersion"`
}

func (rt *Router) handleInitialize(ctx context.Context, sess *session.Session, req jsonrpc.Request) jsonrpc.Response {
	var params initializeParams
	_ = json.Unmarshal(req.Params, &params)

	sess.ProtocolVersion = mcptypes.NegotiateProtocolVersion(params.ProtocolVersion)
	sess.Initialized = true

	return jsonrpc.NewResult(req.ID, mcptypes.InitializeResult{
		ProtocolVersion: sess.ProtocolVersion,
		ServerInfo:      mcptypes.ServerInfo{Name: ServerName, Version: ServerVersion},
		Capabilities: mcptypes.Capabilities{
			Tools:     mcptypes.ToolsCapability{ListChanged: true},
			Resources: mcptypes.ResourcesCapability{},
		},
		Instructions: "Ashfox exposes project-state tools (bones, cubes, textures, animations) and a deterministic internal exporter. Call get_project_state first to obtain the current revision; mutating tools require ifRevision to match it.",
	})
}

func (rt *Router) handleToolsList(ctx context.Context, sess *session.Session, req jsonrpc.Request) jsonrpc.Response {
	names := toolset.Names()
	tools := make([]mcptypes.Tool, 0, len(names))
	for _, name := range names {
		def, _ := toolset.Lookup(name)
		schema, _ := toolset.Schema(name)
		tools = append(tools, mcptypes.Tool{Name: def.Name, Description: def.Description, InputSchema: schema})
	}
	return jsonrpc.NewResult(req.ID, mcptypes.ToolsListResult{Tools: tools})
}

type toolCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

func (rt *Router) handleToolsCall(ctx context.Context, sess *session.Session, req jsonrpc.Request) jsonrpc.Response {
	if len(toolset.Registry) == 0 {
		return rt.errorResult(req.ID, toolerr.New(toolerr.CodeToolRegistryEmpty, "no tools are registered"))
	}

	var params toolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return jsonrpc.NewError(req.ID, jsonrpc.CodeInvalidParams, "invalid tools/call params: "+err.Error())
	}

	def, ok := toolset.Lookup(params.Name)
	if !ok {
		return rt.errorResult(req.ID, toolerr.New(toolerr.CodeResourceNotFound, fmt.Sprintf("unknown tool %q", params.Name)))
	}

	if def.Mutating {
		ifRevision := argIfRevision(params.Arguments)
		current := sess.Project.CurrentRevision()
		if detail := revguard.Check(ctx, rt.Policy, ifRevision, current); detail != nil {
			return rt.errorResult(req.ID, detail)
		}
	}

	tc := &toolset.Context{Project: sess.Project, Editor: rt.Editor}
	result := toolset.Dispatch(ctx, tc, params.Name, params.Arguments)
	return rt.toolCallResult(req.ID, result)
}

func argIfRevision(args map[string]any) *string {
	v, ok := args["ifRevision"]
	if !ok {
		return nil
	}
	s, _ := v.(string)
	return &s
}

func (rt *Router) errorResult(id any, detail *toolerr.Detail) jsonrpc.Response {
	return rt.toolCallResult(id, toolerr.Failure(detail))
}

// toolCallResult wraps a tool service's ToolResponse into the MCP-wire
// CallToolResult shape — tool errors are reported as successful JSON-RPC
// responses with isError:true, per the MCP spec's error-isolation model,
// not as JSON-RPC protocol errors (spec.md §7).
func (rt *Router) toolCallResult(id any, resp toolerr.ToolResponse) jsonrpc.Response {
	if !resp.OK {
		data, _ := json.Marshal(resp.Error)
		return jsonrpc.NewResult(id, mcptypes.CallToolResult{
			Content:           []mcptypes.ContentBlock{{Type: "text", Text: string(data)}},
			IsError:           true,
			StructuredContent: resp.Error,
			Meta:              map[string]any{"code": resp.Error.Code, "retry": resp.Error.Retry},
		})
	}
	data, _ := json.Marshal(resp.Data)
	return jsonrpc.NewResult(id, mcptypes.CallToolResult{
		Content:           []mcptypes.ContentBlock{{Type: "text", Text: string(data)}},
		StructuredContent: resp.Data,
		Meta:              resp.Meta,
	})
}

func (rt *Router) handleResourcesList(ctx context.Context, sess *session.Session, req jsonrpc.Request) jsonrpc.Response {
	return jsonrpc.NewResult(req.ID, mcptypes.ResourcesListResult{Resources: rt.Resources.List()})
}

func (rt *Router) handleResourcesTemplatesList(ctx context.Context, sess *session.Session, req jsonrpc.Request) jsonrpc.Response {
	return jsonrpc.NewResult(req.ID, mcptypes.ResourceTemplatesListResult{ResourceTemplates: rt.Resources.ListTemplates()})
}

type resourcesReadParams struct {
	URI string `json:"uri"`
}

func (rt *Router) handleResourcesRead(ctx context.Context, sess *session.Session, req jsonrpc.Request) jsonrpc.Response {
	var params resourcesReadParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return jsonrpc.NewError(req.ID, jsonrpc.CodeInvalidParams, "invalid resources/read params: "+err.Error())
	}
	content, ok := rt.Resources.Read(params.URI)
	if !ok {
		return jsonrpc.NewError(req.ID, jsonrpc.CodeInvalidParams, fmt.Sprintf("unknown resource uri %q", params.URI))
	}
	return jsonrpc.NewResult(req.ID, mcptypes.ResourcesReadResult{Contents: []mcptypes.ResourceContent{content}})
}
