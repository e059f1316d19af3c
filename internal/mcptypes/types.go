// types.go — MCP protocol response shapes shared by the router and tool
// dispatcher. Adapted from the teacher's internal/mcp/types.go.
package mcptypes

// ContentBlock is a single content block in an MCP tool result.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CallToolResult is the MCP-wire shape returned for tools/call.
type CallToolResult struct {
	Content           []ContentBlock `json:"content"`
	IsError           bool           `json:"isError"`
	StructuredContent any            `json:"structuredContent,omitempty"`
	Meta              map[string]any `json:"meta,omitempty"`
}

// Tool describes one callable tool in tools/list.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// ToolsListResult is the tools/list response payload.
type ToolsListResult struct {
	Tools []Tool `json:"tools"`
}

// ServerInfo identifies the MCP server.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ToolsCapability declares tool support (and listChanged notifications).
type ToolsCapability struct {
	ListChanged bool `json:"listChanged"`
}

// ResourcesCapability declares resource support.
type ResourcesCapability struct{}

// Capabilities declares the server's MCP capabilities.
type Capabilities struct {
	Tools     ToolsCapability     `json:"tools"`
	Resources ResourcesCapability `json:"resources"`
}

// InitializeResult is the initialize response payload.
type InitializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
	Capabilities    Capabilities `json:"capabilities"`
	Instructions    string       `json:"instructions,omitempty"`
}

// Resource describes an available resource.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ResourceContent is the content of a single resource read.
type ResourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}

// ResourcesListResult is the resources/list response payload.
type ResourcesListResult struct {
	Resources []Resource `json:"resources"`
}

// ResourcesReadResult is the resources/read response payload.
type ResourcesReadResult struct {
	Contents []ResourceContent `json:"contents"`
}

// ResourceTemplate describes a templated resource.
type ResourceTemplate struct {
	URITemplate string `json:"uriTemplate"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ResourceTemplatesListResult is the resources/templates/list payload.
type ResourceTemplatesListResult struct {
	ResourceTemplates []ResourceTemplate `json:"resourceTemplates"`
}

// SupportedProtocolVersions lists protocol versions the server negotiates,
// in preference order. The first entry is returned by default.
var SupportedProtocolVersions = []string{"2025-06-18", "2025-11-25", "2024-11-05"}

// DefaultProtocolVersion is used when the client omits or requests an
// unsupported protocolVersion.
const DefaultProtocolVersion = "2025-06-18"

// NegotiateProtocolVersion picks requested if it is supported, else the
// default (spec.md §4.2 rule 7).
func NegotiateProtocolVersion(requested string) string {
	for _, v := range SupportedProtocolVersions {
		if v == requested {
			return requested
		}
	}
	return DefaultProtocolVersion
}

// implicitSessionMethods is the set of JSON-RPC methods the router may
// serve without an existing Mcp-Session-Id by minting an ephemeral session
// (spec.md §4.2 rule 5).
var implicitSessionMethods = map[string]bool{
	"tools/list":                true,
	"tools/call":                true,
	"resources/list":            true,
	"resources/read":            true,
	"resources/templates/list":  true,
	"ping":                      true,
}

// IsImplicitSessionMethod reports whether method may run without a
// pre-negotiated session.
func IsImplicitSessionMethod(method string) bool {
	return implicitSessionMethods[method]
}
