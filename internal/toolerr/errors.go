// errors.go — domain error taxonomy and ToolResponse envelope for tool
// services. Adapted from the teacher's internal/mcp/errors.go: the
// structured, self-describing error shape is kept, but the error codes are
// the domain taxonomy from spec.md §7 rather than the teacher's browser-
// devtools codes.
package toolerr

// Error codes surfaced in ToolResponse.Error.Code (spec.md §7).
const (
	CodeInvalidPayload             = "invalid_payload"
	CodeInvalidState               = "invalid_state"
	CodeInvalidStateRevisionMismatch = "invalid_state_revision_mismatch"
	CodeUnsupportedFormat           = "unsupported_format"
	CodeIOError                     = "io_error"
	CodeNotImplemented              = "not_implemented"
	CodeResourceNotFound            = "resource_not_found"
	CodeToolRegistryEmpty           = "tool_registry_empty"
	CodeUnknown                     = "unknown"
)

// retryAfterRefresh is the set of codes flagged "retry after refresh": the
// client should re-run tools/list and get_project_state, up to maxAttempts.
var retryAfterRefresh = map[string]bool{
	CodeResourceNotFound:            true,
	CodeInvalidState:                true,
	CodeInvalidStateRevisionMismatch: true,
	CodeToolRegistryEmpty:           true,
}

// MaxRetryAttempts is the client-side retry budget for retry-after-refresh
// errors (spec.md §7).
const MaxRetryAttempts = 2

// Detail is a typed error payload attached to a failing ToolResponse.
type Detail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Fix     string         `json:"fix,omitempty"`
	Details map[string]any `json:"details,omitempty"`
	Retry   bool           `json:"retry,omitempty"`
}

// Error renders the Detail as "<code>: <message>", so a *Detail can be
// returned where an error is expected (e.g. from an EditorPort method).
func (d *Detail) Error() string {
	return d.Code + ": " + d.Message
}

// RetryAfterRefresh reports whether code is flagged as retryable by
// refreshing tools/list and get_project_state.
func RetryAfterRefresh(code string) bool {
	return retryAfterRefresh[code]
}

// New builds a Detail, automatically setting Retry from the code taxonomy.
func New(code, message string) *Detail {
	return &Detail{Code: code, Message: message, Retry: RetryAfterRefresh(code)}
}

// WithFix attaches a fix pointer (e.g. "call get_project_state").
func (d *Detail) WithFix(fix string) *Detail {
	d.Fix = fix
	return d
}

// WithDetails attaches structured details (e.g. {expected, currentRevision}).
func (d *Detail) WithDetails(details map[string]any) *Detail {
	d.Details = details
	return d
}

// Unknown builds an "unknown" error Detail; details.reason is always
// populated per the taxonomy's requirement.
func Unknown(reason string) *Detail {
	return New(CodeUnknown, reason).WithDetails(map[string]any{"reason": reason})
}

// RevisionMismatch builds the standard invalid_state_revision_mismatch
// Detail carrying {expected, currentRevision} (spec.md §4.4).
func RevisionMismatch(expected, current string) *Detail {
	return New(CodeInvalidStateRevisionMismatch, "revision mismatch: expected "+expected+", current is "+current).
		WithDetails(map[string]any{"expected": expected, "currentRevision": current})
}

// RevisionRequired builds the standard invalid_state Detail for a missing
// ifRevision argument under an active requireRevision policy.
func RevisionRequired() *Detail {
	return New(CodeInvalidState, "ifRevision is required for mutating tools").
		WithFix("call get_project_state to obtain the current revision")
}

// ToolResponse is the envelope every tool service returns; exactly one of
// Data (on success) or Error (on failure) is meaningful.
type ToolResponse struct {
	OK                bool           `json:"ok"`
	Data              any            `json:"data,omitempty"`
	Content           []string       `json:"content,omitempty"`
	StructuredContent any            `json:"structuredContent,omitempty"`
	Meta              map[string]any `json:"meta,omitempty"`
	NextActions       []string       `json:"nextActions,omitempty"`
	Error             *Detail        `json:"error,omitempty"`
}

// Success builds a successful ToolResponse.
func Success(data any) ToolResponse {
	return ToolResponse{OK: true, Data: data}
}

// SuccessWithMeta builds a successful ToolResponse carrying meta (e.g. the
// new revision).
func SuccessWithMeta(data any, meta map[string]any) ToolResponse {
	return ToolResponse{OK: true, Data: data, Meta: meta}
}

// Failure builds a failing ToolResponse from a Detail.
func Failure(d *Detail) ToolResponse {
	return ToolResponse{OK: false, Error: d}
}
