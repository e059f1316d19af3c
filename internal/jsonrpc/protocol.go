// protocol.go — JSON-RPC 2.0 request/response/error types.
// Adapted from the teacher's internal/mcp/protocol.go: the id-presence
// tracking (present / explicit-null / invalid-format) is kept verbatim in
// behavior since JSON-RPC's id-echoing rule (spec.md invariant 6) depends on
// distinguishing "absent" from "present-but-null".
package jsonrpc

import (
	"bytes"
	"encoding/json"
)

// Request represents an incoming JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`

	idPresent       bool
	idExplicitNull  bool
	idInvalidFormat bool
}

// UnmarshalJSON captures whether id was present and whether it was
// explicitly null, which plain struct decoding can't distinguish.
func (r *Request) UnmarshalJSON(data []byte) error {
	type rawRequest struct {
		JSONRPC string          `json:"jsonrpc"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params,omitempty"`
	}

	var raw rawRequest
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(data, &object); err != nil {
		return err
	}

	r.JSONRPC = raw.JSONRPC
	r.Method = raw.Method
	r.Params = raw.Params
	r.ID = nil
	_, r.idPresent = object["id"]
	r.idExplicitNull = false
	r.idInvalidFormat = false

	rawID, ok := object["id"]
	if !ok {
		return nil
	}

	trimmed := bytes.TrimSpace(rawID)
	if bytes.Equal(trimmed, []byte("null")) {
		r.idExplicitNull = true
		return nil
	}

	var parsedID any
	if err := json.Unmarshal(trimmed, &parsedID); err != nil {
		return err
	}
	switch parsedID.(type) {
	case string, float64:
		r.ID = parsedID
	default:
		r.idInvalidFormat = true
	}
	return nil
}

// HasID reports whether the request carried an id field at all, including
// an explicit null.
func (r Request) HasID() bool {
	return r.idPresent || r.ID != nil
}

// HasInvalidID reports whether the request has an explicitly null or
// invalid-format id.
func (r Request) HasInvalidID() bool {
	return r.idExplicitNull || r.idInvalidFormat
}

// IsNotification reports whether the request is a JSON-RPC notification
// (no id, or an explicitly null id) — per JSON-RPC 2.0, notifications never
// receive a response.
func (r Request) IsNotification() bool {
	return !r.HasID() || r.idExplicitNull
}

// Response represents an outgoing JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error represents a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Error codes per the protocol table (spec.md §6).
const (
	CodeParseError      = -32700
	CodeInvalidRequest  = -32600
	CodeMethodNotFound  = -32601
	CodeInvalidParams   = -32602
	CodeServerNotInited = -32000
)

// NewResult builds a success Response, marshaling result. Marshal failure
// (which should not occur for our own simple struct/map results) degrades
// to an internal error response rather than panicking.
func NewResult(id any, result any) Response {
	data, err := json.Marshal(result)
	if err != nil {
		return Response{JSONRPC: "2.0", ID: id, Error: &Error{Code: CodeServerNotInited, Message: "internal: marshal failed: " + err.Error()}}
	}
	return Response{JSONRPC: "2.0", ID: id, Result: data}
}

// NewError builds an error Response.
func NewError(id any, code int, message string) Response {
	return Response{JSONRPC: "2.0", ID: id, Error: &Error{Code: code, Message: message}}
}

// NewErrorWithData builds an error Response carrying structured error data.
func NewErrorWithData(id any, code int, message string, data any) Response {
	return Response{JSONRPC: "2.0", ID: id, Error: &Error{Code: code, Message: message, Data: data}}
}
