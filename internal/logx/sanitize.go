// sanitize.go — redaction and size-capping for structured log metadata.
// Grounded on internal/redaction's built-in regex patterns (aws-key,
// bearer-token, jwt, private-key), generalized from a flat string redactor
// into a depth-capped JSON-tree walker.
package logx

import (
	"encoding/json"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	maxDepth       = 6
	maxObjectKeys  = 40
	maxArrayItems  = 40
	maxStringLen   = 512
	maxFinalJSON   = 4000
	truncateSuffix = "...[truncated]"
)

var sensitiveKeySubstrings = []string{
	"authorization", "cookie", "set-cookie", "token", "secret",
	"password", "apikey", "api_key", "datauri", "base64",
}

var jwtShape = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+$`)

// secretLeafPatterns re-applies the teacher's regex redactions to string
// leaves that survive the key-based redaction pass.
var secretLeafPatterns = []*regexp.Regexp{
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	regexp.MustCompile(`Bearer [A-Za-z0-9\-._~+/]+=*`),
	regexp.MustCompile(`-----BEGIN [A-Z ]*PRIVATE KEY-----[\s\S]*?-----END [A-Z ]*PRIVATE KEY-----`),
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeySubstrings {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// Sanitize walks meta and returns a depth-capped, redacted copy suitable for
// JSON serialization. It never mutates the input.
func Sanitize(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}
	seen := make(map[uintptr]bool)
	out := sanitizeValue(meta, 0, seen)
	obj, _ := out.(map[string]any)
	return obj
}

// refPointer returns the identity pointer of a reference-typed value (map or
// slice) for cycle detection, or 0 if v is not reference-typed or nil.
func refPointer(v any) uintptr {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return 0
		}
		return rv.Pointer()
	default:
		return 0
	}
}

func sanitizeValue(v any, depth int, seen map[uintptr]bool) any {
	if depth >= maxDepth {
		return "[MaxDepth]"
	}
	if ptr := refPointer(v); ptr != 0 {
		if seen[ptr] {
			return "[Circular]"
		}
		seen[ptr] = true
		defer delete(seen, ptr)
	}
	switch t := v.(type) {
	case map[string]any:
		return sanitizeObject(t, depth, seen)
	case []any:
		return sanitizeArray(t, depth, seen)
	case string:
		return sanitizeString(t)
	default:
		return v
	}
}

func sanitizeObject(m map[string]any, depth int, seen map[uintptr]bool) map[string]any {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > maxObjectKeys {
		keys = keys[:maxObjectKeys]
	}

	out := make(map[string]any, len(keys))
	for _, k := range keys {
		val := m[k]
		if isSensitiveKey(k) {
			out[k] = "[REDACTED]"
			continue
		}
		out[k] = sanitizeValue(val, depth+1, seen)
	}
	return out
}

func sanitizeArray(a []any, depth int, seen map[uintptr]bool) []any {
	n := len(a)
	if n > maxArrayItems {
		n = maxArrayItems
	}
	out := make([]any, n)
	for i := 0; i < n; i++ {
		out[i] = sanitizeValue(a[i], depth+1, seen)
	}
	return out
}

func sanitizeString(s string) string {
	if strings.HasPrefix(s, "data:") {
		comma := strings.IndexByte(s, ',')
		if comma >= 0 {
			return s[:comma] + ",[" + strconv.Itoa(len(s)-comma-1) + " chars]"
		}
	}
	if jwtShape.MatchString(s) {
		return "[redacted:jwt]"
	}
	for _, re := range secretLeafPatterns {
		if re.MatchString(s) {
			s = re.ReplaceAllString(s, "[REDACTED]")
		}
	}
	if len(s) > maxStringLen {
		return s[:maxStringLen] + truncateSuffix
	}
	return s
}

// ToJSON marshals v and truncates the result at maxFinalJSON characters.
func ToJSON(v any) string {
	if v == nil {
		return "{}"
	}
	data, err := json.Marshal(v)
	if err != nil {
		return `{"error":"marshal_failed"}`
	}
	s := string(data)
	if len(s) > maxFinalJSON {
		return s[:maxFinalJSON] + truncateSuffix
	}
	return s
}
