// services_common.go — shared helpers for tool service handlers.
package toolset

import (
	"context"

	"github.com/ashfox/ashfox-mcp/internal/editorport"
)

func revMeta(rev string) map[string]any {
	return map[string]any{"revision": rev}
}

// mirrorToEditor best-effort mirrors a project mutation into the bound host
// editor. The project state is the tool's source of truth (spec.md §3); a
// host lacking the capability, or one that errors, degrades the response's
// meta.editorSync rather than failing the whole call — the mutation already
// committed.
func mirrorToEditor(ctx context.Context, editor editorport.Port, cap editorport.Capability, call func(context.Context) error) string {
	if !editor.Capabilities()[cap] {
		return "not_implemented"
	}
	if err := call(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
