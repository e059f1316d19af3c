// services_export.go — export_internal tool service: builds the internal
// exporter's geometry/animation bundle and, when writeTo and the host's
// write_file capability are both present, persists it through the
// EditorPort (spec.md §4.6).
package toolset

import (
	"context"
	"encoding/json"

	"github.com/ashfox/ashfox-mcp/internal/editorport"
	"github.com/ashfox/ashfox-mcp/internal/exporter"
	"github.com/ashfox/ashfox-mcp/internal/toolerr"
)

func exportProject(ctx context.Context, tc *Context, args map[string]any) toolerr.ToolResponse {
	state, rev := tc.Project.Snapshot()
	geometryName := strArg(args, "geometryName")

	bundle := exporter.Export(state, geometryName)
	digest, err := bundle.Digest()
	if err != nil {
		return toolerr.Failure(toolerr.New(toolerr.CodeUnknown, "failed to digest export bundle").WithDetails(map[string]any{"reason": err.Error()}))
	}

	meta := revMeta(rev)
	meta["digest"] = digest

	if writeTo := strArg(args, "writeTo"); writeTo != "" {
		if !tc.Editor.Capabilities()[editorport.CapWriteFile] {
			return toolerr.Failure(editorport.NotImplemented(editorport.CapWriteFile))
		}
		data, merr := json.Marshal(bundle)
		if merr != nil {
			return toolerr.Failure(toolerr.New(toolerr.CodeUnknown, "failed to marshal export bundle").WithDetails(map[string]any{"reason": merr.Error()}))
		}
		if werr := tc.Editor.WriteFile(ctx, writeTo, data, ""); werr != nil {
			return toolerr.Failure(toolerr.New(toolerr.CodeIOError, "failed to write export bundle").WithDetails(map[string]any{"reason": werr.Error()}))
		}
		meta["writtenTo"] = writeTo
	}

	return toolerr.SuccessWithMeta(map[string]any{
		"geometry":  bundle.Geometry,
		"animation": bundle.Animation,
	}, meta)
}
