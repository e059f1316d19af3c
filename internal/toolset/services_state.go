// services_state.go — get_project_state tool service.
package toolset

import (
	"context"

	"github.com/ashfox/ashfox-mcp/internal/project"
	"github.com/ashfox/ashfox-mcp/internal/toolerr"
)

func getProjectState(ctx context.Context, tc *Context, args map[string]any) toolerr.ToolResponse {
	state, rev := tc.Project.Snapshot()
	normalized := project.Normalize(state)
	usage := project.ComputeTextureUsage(normalized)
	return toolerr.SuccessWithMeta(map[string]any{
		"state":        normalized,
		"textureUsage": usage,
	}, revMeta(rev))
}
