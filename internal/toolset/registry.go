// registry.go — the tool dispatcher's table of tool definitions (spec.md
// §4.3). Each ToolDef pairs a compiled JSON Schema (schema.go) with a
// Handler that runs the corresponding project mutator and, capability
// permitting, mirrors the change through the EditorPort. The router owns
// revision-guard gating before Dispatch ever runs, and Dispatch validates
// arguments against the schema before calling the Handler — by the time a
// Handler executes, arguments are schema-valid and, for mutating tools, the
// caller's ifRevision has already matched.
package toolset

import (
	"context"

	"github.com/ashfox/ashfox-mcp/internal/editorport"
	"github.com/ashfox/ashfox-mcp/internal/project"
	"github.com/ashfox/ashfox-mcp/internal/toolerr"
)

// Context carries the per-call dependencies a handler needs.
type Context struct {
	Project *project.Project
	Editor  editorport.Port
}

// Handler implements one tool's behavior.
type Handler func(ctx context.Context, tc *Context, args map[string]any) toolerr.ToolResponse

// Def describes one registered tool.
type Def struct {
	Name        string
	Description string
	// Mutating tools require a matching ifRevision under an active
	// require-revision policy (spec.md §4.4); read-only tools never do.
	Mutating bool
	Handler  Handler
}

// Registry is the full set of tools the dispatcher exposes, keyed by name.
var Registry = map[string]Def{
	"get_project_state": {
		Name:        "get_project_state",
		Description: "Return the current normalized project state, its revision, and derived texture usage.",
		Mutating:    false,
		Handler:     getProjectState,
	},
	"add_bone": {
		Name:        "add_bone",
		Description: "Add a bone to the project skeleton.",
		Mutating:    true,
		Handler:     addBone,
	},
	"update_bone": {
		Name:        "update_bone",
		Description: "Update an existing bone's fields.",
		Mutating:    true,
		Handler:     updateBone,
	},
	"delete_bone": {
		Name:        "delete_bone",
		Description: "Delete a bone, cascading or reparenting its descendants per policy.",
		Mutating:    true,
		Handler:     deleteBone,
	},
	"add_cube": {
		Name:        "add_cube",
		Description: "Add a cube to a bone.",
		Mutating:    true,
		Handler:     addCube,
	},
	"update_cube": {
		Name:        "update_cube",
		Description: "Update an existing cube's fields.",
		Mutating:    true,
		Handler:     updateCube,
	},
	"delete_cube": {
		Name:        "delete_cube",
		Description: "Delete a cube.",
		Mutating:    true,
		Handler:     deleteCube,
	},
	"add_texture": {
		Name:        "add_texture",
		Description: "Bind a new texture resource.",
		Mutating:    true,
		Handler:     addTexture,
	},
	"update_texture": {
		Name:        "update_texture",
		Description: "Update an existing texture's fields, including its content hash on image replacement.",
		Mutating:    true,
		Handler:     updateTexture,
	},
	"delete_texture": {
		Name:        "delete_texture",
		Description: "Delete a texture.",
		Mutating:    true,
		Handler:     deleteTexture,
	},
	"add_animation": {
		Name:        "add_animation",
		Description: "Add a channel-less animation clip.",
		Mutating:    true,
		Handler:     addAnimation,
	},
	"update_animation": {
		Name:        "update_animation",
		Description: "Update an existing animation clip's fields.",
		Mutating:    true,
		Handler:     updateAnimation,
	},
	"delete_animation": {
		Name:        "delete_animation",
		Description: "Delete an animation clip.",
		Mutating:    true,
		Handler:     deleteAnimation,
	},
	"set_keyframe": {
		Name:        "set_keyframe",
		Description: "Insert or replace a keyframe on a bone's rotation, position, or scale channel.",
		Mutating:    true,
		Handler:     setKeyframe,
	},
	"delete_keyframe": {
		Name:        "delete_keyframe",
		Description: "Delete the keyframe at the bucket containing the given time.",
		Mutating:    true,
		Handler:     deleteKeyframe,
	},
	"set_trigger_key": {
		Name:        "set_trigger_key",
		Description: "Insert or replace a timed sound, particle, or timeline trigger event.",
		Mutating:    true,
		Handler:     setTriggerKey,
	},
	"export_internal": {
		Name:        "export_internal",
		Description: "Build the deterministic geometry and animation export bundle, optionally writing it through the bound editor.",
		Mutating:    false,
		Handler:     exportProject,
	},
	"apply_pose_preset": {
		Name:        "apply_pose_preset",
		Description: "Set one rotation keyframe across several bones at once, as a single atomic plan.",
		Mutating:    true,
		Handler:     applyPosePreset,
	},
	"generate_walk_cycle": {
		Name:        "generate_walk_cycle",
		Description: "Generate a symmetric two-leg stride cycle across an existing animation clip.",
		Mutating:    true,
		Handler:     generateWalkCycle,
	},
}

// Lookup returns a tool's definition, or false if no tool is registered
// under that name. An empty registry also yields false here; the router
// checks for an empty Registry before calling Lookup and reports that case
// as spec.md §7 "tool_registry_empty".
func Lookup(name string) (Def, bool) {
	d, ok := Registry[name]
	return d, ok
}

// Names returns every registered tool name, for tools/list discovery.
func Names() []string {
	out := make([]string, 0, len(Registry))
	for name := range Registry {
		out = append(out, name)
	}
	return out
}

// Dispatch validates arguments against the tool's schema, then runs its
// handler. Revision gating happens upstream in the router.
func Dispatch(ctx context.Context, tc *Context, toolName string, args map[string]any) toolerr.ToolResponse {
	def, ok := Lookup(toolName)
	if !ok {
		return toolerr.Failure(toolerr.New(toolerr.CodeResourceNotFound, "unknown tool "+toolName))
	}
	if args == nil {
		args = map[string]any{}
	}
	if err := ValidateArguments(toolName, args); err != nil {
		return toolerr.Failure(toolerr.New(toolerr.CodeInvalidPayload, err.Error()).WithFix("check arguments against the tool's inputSchema"))
	}
	return def.Handler(ctx, tc, args)
}
