// services_bone.go — add_bone/update_bone/delete_bone tool services.
package toolset

import (
	"context"

	"github.com/ashfox/ashfox-mcp/internal/editorport"
	"github.com/ashfox/ashfox-mcp/internal/project"
	"github.com/ashfox/ashfox-mcp/internal/toolerr"
)

func addBone(ctx context.Context, tc *Context, args map[string]any) toolerr.ToolResponse {
	in := project.AddBoneInput{
		Name:       strArg(args, "name"),
		Parent:     strArg(args, "parent"),
		Pivot:      vec3Arg(args, "pivot"),
		Rotation:   vec3PtrArg(args, "rotation"),
		Scale:      vec3PtrArg(args, "scale"),
		Visibility: boolPtrArg(args, "visibility"),
	}
	rev, detail := tc.Project.AddBone(in)
	if detail != nil {
		return toolerr.Failure(detail)
	}
	meta := revMeta(rev)
	meta["editorSync"] = mirrorToEditor(ctx, tc.Editor, editorport.CapCreateBone, func(ctx context.Context) error {
		return tc.Editor.CreateBone(ctx, project.Bone{
			Name: in.Name, Parent: in.Parent, Pivot: in.Pivot,
			Rotation: in.Rotation, Scale: in.Scale, Visibility: in.Visibility,
		})
	})
	return toolerr.SuccessWithMeta(map[string]any{"name": in.Name}, meta)
}

func updateBone(ctx context.Context, tc *Context, args map[string]any) toolerr.ToolResponse {
	in := project.UpdateBoneInput{
		Name:       strArg(args, "name"),
		NewName:    strPtrArg(args, "newName"),
		Parent:     strPtrArg(args, "parent"),
		Pivot:      vec3PtrArg(args, "pivot"),
		Rotation:   vec3PtrArg(args, "rotation"),
		Scale:      vec3PtrArg(args, "scale"),
		Visibility: boolPtrArg(args, "visibility"),
	}
	rev, detail := tc.Project.UpdateBone(in)
	if detail != nil {
		return toolerr.Failure(detail)
	}
	name := in.Name
	if in.NewName != nil {
		name = *in.NewName
	}
	meta := revMeta(rev)
	meta["editorSync"] = mirrorToEditor(ctx, tc.Editor, editorport.CapUpdateBone, func(ctx context.Context) error {
		state, _ := tc.Project.Snapshot()
		idx := state.FindBone(name)
		if idx < 0 {
			return nil
		}
		return tc.Editor.UpdateBone(ctx, in.Name, state.Bones[idx])
	})
	return toolerr.SuccessWithMeta(map[string]any{"name": name}, meta)
}

func deleteBone(ctx context.Context, tc *Context, args map[string]any) toolerr.ToolResponse {
	name := strArg(args, "name")
	policy := project.DeletePolicy(strArg(args, "policy"))
	rev, detail := tc.Project.DeleteBone(name, policy)
	if detail != nil {
		return toolerr.Failure(detail)
	}
	meta := revMeta(rev)
	meta["editorSync"] = mirrorToEditor(ctx, tc.Editor, editorport.CapDeleteBone, func(ctx context.Context) error {
		return tc.Editor.DeleteBone(ctx, name)
	})
	return toolerr.SuccessWithMeta(map[string]any{"name": name}, meta)
}
