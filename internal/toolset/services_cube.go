// services_cube.go — add_cube/update_cube/delete_cube tool services.
package toolset

import (
	"context"

	"github.com/ashfox/ashfox-mcp/internal/editorport"
	"github.com/ashfox/ashfox-mcp/internal/project"
	"github.com/ashfox/ashfox-mcp/internal/toolerr"
)

func addCube(ctx context.Context, tc *Context, args map[string]any) toolerr.ToolResponse {
	in := project.AddCubeInput{
		Name:    strArg(args, "name"),
		Bone:    strArg(args, "bone"),
		From:    vec3Arg(args, "from"),
		To:      vec3Arg(args, "to"),
		UV:      uvArg(args, "uv"),
		Inflate: floatArg(args, "inflate"),
		Mirror:  boolArg(args, "mirror"),
		Faces:   facesArg(args, "faces"),
	}
	rev, detail := tc.Project.AddCube(in)
	if detail != nil {
		return toolerr.Failure(detail)
	}
	meta := revMeta(rev)
	meta["editorSync"] = mirrorToEditor(ctx, tc.Editor, editorport.CapCreateCube, func(ctx context.Context) error {
		return tc.Editor.CreateCube(ctx, project.Cube{
			Name: in.Name, Bone: in.Bone, From: in.From, To: in.To,
			UV: in.UV, Inflate: in.Inflate, Mirror: in.Mirror, Faces: in.Faces,
		})
	})
	return toolerr.SuccessWithMeta(map[string]any{"name": in.Name}, meta)
}

func updateCube(ctx context.Context, tc *Context, args map[string]any) toolerr.ToolResponse {
	in := project.UpdateCubeInput{
		Name:    strArg(args, "name"),
		NewName: strPtrArg(args, "newName"),
		Bone:    strPtrArg(args, "bone"),
		From:    vec3PtrArg(args, "from"),
		To:      vec3PtrArg(args, "to"),
		UV:      uvArg(args, "uv"),
		Inflate: floatPtrArg(args, "inflate"),
		Mirror:  boolPtrArg(args, "mirror"),
		Faces:   facesArg(args, "faces"),
	}
	rev, detail := tc.Project.UpdateCube(in)
	if detail != nil {
		return toolerr.Failure(detail)
	}
	name := in.Name
	if in.NewName != nil {
		name = *in.NewName
	}
	meta := revMeta(rev)
	meta["editorSync"] = mirrorToEditor(ctx, tc.Editor, editorport.CapUpdateCube, func(ctx context.Context) error {
		state, _ := tc.Project.Snapshot()
		idx := state.FindCube(name)
		if idx < 0 {
			return nil
		}
		return tc.Editor.UpdateCube(ctx, in.Name, state.Cubes[idx])
	})
	return toolerr.SuccessWithMeta(map[string]any{"name": name}, meta)
}

func deleteCube(ctx context.Context, tc *Context, args map[string]any) toolerr.ToolResponse {
	name := strArg(args, "name")
	rev, detail := tc.Project.DeleteCube(name)
	if detail != nil {
		return toolerr.Failure(detail)
	}
	meta := revMeta(rev)
	meta["editorSync"] = mirrorToEditor(ctx, tc.Editor, editorport.CapDeleteCube, func(ctx context.Context) error {
		return tc.Editor.DeleteCube(ctx, name)
	})
	return toolerr.SuccessWithMeta(map[string]any{"name": name}, meta)
}
