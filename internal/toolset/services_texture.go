// services_texture.go — add_texture/update_texture/delete_texture tool
// services. update_texture implements the "no_change" shortcut (spec.md
// §4.5 texture rule): an image replacement whose recomputed contentHash and
// dimensions are identical to what's already stored is reported back as
// no_change, with the revision left untouched, rather than taking a write
// turn that would produce an identical revision anyway.
package toolset

import (
	"context"

	"github.com/ashfox/ashfox-mcp/internal/editorport"
	"github.com/ashfox/ashfox-mcp/internal/project"
	"github.com/ashfox/ashfox-mcp/internal/toolerr"
)

func addTexture(ctx context.Context, tc *Context, args map[string]any) toolerr.ToolResponse {
	in := project.AddTextureInput{
		Name:        strArg(args, "name"),
		Width:       intArg(args, "width"),
		Height:      intArg(args, "height"),
		ContentHash: strArg(args, "contentHash"),
		Meta:        metaArg(args, "meta"),
	}
	rev, detail := tc.Project.AddTexture(in)
	if detail != nil {
		return toolerr.Failure(detail)
	}
	meta := revMeta(rev)
	meta["editorSync"] = mirrorToEditor(ctx, tc.Editor, editorport.CapCreateTexture, func(ctx context.Context) error {
		return tc.Editor.CreateTexture(ctx, project.Texture{
			Name: in.Name, Width: in.Width, Height: in.Height,
			ContentHash: in.ContentHash, Meta: in.Meta,
		})
	})
	return toolerr.SuccessWithMeta(map[string]any{"name": in.Name, "status": "created"}, meta)
}

func updateTexture(ctx context.Context, tc *Context, args map[string]any) toolerr.ToolResponse {
	name := strArg(args, "name")
	contentHash := strPtrArg(args, "contentHash")
	width := intPtrArg(args, "width")
	height := intPtrArg(args, "height")

	if contentHash != nil {
		state, rev := tc.Project.Snapshot()
		idx := state.FindTexture(name)
		if idx < 0 {
			return toolerr.Failure(toolerr.New(toolerr.CodeInvalidState, "texture \""+name+"\" does not exist"))
		}
		tex := state.Textures[idx]
		resolvedW, resolvedH := tex.Width, tex.Height
		if width != nil {
			resolvedW = *width
		}
		if height != nil {
			resolvedH = *height
		}
		if *contentHash == tex.ContentHash && resolvedW == tex.Width && resolvedH == tex.Height {
			return toolerr.SuccessWithMeta(map[string]any{"name": name, "status": "no_change"}, revMeta(rev))
		}
	}

	in := project.UpdateTextureInput{
		Name:        name,
		NewName:     strPtrArg(args, "newName"),
		Width:       width,
		Height:      height,
		ContentHash: contentHash,
		Meta:        metaArg(args, "meta"),
	}
	rev, detail := tc.Project.UpdateTexture(in)
	if detail != nil {
		return toolerr.Failure(detail)
	}
	finalName := name
	if in.NewName != nil {
		finalName = *in.NewName
	}
	meta := revMeta(rev)
	meta["editorSync"] = mirrorToEditor(ctx, tc.Editor, editorport.CapUpdateTexture, func(ctx context.Context) error {
		state, _ := tc.Project.Snapshot()
		idx := state.FindTexture(finalName)
		if idx < 0 {
			return nil
		}
		return tc.Editor.UpdateTexture(ctx, name, state.Textures[idx])
	})
	return toolerr.SuccessWithMeta(map[string]any{"name": finalName, "status": "updated"}, meta)
}

func deleteTexture(ctx context.Context, tc *Context, args map[string]any) toolerr.ToolResponse {
	name := strArg(args, "name")
	rev, detail := tc.Project.DeleteTexture(name)
	if detail != nil {
		return toolerr.Failure(detail)
	}
	meta := revMeta(rev)
	meta["editorSync"] = mirrorToEditor(ctx, tc.Editor, editorport.CapDeleteTexture, func(ctx context.Context) error {
		return tc.Editor.DeleteTexture(ctx, name)
	})
	return toolerr.SuccessWithMeta(map[string]any{"name": name}, meta)
}
