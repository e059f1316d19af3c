// services_animation.go — animation clip and keyframe/trigger tool
// services.
package toolset

import (
	"context"

	"github.com/ashfox/ashfox-mcp/internal/editorport"
	"github.com/ashfox/ashfox-mcp/internal/project"
	"github.com/ashfox/ashfox-mcp/internal/toolerr"
)

func addAnimation(ctx context.Context, tc *Context, args map[string]any) toolerr.ToolResponse {
	in := project.AddAnimationInput{
		Name:   strArg(args, "name"),
		Length: floatArg(args, "length"),
		Loop:   boolArg(args, "loop"),
		FPS:    floatArg(args, "fps"),
	}
	rev, detail := tc.Project.AddAnimation(in)
	if detail != nil {
		return toolerr.Failure(detail)
	}
	meta := revMeta(rev)
	meta["editorSync"] = mirrorToEditor(ctx, tc.Editor, editorport.CapCreateAnimation, func(ctx context.Context) error {
		return tc.Editor.CreateAnimation(ctx, project.Animation{
			Name: in.Name, Length: in.Length, Loop: in.Loop, FPS: in.FPS,
		})
	})
	return toolerr.SuccessWithMeta(map[string]any{"name": in.Name}, meta)
}

func updateAnimation(ctx context.Context, tc *Context, args map[string]any) toolerr.ToolResponse {
	in := project.UpdateAnimationInput{
		Name:    strArg(args, "name"),
		NewName: strPtrArg(args, "newName"),
		Length:  floatPtrArg(args, "length"),
		Loop:    boolPtrArg(args, "loop"),
		FPS:     floatPtrArg(args, "fps"),
	}
	rev, detail := tc.Project.UpdateAnimation(in)
	if detail != nil {
		return toolerr.Failure(detail)
	}
	name := in.Name
	if in.NewName != nil {
		name = *in.NewName
	}
	meta := revMeta(rev)
	meta["editorSync"] = mirrorToEditor(ctx, tc.Editor, editorport.CapUpdateAnimation, func(ctx context.Context) error {
		state, _ := tc.Project.Snapshot()
		idx := state.FindAnimation(name)
		if idx < 0 {
			return nil
		}
		return tc.Editor.UpdateAnimation(ctx, in.Name, state.Animations[idx])
	})
	return toolerr.SuccessWithMeta(map[string]any{"name": name}, meta)
}

func deleteAnimation(ctx context.Context, tc *Context, args map[string]any) toolerr.ToolResponse {
	name := strArg(args, "name")
	rev, detail := tc.Project.DeleteAnimation(name)
	if detail != nil {
		return toolerr.Failure(detail)
	}
	meta := revMeta(rev)
	meta["editorSync"] = mirrorToEditor(ctx, tc.Editor, editorport.CapDeleteAnimation, func(ctx context.Context) error {
		return tc.Editor.DeleteAnimation(ctx, name)
	})
	return toolerr.SuccessWithMeta(map[string]any{"name": name}, meta)
}

func setKeyframe(ctx context.Context, tc *Context, args map[string]any) toolerr.ToolResponse {
	kf := project.Keyframe{
		Time:       floatArg(args, "time"),
		Value:      vec3Arg(args, "value"),
		Interp:     strArg(args, "interp"),
		Easing:     strArg(args, "easing"),
		EasingArgs: floatSliceArg(args, "easingArgs"),
		Pre:        vec3PtrArg(args, "pre"),
		Post:       vec3PtrArg(args, "post"),
	}
	in := project.SetKeyframeInput{
		Animation: strArg(args, "animation"),
		Bone:      strArg(args, "bone"),
		Channel:   project.ChannelKind(strArg(args, "channel")),
		Keyframe:  kf,
	}
	rev, detail := tc.Project.SetKeyframe(in)
	if detail != nil {
		return toolerr.Failure(detail)
	}
	return toolerr.SuccessWithMeta(map[string]any{
		"animation": in.Animation, "bone": in.Bone, "channel": string(in.Channel),
	}, revMeta(rev))
}

func deleteKeyframe(ctx context.Context, tc *Context, args map[string]any) toolerr.ToolResponse {
	in := project.DeleteKeyframeInput{
		Animation: strArg(args, "animation"),
		Bone:      strArg(args, "bone"),
		Channel:   project.ChannelKind(strArg(args, "channel")),
		Time:      floatArg(args, "time"),
	}
	rev, detail := tc.Project.DeleteKeyframe(in)
	if detail != nil {
		return toolerr.Failure(detail)
	}
	return toolerr.SuccessWithMeta(map[string]any{
		"animation": in.Animation, "bone": in.Bone, "channel": string(in.Channel),
	}, revMeta(rev))
}

func setTriggerKey(ctx context.Context, tc *Context, args map[string]any) toolerr.ToolResponse {
	in := project.SetTriggerKeyInput{
		Animation: strArg(args, "animation"),
		Type:      project.TriggerKind(strArg(args, "type")),
		Time:      floatArg(args, "time"),
		Value:     args["value"],
	}
	rev, detail := tc.Project.SetTriggerKey(in)
	if detail != nil {
		return toolerr.Failure(detail)
	}
	return toolerr.SuccessWithMeta(map[string]any{
		"animation": in.Animation, "type": string(in.Type),
	}, revMeta(rev))
}
