// services_preset.go — composite/proxy tool services: apply_pose_preset
// and generate_walk_cycle each expand into several project.Operation
// values applied atomically through project.Plan/ApplyPlan (spec.md §9
// Design Note, SPEC_FULL.md §4.5 SUPPLEMENT). The revision guard for the
// outer call already ran in the router before Dispatch reached here; the
// sub-operations themselves run under revguard.RunWithoutRevisionGuard so
// that any nested guard check sees the outer call's single approval rather
// than demanding one ifRevision per bone touched.
package toolset

import (
	"context"

	"github.com/ashfox/ashfox-mcp/internal/project"
	"github.com/ashfox/ashfox-mcp/internal/revguard"
	"github.com/ashfox/ashfox-mcp/internal/toolerr"
)

// poseBoneArg is one bone's target rotation within a pose preset.
type poseBoneArg struct {
	Bone     string
	Rotation project.Vec3
}

func parsePoseBones(args map[string]any) []poseBoneArg {
	raw, _ := args["bones"].([]any)
	out := make([]poseBoneArg, 0, len(raw))
	for _, e := range raw {
		obj, ok := e.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, poseBoneArg{
			Bone:     strArg(obj, "bone"),
			Rotation: vec3Arg(obj, "rotation"),
		})
	}
	return out
}

// applyPosePreset sets one rotation keyframe, at a single point in time,
// across every bone named in the preset — a static pose applied as one
// atomic plan rather than one set_keyframe call per bone.
func applyPosePreset(ctx context.Context, tc *Context, args map[string]any) toolerr.ToolResponse {
	animation := strArg(args, "animation")
	at := floatArg(args, "time")
	bones := parsePoseBones(args)
	if len(bones) == 0 {
		return toolerr.Failure(toolerr.New(toolerr.CodeInvalidPayload, "bones must not be empty"))
	}

	plan := project.Plan{Operations: make([]project.Operation, 0, len(bones))}
	for _, b := range bones {
		plan.Operations = append(plan.Operations, project.Operation{
			Kind: project.OpSetKeyframe,
			SetKeyframe: &project.SetKeyframeInput{
				Animation: animation,
				Bone:      b.Bone,
				Channel:   project.ChannelRotation,
				Keyframe:  project.Keyframe{Time: at, Value: b.Rotation},
			},
		})
	}

	var rev string
	var result project.PlanResult
	_ = revguard.RunWithoutRevisionGuard(ctx, func(ctx context.Context) error {
		rev, result = tc.Project.ApplyPlan(plan)
		return nil
	})
	if result.Error != nil {
		return toolerr.Failure(result.Error.WithDetails(map[string]any{
			"failedStep": result.FailedStep,
			"appliedOf":  len(plan.Operations),
		}))
	}
	return toolerr.SuccessWithMeta(map[string]any{
		"animation":  animation,
		"bonesPosed": len(bones),
	}, revMeta(rev))
}

// walkLeg names one leg bone and the phase offset (in cycle fractions) its
// stride keyframes are generated at.
type walkLeg struct {
	Bone        string
	PhaseOffset float64
}

// generateWalkCycle lays down a symmetric two-leg stride across an
// existing animation clip: each leg swings forward then back over the
// requested length, 0.5 cycles out of phase with the other. Every keyframe
// this produces is one project.Operation in a single atomic plan.
func generateWalkCycle(ctx context.Context, tc *Context, args map[string]any) toolerr.ToolResponse {
	animation := strArg(args, "animation")
	length := floatArg(args, "length")
	swingDeg := floatArg(args, "swingDegrees")
	legNames, _ := args["legBones"].([]any)
	if len(legNames) == 0 {
		return toolerr.Failure(toolerr.New(toolerr.CodeInvalidPayload, "legBones must not be empty"))
	}
	if length <= 0 {
		return toolerr.Failure(toolerr.New(toolerr.CodeInvalidPayload, "length must be positive"))
	}
	if swingDeg == 0 {
		swingDeg = 30
	}

	legs := make([]walkLeg, 0, len(legNames))
	for i, v := range legNames {
		name, _ := v.(string)
		if name == "" {
			continue
		}
		legs = append(legs, walkLeg{Bone: name, PhaseOffset: float64(i%2) * 0.5})
	}

	// Four stride samples per leg: neutral, forward extreme, neutral, back
	// extreme, wrapped to the requested length by each leg's phase offset.
	samplePhases := []float64{0, 0.25, 0.5, 0.75}
	sampleSwing := []float64{0, 1, 0, -1}

	plan := project.Plan{}
	for _, leg := range legs {
		for i, phase := range samplePhases {
			t := wrapPhase(phase+leg.PhaseOffset) * length
			plan.Operations = append(plan.Operations, project.Operation{
				Kind: project.OpSetKeyframe,
				SetKeyframe: &project.SetKeyframeInput{
					Animation: animation,
					Bone:      leg.Bone,
					Channel:   project.ChannelRotation,
					Keyframe: project.Keyframe{
						Time:  t,
						Value: project.Vec3{sampleSwing[i] * swingDeg, 0, 0},
					},
				},
			})
		}
	}

	var rev string
	var result project.PlanResult
	_ = revguard.RunWithoutRevisionGuard(ctx, func(ctx context.Context) error {
		rev, result = tc.Project.ApplyPlan(plan)
		return nil
	})
	if result.Error != nil {
		return toolerr.Failure(result.Error.WithDetails(map[string]any{
			"failedStep": result.FailedStep,
			"appliedOf":  len(plan.Operations),
		}))
	}
	return toolerr.SuccessWithMeta(map[string]any{
		"animation": animation,
		"legs":      len(legs),
		"keyframes": len(plan.Operations),
	}, revMeta(rev))
}

func wrapPhase(p float64) float64 {
	if p < 0 {
		return p - float64(int(p)) + 1
	}
	return p - float64(int(p))
}
