// plan.go — the planner→applier pipeline for composite/proxy tools (e.g.
// apply_pose_preset, generate_walk_cycle): several Operations are applied,
// in the order the Plan lists them, against one cloned working state under
// a single lock acquisition, and either all commit together or none do.
// This is the "preferred transactional strategy" for multi-step tools noted
// in spec.md §9: rather than each step taking its own revision-guarded turn,
// the whole plan applies under one bypass of the per-call revision guard,
// and on the first failing step the working clone is discarded so the live
// pre-apply state stays in place.
package project

import "github.com/ashfox/ashfox-mcp/internal/toolerr"

// OperationKind enumerates the mutation a single Operation performs.
type OperationKind string

const (
	OpAddBone         OperationKind = "add_bone"
	OpUpdateBone      OperationKind = "update_bone"
	OpDeleteBone      OperationKind = "delete_bone"
	OpAddCube         OperationKind = "add_cube"
	OpUpdateCube      OperationKind = "update_cube"
	OpDeleteCube      OperationKind = "delete_cube"
	OpAddTexture      OperationKind = "add_texture"
	OpUpdateTexture   OperationKind = "update_texture"
	OpDeleteTexture   OperationKind = "delete_texture"
	OpAddAnimation    OperationKind = "add_animation"
	OpUpdateAnimation OperationKind = "update_animation"
	OpDeleteAnimation OperationKind = "delete_animation"
	OpSetKeyframe     OperationKind = "set_keyframe"
	OpDeleteKeyframe  OperationKind = "delete_keyframe"
	OpSetTriggerKey   OperationKind = "set_trigger_key"
)

// Operation is one step of a Plan. Exactly the field matching Kind is read.
type Operation struct {
	Kind OperationKind

	AddBone         *AddBoneInput
	UpdateBone      *UpdateBoneInput
	DeleteBone      *DeleteBoneOp
	AddCube         *AddCubeInput
	UpdateCube      *UpdateCubeInput
	DeleteCube      *string
	AddTexture      *AddTextureInput
	UpdateTexture   *UpdateTextureInput
	DeleteTexture   *string
	AddAnimation    *AddAnimationInput
	UpdateAnimation *UpdateAnimationInput
	DeleteAnimation *string
	SetKeyframe     *SetKeyframeInput
	DeleteKeyframe  *DeleteKeyframeInput
	SetTriggerKey   *SetTriggerKeyInput
}

// DeleteBoneOp is delete_bone's operands within a plan.
type DeleteBoneOp struct {
	Name   string
	Policy DeletePolicy
}

// Plan is an ordered sequence of Operations applied atomically.
type Plan struct {
	Operations []Operation
}

// PlanResult reports which step, if any, failed.
type PlanResult struct {
	Applied    int
	FailedStep int
	Error      *toolerr.Detail
}

// ApplyPlan runs every operation against one cloned working state. If any
// operation fails validation, the whole plan is discarded and the project's
// state and revision are left exactly as they were before the call
// (invariant: no partial writes, spec.md §8 invariant 2, extended to
// multi-step tools).
func (p *Project) ApplyPlan(plan Plan) (string, PlanResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	working := p.state.Clone()
	for i, op := range plan.Operations {
		if detail := applyOperation(working, p.limits, p.deletePolicy, op); detail != nil {
			return p.revision, PlanResult{Applied: i, FailedStep: i, Error: detail}
		}
	}

	p.state = working
	p.revision = ComputeRevision(p.state)
	return p.revision, PlanResult{Applied: len(plan.Operations), FailedStep: -1}
}

func applyOperation(s *State, limits Limits, deletePolicy DeletePolicy, op Operation) *toolerr.Detail {
	switch op.Kind {
	case OpAddBone:
		return applyAddBone(s, *op.AddBone)
	case OpUpdateBone:
		return applyUpdateBone(s, *op.UpdateBone)
	case OpDeleteBone:
		return applyDeleteBone(s, deletePolicy, op.DeleteBone.Name, op.DeleteBone.Policy)
	case OpAddCube:
		return applyAddCube(s, limits, *op.AddCube)
	case OpUpdateCube:
		return applyUpdateCube(s, *op.UpdateCube)
	case OpDeleteCube:
		return applyDeleteCube(s, *op.DeleteCube)
	case OpAddTexture:
		return applyAddTexture(s, limits, *op.AddTexture)
	case OpUpdateTexture:
		return applyUpdateTexture(s, limits, *op.UpdateTexture)
	case OpDeleteTexture:
		return applyDeleteTexture(s, *op.DeleteTexture)
	case OpAddAnimation:
		return applyAddAnimation(s, limits, *op.AddAnimation)
	case OpUpdateAnimation:
		return applyUpdateAnimation(s, limits, *op.UpdateAnimation)
	case OpDeleteAnimation:
		return applyDeleteAnimation(s, *op.DeleteAnimation)
	case OpSetKeyframe:
		return applySetKeyframe(s, *op.SetKeyframe)
	case OpDeleteKeyframe:
		return applyDeleteKeyframe(s, *op.DeleteKeyframe)
	case OpSetTriggerKey:
		return applySetTriggerKey(s, *op.SetTriggerKey)
	default:
		return toolerr.New(toolerr.CodeInvalidPayload, "unknown plan operation kind")
	}
}
