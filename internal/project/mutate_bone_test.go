package project

import (
	"testing"

	"github.com/ashfox/ashfox-mcp/internal/toolerr"
)

func TestAddBoneRejectsDuplicateName(t *testing.T) {
	p := New("proj1", "test")
	if _, detail := p.AddBone(AddBoneInput{Name: "root"}); detail != nil {
		t.Fatalf("unexpected error: %v", detail)
	}
	if _, detail := p.AddBone(AddBoneInput{Name: "root"}); detail == nil {
		t.Fatalf("expected duplicate bone name to be rejected")
	}
}

func TestAddBoneRejectsMissingParent(t *testing.T) {
	p := New("proj1", "test")
	if _, detail := p.AddBone(AddBoneInput{Name: "arm", Parent: "torso"}); detail == nil {
		t.Fatalf("expected missing parent to be rejected")
	}
}

func TestUpdateBoneRenameCascadesToCubesAndChannels(t *testing.T) {
	p := New("proj1", "test")
	mustOK(t)(p.AddBone(AddBoneInput{Name: "arm"}))
	mustOK(t)(p.AddCube(AddCubeInput{Name: "arm_cube", Bone: "arm", From: Vec3{0, 0, 0}, To: Vec3{1, 1, 1}}))
	mustOK(t)(p.AddAnimation(AddAnimationInput{Name: "wave", Length: 1, FPS: 20}))
	mustOK(t)(p.SetKeyframe(SetKeyframeInput{Animation: "wave", Bone: "arm", Channel: ChannelRotation, Keyframe: Keyframe{Time: 0, Value: Vec3{0, 0, 0}}}))

	newName := "left_arm"
	mustOK(t)(p.UpdateBone(UpdateBoneInput{Name: "arm", NewName: &newName}))

	state, _ := p.Snapshot()
	if state.FindCube("arm_cube") < 0 || state.Cubes[state.FindCube("arm_cube")].Bone != "left_arm" {
		t.Fatalf("expected cube bone reference renamed")
	}
	anim := state.Animations[state.FindAnimation("wave")]
	if anim.Channels[0].Bone != "left_arm" {
		t.Fatalf("expected channel bone reference renamed")
	}
}

func TestDeleteBoneCascadeRemovesDescendantsAndCubes(t *testing.T) {
	p := New("proj1", "test")
	mustOK(t)(p.AddBone(AddBoneInput{Name: "torso"}))
	mustOK(t)(p.AddBone(AddBoneInput{Name: "arm", Parent: "torso"}))
	mustOK(t)(p.AddCube(AddCubeInput{Name: "arm_cube", Bone: "arm", From: Vec3{0, 0, 0}, To: Vec3{1, 1, 1}}))

	mustOK(t)(p.DeleteBone("torso", DeletePolicyCascade))

	state, _ := p.Snapshot()
	if state.FindBone("arm") >= 0 {
		t.Fatalf("expected descendant bone removed")
	}
	if state.FindCube("arm_cube") >= 0 {
		t.Fatalf("expected cube on removed bone to be gone")
	}
}

func TestDeleteBoneReparentKeepsDescendants(t *testing.T) {
	p := New("proj1", "test")
	mustOK(t)(p.AddBone(AddBoneInput{Name: "torso"}))
	mustOK(t)(p.AddBone(AddBoneInput{Name: "arm", Parent: "torso"}))

	mustOK(t)(p.DeleteBone("torso", DeletePolicyReparent))

	state, _ := p.Snapshot()
	idx := state.FindBone("arm")
	if idx < 0 {
		t.Fatalf("expected reparented bone to survive")
	}
	if state.Bones[idx].Parent != "" {
		t.Fatalf("expected reparented bone's parent cleared, got %q", state.Bones[idx].Parent)
	}
}

func TestDeleteBoneRejectsUnknownBone(t *testing.T) {
	p := New("proj1", "test")
	if _, detail := p.DeleteBone("ghost", ""); detail == nil {
		t.Fatalf("expected error deleting unknown bone")
	}
}

func mustOK(t *testing.T) func(rev string, detail *toolerr.Detail) {
	t.Helper()
	return func(rev string, detail *toolerr.Detail) {
		t.Helper()
		if detail != nil {
			t.Fatalf("unexpected error: %v", detail)
		}
	}
}
