package project

import "testing"

func TestApplyPlanCommitsAllStepsTogether(t *testing.T) {
	p := New("id", "test")
	plan := Plan{Operations: []Operation{
		{Kind: OpAddBone, AddBone: &AddBoneInput{Name: "torso"}},
		{Kind: OpAddBone, AddBone: &AddBoneInput{Name: "arm", Parent: "torso"}},
		{Kind: OpAddCube, AddCube: &AddCubeInput{Name: "arm_cube", Bone: "arm", From: Vec3{0, 0, 0}, To: Vec3{1, 1, 1}}},
	}}

	_, result := p.ApplyPlan(plan)
	if result.Error != nil {
		t.Fatalf("unexpected plan error: %v", result.Error)
	}
	if result.Applied != 3 || result.FailedStep != -1 {
		t.Fatalf("expected all 3 steps applied, got %+v", result)
	}

	state, _ := p.Snapshot()
	if state.FindBone("arm") < 0 || state.FindCube("arm_cube") < 0 {
		t.Fatalf("expected plan's bone and cube to be committed")
	}
}

func TestApplyPlanRollsBackOnFailingStep(t *testing.T) {
	p := New("id", "test")
	mustOK(t)(p.AddBone(AddBoneInput{Name: "torso"}))
	before := p.CurrentRevision()

	plan := Plan{Operations: []Operation{
		{Kind: OpAddBone, AddBone: &AddBoneInput{Name: "arm", Parent: "torso"}},
		// References a bone that does not exist: this step must fail and
		// take the whole plan down with it, including the first step.
		{Kind: OpAddCube, AddCube: &AddCubeInput{Name: "bad_cube", Bone: "ghost", From: Vec3{0, 0, 0}, To: Vec3{1, 1, 1}}},
	}}

	_, result := p.ApplyPlan(plan)
	if result.Error == nil {
		t.Fatalf("expected plan to fail")
	}
	if result.FailedStep != 1 {
		t.Fatalf("expected failure at step 1, got %d", result.FailedStep)
	}

	if p.CurrentRevision() != before {
		t.Fatalf("expected revision unchanged after a rolled-back plan")
	}
	state, _ := p.Snapshot()
	if state.FindBone("arm") >= 0 {
		t.Fatalf("expected the plan's first step to be rolled back along with the second")
	}
}
