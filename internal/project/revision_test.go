package project

import "testing"

func TestComputeRevisionIsDeterministicAcrossFreshProjects(t *testing.T) {
	p1 := New("id-one", "test")
	p2 := New("id-two", "test")

	mustOK(t)(p1.AddBone(AddBoneInput{Name: "root", Pivot: Vec3{0, 0, 0}}))
	mustOK(t)(p2.AddBone(AddBoneInput{Name: "root", Pivot: Vec3{0, 0, 0}}))

	if p1.CurrentRevision() != p2.CurrentRevision() {
		t.Fatalf("expected identical mutation sequences from different project IDs to yield the same revision")
	}
}

func TestComputeRevisionChangesOnSemanticChange(t *testing.T) {
	p := New("id", "test")
	before := p.CurrentRevision()
	mustOK(t)(p.AddBone(AddBoneInput{Name: "root"}))
	after := p.CurrentRevision()
	if before == after {
		t.Fatalf("expected revision to change after a semantic mutation")
	}
}

func TestRevisionUnchangedOnRejectedMutation(t *testing.T) {
	p := New("id", "test")
	before := p.CurrentRevision()
	if _, detail := p.AddBone(AddBoneInput{Name: "arm", Parent: "missing"}); detail == nil {
		t.Fatalf("expected rejected mutation")
	}
	if p.CurrentRevision() != before {
		t.Fatalf("expected revision unchanged after a rejected mutation")
	}
}

func TestComputeRevisionStableUnderKeyOrderReordering(t *testing.T) {
	p1 := New("id-a", "test")
	mustOK(t)(p1.AddBone(AddBoneInput{Name: "a"}))
	mustOK(t)(p1.AddBone(AddBoneInput{Name: "b"}))

	p2 := New("id-b", "test")
	mustOK(t)(p2.AddBone(AddBoneInput{Name: "b"}))
	mustOK(t)(p2.AddBone(AddBoneInput{Name: "a"}))

	if p1.CurrentRevision() != p2.CurrentRevision() {
		t.Fatalf("expected insertion order of unrelated bones not to affect revision")
	}
}
