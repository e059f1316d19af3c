package project

import "testing"

func TestAddCubeRejectsMissingBone(t *testing.T) {
	p := New("id", "test")
	if _, detail := p.AddCube(AddCubeInput{Name: "c1", Bone: "ghost", From: Vec3{0, 0, 0}, To: Vec3{1, 1, 1}}); detail == nil {
		t.Fatalf("expected missing bone to be rejected")
	}
}

func TestAddCubeEnforcesMaxCubesLimit(t *testing.T) {
	p := New("id", "test").WithLimits(Limits{MaxTextureSize: 2048, MaxCubes: 1, MaxAnimationSeconds: 3600})
	mustOK(t)(p.AddBone(AddBoneInput{Name: "root"}))
	mustOK(t)(p.AddCube(AddCubeInput{Name: "c1", Bone: "root", From: Vec3{0, 0, 0}, To: Vec3{1, 1, 1}}))
	if _, detail := p.AddCube(AddCubeInput{Name: "c2", Bone: "root", From: Vec3{0, 0, 0}, To: Vec3{1, 1, 1}}); detail == nil {
		t.Fatalf("expected cube limit to be enforced")
	}
}

func TestAddCubeRejectsUVOutsideBoundTextures(t *testing.T) {
	p := New("id", "test")
	mustOK(t)(p.AddBone(AddBoneInput{Name: "root"}))
	mustOK(t)(p.AddTexture(AddTextureInput{Name: "skin", Width: 64, Height: 64}))

	uv := [2]float64{100, 100}
	if _, detail := p.AddCube(AddCubeInput{Name: "c1", Bone: "root", From: Vec3{0, 0, 0}, To: Vec3{1, 1, 1}, UV: &uv}); detail == nil {
		t.Fatalf("expected uv outside bound texture resolution to be rejected")
	}
}

func TestAddCubeRejectsNonFiniteGeometry(t *testing.T) {
	p := New("id", "test")
	mustOK(t)(p.AddBone(AddBoneInput{Name: "root"}))
	nan := Vec3{0, 0, 0}
	nan[0] = nan[0] / nan[0] // NaN without importing math in the test
	if _, detail := p.AddCube(AddCubeInput{Name: "c1", Bone: "root", From: nan, To: Vec3{1, 1, 1}}); detail == nil {
		t.Fatalf("expected non-finite geometry to be rejected")
	}
}

func TestUpdateCubeRenameRejectsCollision(t *testing.T) {
	p := New("id", "test")
	mustOK(t)(p.AddBone(AddBoneInput{Name: "root"}))
	mustOK(t)(p.AddCube(AddCubeInput{Name: "c1", Bone: "root", From: Vec3{0, 0, 0}, To: Vec3{1, 1, 1}}))
	mustOK(t)(p.AddCube(AddCubeInput{Name: "c2", Bone: "root", From: Vec3{0, 0, 0}, To: Vec3{1, 1, 1}}))

	newName := "c2"
	if _, detail := p.UpdateCube(UpdateCubeInput{Name: "c1", NewName: &newName}); detail == nil {
		t.Fatalf("expected rename collision to be rejected")
	}
}

func TestDeleteCubeRemovesIt(t *testing.T) {
	p := New("id", "test")
	mustOK(t)(p.AddBone(AddBoneInput{Name: "root"}))
	mustOK(t)(p.AddCube(AddCubeInput{Name: "c1", Bone: "root", From: Vec3{0, 0, 0}, To: Vec3{1, 1, 1}}))
	mustOK(t)(p.DeleteCube("c1"))

	state, _ := p.Snapshot()
	if state.FindCube("c1") >= 0 {
		t.Fatalf("expected cube removed")
	}
}
