package project

import "testing"

func TestAddTextureRejectsOversizedDimensions(t *testing.T) {
	p := New("id", "test").WithLimits(Limits{MaxTextureSize: 64, MaxCubes: 5000, MaxAnimationSeconds: 3600})
	if _, detail := p.AddTexture(AddTextureInput{Name: "skin", Width: 128, Height: 64}); detail == nil {
		t.Fatalf("expected oversized texture to be rejected")
	}
}

func TestAddTextureRejectsLowOpaqueCoverage(t *testing.T) {
	p := New("id", "test")
	meta := map[string]any{"opaqueCoverage": 0.01}
	if _, detail := p.AddTexture(AddTextureInput{Name: "skin", Width: 64, Height: 64, Meta: meta}); detail == nil {
		t.Fatalf("expected low opaque coverage to be rejected")
	}
}

func TestAddTextureAcceptsSufficientOpaqueCoverage(t *testing.T) {
	p := New("id", "test")
	meta := map[string]any{"opaqueCoverage": 0.9}
	if _, detail := p.AddTexture(AddTextureInput{Name: "skin", Width: 64, Height: 64, Meta: meta}); detail != nil {
		t.Fatalf("unexpected error: %v", detail)
	}
}

func TestUpdateTextureRenameCascadesToFaceReferences(t *testing.T) {
	p := New("id", "test")
	mustOK(t)(p.AddBone(AddBoneInput{Name: "root"}))
	mustOK(t)(p.AddTexture(AddTextureInput{Name: "skin", Width: 64, Height: 64}))
	mustOK(t)(p.AddCube(AddCubeInput{
		Name: "c1", Bone: "root", From: Vec3{0, 0, 0}, To: Vec3{1, 1, 1},
		Faces: map[string]FaceUV{"north": {UV: [4]float64{0, 0, 8, 8}, Texture: "skin"}},
	}))

	newName := "skin_v2"
	mustOK(t)(p.UpdateTexture(UpdateTextureInput{Name: "skin", NewName: &newName}))

	state, _ := p.Snapshot()
	face := state.Cubes[state.FindCube("c1")].Faces["north"]
	if face.Texture != "skin_v2" {
		t.Fatalf("expected face texture reference renamed, got %q", face.Texture)
	}
}

func TestDeleteTextureLeavesDanglingFaceReference(t *testing.T) {
	p := New("id", "test")
	mustOK(t)(p.AddBone(AddBoneInput{Name: "root"}))
	mustOK(t)(p.AddTexture(AddTextureInput{Name: "skin", Width: 64, Height: 64}))
	mustOK(t)(p.AddCube(AddCubeInput{
		Name: "c1", Bone: "root", From: Vec3{0, 0, 0}, To: Vec3{1, 1, 1},
		Faces: map[string]FaceUV{"north": {UV: [4]float64{0, 0, 8, 8}, Texture: "skin"}},
	}))

	mustOK(t)(p.DeleteTexture("skin"))

	state, _ := p.Snapshot()
	usage := ComputeTextureUsage(state)
	if len(usage.Unresolved) != 1 {
		t.Fatalf("expected the dangling face reference to surface as unresolved, got %d", len(usage.Unresolved))
	}
}
