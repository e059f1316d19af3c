package project

import "testing"

func TestComputeTextureUsageResolvesBoundFaces(t *testing.T) {
	p := New("id", "test")
	mustOK(t)(p.AddBone(AddBoneInput{Name: "root"}))
	mustOK(t)(p.AddTexture(AddTextureInput{Name: "skin", Width: 64, Height: 64}))
	mustOK(t)(p.AddCube(AddCubeInput{
		Name: "c1", Bone: "root", From: Vec3{0, 0, 0}, To: Vec3{1, 1, 1},
		Faces: map[string]FaceUV{"north": {UV: [4]float64{0, 0, 8, 8}, Texture: "skin"}},
	}))

	state, _ := p.Snapshot()
	usage := ComputeTextureUsage(state)
	if len(usage.ByTexture["skin"]) != 1 {
		t.Fatalf("expected one resolved face reference for skin, got %d", len(usage.ByTexture["skin"]))
	}
	if len(usage.Unresolved) != 0 {
		t.Fatalf("expected no unresolved references, got %d", len(usage.Unresolved))
	}
	if usage.UsageID == "" {
		t.Fatalf("expected a non-empty usage digest")
	}
}

func TestComputeTextureUsageDigestStableAcrossRecomputation(t *testing.T) {
	p := New("id", "test")
	mustOK(t)(p.AddBone(AddBoneInput{Name: "root"}))
	mustOK(t)(p.AddTexture(AddTextureInput{Name: "skin", Width: 64, Height: 64}))
	mustOK(t)(p.AddCube(AddCubeInput{
		Name: "c1", Bone: "root", From: Vec3{0, 0, 0}, To: Vec3{1, 1, 1},
		Faces: map[string]FaceUV{"north": {UV: [4]float64{0, 0, 8, 8}, Texture: "skin"}},
	}))

	state, _ := p.Snapshot()
	first := ComputeTextureUsage(state).UsageID
	second := ComputeTextureUsage(state).UsageID
	if first != second {
		t.Fatalf("expected the usage digest to be stable across repeated computation")
	}
}
