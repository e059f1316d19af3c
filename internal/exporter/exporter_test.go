package exporter

import (
	"encoding/json"
	"testing"

	"github.com/ashfox/ashfox-mcp/internal/project"
)

func buildFixtureProject(t *testing.T) *project.Project {
	t.Helper()
	p := project.New("proj1", "idle_test")
	if _, d := p.AddBone(project.AddBoneInput{Name: "root", Pivot: project.Vec3{0, 0, 0}}); d != nil {
		t.Fatalf("unexpected error: %v", d)
	}
	if _, d := p.AddCube(project.AddCubeInput{Name: "cube", Bone: "root", From: project.Vec3{0, 0, 0}, To: project.Vec3{4, 4, 4}}); d != nil {
		t.Fatalf("unexpected error: %v", d)
	}
	if _, d := p.AddAnimation(project.AddAnimationInput{Name: "idle", Length: 1, Loop: true, FPS: 20}); d != nil {
		t.Fatalf("unexpected error: %v", d)
	}
	if _, d := p.SetKeyframe(project.SetKeyframeInput{
		Animation: "idle", Bone: "root", Channel: project.ChannelRotation,
		Keyframe: project.Keyframe{Time: 0, Value: project.Vec3{0, 10, 0}},
	}); d != nil {
		t.Fatalf("unexpected error: %v", d)
	}
	return p
}

func TestBuildGeometryMatchesMirroredXOriginConvention(t *testing.T) {
	p := buildFixtureProject(t)
	state, _ := p.Snapshot()

	geo := BuildGeometry(state, "idle_test")
	cube := geo.Geometry[0].Bones[0].Cubes[0]
	if cube.Origin != ([3]Number{-4, 0, 0}) {
		t.Fatalf("expected origin [-4,0,0], got %v", cube.Origin)
	}
	if cube.Size != ([3]Number{4, 4, 4}) {
		t.Fatalf("expected size [4,4,4], got %v", cube.Size)
	}
}

func TestBuildAnimationsNegatesRotationYAxis(t *testing.T) {
	p := buildFixtureProject(t)
	state, _ := p.Snapshot()

	anim := BuildAnimations(state)
	entry := anim.Animations["idle"]
	rot, ok := entry.Bones["root"].Rotation.(map[string]any)
	if !ok {
		t.Fatalf("expected rotation keyed map, got %T", entry.Bones["root"].Rotation)
	}
	key, ok := rot["0.0"]
	if !ok {
		t.Fatalf("expected time key \"0.0\", got keys %v", rot)
	}
	vec, ok := key.([3]Number)
	if !ok {
		t.Fatalf("expected bare 3-tuple, got %T", key)
	}
	if vec != ([3]Number{0, -10, 0}) {
		t.Fatalf("expected Y-axis negated [0,-10,0], got %v", vec)
	}
}

func TestBuildAnimationsDoesNotNegatePositionOrScale(t *testing.T) {
	p := project.New("proj1", "test")
	if _, d := p.AddBone(project.AddBoneInput{Name: "root"}); d != nil {
		t.Fatalf("unexpected error: %v", d)
	}
	if _, d := p.AddAnimation(project.AddAnimationInput{Name: "move", Length: 1, FPS: 20}); d != nil {
		t.Fatalf("unexpected error: %v", d)
	}
	if _, d := p.SetKeyframe(project.SetKeyframeInput{
		Animation: "move", Bone: "root", Channel: project.ChannelPosition,
		Keyframe: project.Keyframe{Time: 0, Value: project.Vec3{0, 10, 0}},
	}); d != nil {
		t.Fatalf("unexpected error: %v", d)
	}

	state, _ := p.Snapshot()
	anim := BuildAnimations(state)
	vec := anim.Animations["move"].Bones["root"].Position.(map[string]any)["0.0"].([3]Number)
	if vec != ([3]Number{0, 10, 0}) {
		t.Fatalf("expected position channel left unchanged, got %v", vec)
	}
}

func TestExportDigestStableAcrossRepeatedCalls(t *testing.T) {
	p := buildFixtureProject(t)
	state, _ := p.Snapshot()

	bundle1 := Export(state, "idle_test")
	bundle2 := Export(state, "idle_test")

	d1, err := bundle1.Digest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d2, err := bundle2.Digest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d1 != d2 {
		t.Fatalf("expected stable digest across repeated export calls")
	}
}

func TestNumberMarshalsWithoutScientificNotation(t *testing.T) {
	cases := map[Number]string{
		0:    "0",
		4:    "4",
		-4:   "-4",
		1.5:  "1.5",
		0.25: "0.25",
	}
	for n, want := range cases {
		data, err := json.Marshal(n)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != want {
			t.Fatalf("expected %q, got %q", want, string(data))
		}
	}
}

func TestFormatTimeKeyKeepsOneFractionalDigitMinimum(t *testing.T) {
	cases := map[float64]string{
		0:    "0.0",
		0.5:  "0.5",
		1.25: "1.25",
		2:    "2.0",
	}
	for t_, want := range cases {
		if got := formatTimeKey(t_); got != want {
			t.Fatalf("formatTimeKey(%v) = %q, want %q", t_, got, want)
		}
	}
}
