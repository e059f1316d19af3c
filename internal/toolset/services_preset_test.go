package toolset

import (
	"context"
	"testing"

	"github.com/ashfox/ashfox-mcp/internal/editorport"
	"github.com/ashfox/ashfox-mcp/internal/project"
)

func newTestContext() *Context {
	return &Context{Project: project.New("p1", "test"), Editor: editorport.NewMemoryPort()}
}

func seedWalkRig(t *testing.T, tc *Context) {
	t.Helper()
	for _, bone := range []string{"leg_l", "leg_r"} {
		if _, detail := tc.Project.AddBone(project.AddBoneInput{Name: bone, Pivot: project.Vec3{0, 0, 0}}); detail != nil {
			t.Fatalf("seed bone %s: %+v", bone, detail)
		}
	}
	if _, detail := tc.Project.AddAnimation(project.AddAnimationInput{Name: "walk", Length: 1, FPS: 30}); detail != nil {
		t.Fatalf("seed animation: %+v", detail)
	}
}

func TestApplyPosePresetSetsKeyframeOnEveryBone(t *testing.T) {
	tc := newTestContext()
	seedWalkRig(t, tc)

	resp := applyPosePreset(context.Background(), tc, map[string]any{
		"animation": "walk",
		"time":      0.0,
		"bones": []any{
			map[string]any{"bone": "leg_l", "rotation": []any{10.0, 0.0, 0.0}},
			map[string]any{"bone": "leg_r", "rotation": []any{-10.0, 0.0, 0.0}},
		},
	})
	if !resp.OK {
		t.Fatalf("expected success, got %+v", resp.Error)
	}

	snap, _ := tc.Project.Snapshot()
	animIdx := snap.FindAnimation("walk")
	if animIdx < 0 {
		t.Fatalf("expected walk animation to exist")
	}
	if len(snap.Animations[animIdx].Channels) != 2 {
		t.Fatalf("expected one channel per posed bone, got %d", len(snap.Animations[animIdx].Channels))
	}
}

func TestApplyPosePresetFailsAtomicallyOnUnknownBone(t *testing.T) {
	tc := newTestContext()
	seedWalkRig(t, tc)
	before := tc.Project.CurrentRevision()

	resp := applyPosePreset(context.Background(), tc, map[string]any{
		"animation": "walk",
		"time":      0.0,
		"bones": []any{
			map[string]any{"bone": "leg_l", "rotation": []any{10.0, 0.0, 0.0}},
			map[string]any{"bone": "does_not_exist", "rotation": []any{1.0, 0.0, 0.0}},
		},
	})
	if resp.OK {
		t.Fatalf("expected failure for an unknown bone")
	}
	if tc.Project.CurrentRevision() != before {
		t.Fatalf("expected no partial write: revision changed despite a failing step")
	}

	snap, _ := tc.Project.Snapshot()
	animIdx := snap.FindAnimation("walk")
	if len(snap.Animations[animIdx].Channels) != 0 {
		t.Fatalf("expected zero channels after a rolled-back plan, got %d", len(snap.Animations[animIdx].Channels))
	}
}

func TestGenerateWalkCycleProducesFourKeyframesPerLeg(t *testing.T) {
	tc := newTestContext()
	seedWalkRig(t, tc)

	resp := generateWalkCycle(context.Background(), tc, map[string]any{
		"animation": "walk",
		"length":    1.0,
		"legBones":  []any{"leg_l", "leg_r"},
	})
	if !resp.OK {
		t.Fatalf("expected success, got %+v", resp.Error)
	}

	snap, _ := tc.Project.Snapshot()
	animIdx := snap.FindAnimation("walk")
	anim := snap.Animations[animIdx]
	if len(anim.Channels) != 2 {
		t.Fatalf("expected one rotation channel per leg, got %d", len(anim.Channels))
	}
	for _, ch := range anim.Channels {
		if len(ch.Keys) != 4 {
			t.Fatalf("expected 4 stride keyframes for bone %s, got %d", ch.Bone, len(ch.Keys))
		}
	}
}
