package project

import "testing"

func TestAddAnimationRejectsNonPositiveLengthOrFPS(t *testing.T) {
	p := New("id", "test")
	if _, detail := p.AddAnimation(AddAnimationInput{Name: "a", Length: 0, FPS: 20}); detail == nil {
		t.Fatalf("expected zero length to be rejected")
	}
	if _, detail := p.AddAnimation(AddAnimationInput{Name: "b", Length: 1, FPS: 0}); detail == nil {
		t.Fatalf("expected zero fps to be rejected")
	}
}

func TestAddAnimationEnforcesMaxAnimationSeconds(t *testing.T) {
	p := New("id", "test").WithLimits(Limits{MaxTextureSize: 2048, MaxCubes: 5000, MaxAnimationSeconds: 10})
	if _, detail := p.AddAnimation(AddAnimationInput{Name: "a", Length: 20, FPS: 20}); detail == nil {
		t.Fatalf("expected over-limit animation length to be rejected")
	}
}

func TestSetKeyframeMergesDuplicateBuckets(t *testing.T) {
	p := New("id", "test")
	mustOK(t)(p.AddBone(AddBoneInput{Name: "root"}))
	mustOK(t)(p.AddAnimation(AddAnimationInput{Name: "wave", Length: 2, FPS: 20}))

	mustOK(t)(p.SetKeyframe(SetKeyframeInput{Animation: "wave", Bone: "root", Channel: ChannelRotation, Keyframe: Keyframe{Time: 0.0, Value: Vec3{0, 0, 0}}}))
	mustOK(t)(p.SetKeyframe(SetKeyframeInput{Animation: "wave", Bone: "root", Channel: ChannelRotation, Keyframe: Keyframe{Time: 0.001, Value: Vec3{1, 0, 0}}}))

	state, _ := p.Snapshot()
	anim := state.Animations[state.FindAnimation("wave")]
	if len(anim.Channels) != 1 || len(anim.Channels[0].Keys) != 1 {
		t.Fatalf("expected keys within the same bucket to merge, got %d channels", len(anim.Channels))
	}
	if anim.Channels[0].Keys[0].Value != (Vec3{1, 0, 0}) {
		t.Fatalf("expected last-write-wins on bucket merge")
	}
}

func TestSetKeyframeRejectsMissingBone(t *testing.T) {
	p := New("id", "test")
	mustOK(t)(p.AddAnimation(AddAnimationInput{Name: "wave", Length: 2, FPS: 20}))
	if _, detail := p.SetKeyframe(SetKeyframeInput{Animation: "wave", Bone: "ghost", Channel: ChannelRotation, Keyframe: Keyframe{Time: 0, Value: Vec3{0, 0, 0}}}); detail == nil {
		t.Fatalf("expected missing bone to be rejected")
	}
}

func TestDeleteKeyframeRemovesExistingBucket(t *testing.T) {
	p := New("id", "test")
	mustOK(t)(p.AddBone(AddBoneInput{Name: "root"}))
	mustOK(t)(p.AddAnimation(AddAnimationInput{Name: "wave", Length: 2, FPS: 20}))
	mustOK(t)(p.SetKeyframe(SetKeyframeInput{Animation: "wave", Bone: "root", Channel: ChannelRotation, Keyframe: Keyframe{Time: 0.5, Value: Vec3{0, 0, 0}}}))

	mustOK(t)(p.DeleteKeyframe(DeleteKeyframeInput{Animation: "wave", Bone: "root", Channel: ChannelRotation, Time: 0.5}))

	state, _ := p.Snapshot()
	anim := state.Animations[state.FindAnimation("wave")]
	if len(anim.Channels[0].Keys) != 0 {
		t.Fatalf("expected keyframe removed")
	}
}

func TestSetTriggerKeyReplacesSameBucket(t *testing.T) {
	p := New("id", "test")
	mustOK(t)(p.AddAnimation(AddAnimationInput{Name: "wave", Length: 2, FPS: 20}))

	mustOK(t)(p.SetTriggerKey(SetTriggerKeyInput{Animation: "wave", Type: TriggerSound, Time: 1.0, Value: "step1.wav"}))
	mustOK(t)(p.SetTriggerKey(SetTriggerKeyInput{Animation: "wave", Type: TriggerSound, Time: 1.0, Value: "step2.wav"}))

	state, _ := p.Snapshot()
	anim := state.Animations[state.FindAnimation("wave")]
	if len(anim.Triggers) != 1 || len(anim.Triggers[0].Keys) != 1 {
		t.Fatalf("expected a single merged trigger key")
	}
	if anim.Triggers[0].Keys[0].Value != "step2.wav" {
		t.Fatalf("expected last-write-wins on trigger key bucket merge")
	}
}
