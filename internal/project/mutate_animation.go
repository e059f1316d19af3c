// mutate_animation.go — add_animation/update_animation/delete_animation and
// the per-channel keyframe mutators (spec.md §4.5, §4.6, §3 invariant 4
// "maxAnimationSeconds").
package project

import (
	"fmt"

	"github.com/ashfox/ashfox-mcp/internal/toolerr"
)

// AddAnimationInput is the validated argument shape for add_animation.
type AddAnimationInput struct {
	Name   string
	Length float64
	Loop   bool
	FPS    float64
}

func validateAnimationTiming(limits Limits, length, fps float64) *toolerr.Detail {
	if length <= 0 {
		return toolerr.New(toolerr.CodeInvalidPayload, "animation length must be positive")
	}
	if length > limits.MaxAnimationSeconds {
		return toolerr.New(toolerr.CodeInvalidPayload, fmt.Sprintf("animation length exceeds the %.0fs limit", limits.MaxAnimationSeconds))
	}
	if fps <= 0 {
		return toolerr.New(toolerr.CodeInvalidPayload, "fps must be positive")
	}
	return nil
}

// AddAnimation appends a new, channel-less animation clip.
func (p *Project) AddAnimation(in AddAnimationInput) (string, *toolerr.Detail) {
	return p.mutate(func(s *State) *toolerr.Detail {
		return applyAddAnimation(s, p.limits, in)
	})
}

func applyAddAnimation(s *State, limits Limits, in AddAnimationInput) *toolerr.Detail {
	if in.Name == "" {
		return toolerr.New(toolerr.CodeInvalidPayload, "animation name must not be empty")
	}
	if s.FindAnimation(in.Name) >= 0 {
		return toolerr.New(toolerr.CodeInvalidPayload, fmt.Sprintf("animation %q already exists", in.Name))
	}
	if detail := validateAnimationTiming(limits, in.Length, in.FPS); detail != nil {
		return detail
	}
	s.Animations = append(s.Animations, Animation{
		Name:   in.Name,
		Length: in.Length,
		Loop:   in.Loop,
		FPS:    in.FPS,
	})
	return nil
}

// UpdateAnimationInput is the validated argument shape for update_animation.
// Nil pointers mean "leave unchanged".
type UpdateAnimationInput struct {
	Name    string
	NewName *string
	Length  *float64
	Loop    *bool
	FPS     *float64
}

// UpdateAnimation mutates an existing animation's clip-level fields.
func (p *Project) UpdateAnimation(in UpdateAnimationInput) (string, *toolerr.Detail) {
	return p.mutate(func(s *State) *toolerr.Detail {
		return applyUpdateAnimation(s, p.limits, in)
	})
}

func applyUpdateAnimation(s *State, limits Limits, in UpdateAnimationInput) *toolerr.Detail {
	idx := s.FindAnimation(in.Name)
	if idx < 0 {
		return toolerr.New(toolerr.CodeInvalidState, fmt.Sprintf("animation %q does not exist", in.Name))
	}
	anim := &s.Animations[idx]
	if in.NewName != nil && *in.NewName != anim.Name {
		if s.FindAnimation(*in.NewName) >= 0 {
			return toolerr.New(toolerr.CodeInvalidPayload, fmt.Sprintf("animation %q already exists", *in.NewName))
		}
		anim.Name = *in.NewName
	}
	length, fps := anim.Length, anim.FPS
	if in.Length != nil {
		length = *in.Length
	}
	if in.FPS != nil {
		fps = *in.FPS
	}
	if in.Length != nil || in.FPS != nil {
		if detail := validateAnimationTiming(limits, length, fps); detail != nil {
			return detail
		}
		anim.Length, anim.FPS = length, fps
	}
	if in.Loop != nil {
		anim.Loop = *in.Loop
	}
	return nil
}

// DeleteAnimation removes an animation clip by name.
func (p *Project) DeleteAnimation(name string) (string, *toolerr.Detail) {
	return p.mutate(func(s *State) *toolerr.Detail {
		return applyDeleteAnimation(s, name)
	})
}

func applyDeleteAnimation(s *State, name string) *toolerr.Detail {
	idx := s.FindAnimation(name)
	if idx < 0 {
		return toolerr.New(toolerr.CodeInvalidState, fmt.Sprintf("animation %q does not exist", name))
	}
	s.Animations = append(s.Animations[:idx], s.Animations[idx+1:]...)
	return nil
}

func findChannel(anim *Animation, bone string, channel ChannelKind) int {
	for i, ch := range anim.Channels {
		if ch.Bone == bone && ch.Channel == channel {
			return i
		}
	}
	return -1
}

// SetKeyframeInput is the validated argument shape for set_keyframe.
type SetKeyframeInput struct {
	Animation string
	Bone      string
	Channel   ChannelKind
	Keyframe  Keyframe
}

// SetKeyframe inserts or replaces a keyframe on a (bone, channel) track.
// Insertion buckets the keyframe's time immediately so that two calls
// targeting the same bucket observably collapse to one entry, matching the
// last-write-wins rule Normalize applies at read/export time (spec.md §4.5,
// §8 invariant 5).
func (p *Project) SetKeyframe(in SetKeyframeInput) (string, *toolerr.Detail) {
	return p.mutate(func(s *State) *toolerr.Detail {
		return applySetKeyframe(s, in)
	})
}

func applySetKeyframe(s *State, in SetKeyframeInput) *toolerr.Detail {
	animIdx := s.FindAnimation(in.Animation)
	if animIdx < 0 {
		return toolerr.New(toolerr.CodeInvalidState, fmt.Sprintf("animation %q does not exist", in.Animation))
	}
	if s.FindBone(in.Bone) < 0 {
		return toolerr.New(toolerr.CodeInvalidPayload, fmt.Sprintf("bone %q does not exist", in.Bone))
	}
	if !in.Keyframe.Value.IsFinite() {
		return toolerr.New(toolerr.CodeInvalidPayload, "keyframe value must be finite")
	}
	anim := &s.Animations[animIdx]
	chIdx := findChannel(anim, in.Bone, in.Channel)
	if chIdx < 0 {
		anim.Channels = append(anim.Channels, Channel{Bone: in.Bone, Channel: in.Channel})
		chIdx = len(anim.Channels) - 1
	}
	ch := &anim.Channels[chIdx]

	bucketed := in.Keyframe
	bucketed.Time = BucketTime(in.Keyframe.Time, s.TimePolicy)
	replaced := false
	for i := range ch.Keys {
		if ch.Keys[i].Time == bucketed.Time {
			ch.Keys[i] = bucketed
			replaced = true
			break
		}
	}
	if !replaced {
		ch.Keys = append(ch.Keys, bucketed)
	}
	return nil
}

// DeleteKeyframeInput is the validated argument shape for delete_keyframe.
type DeleteKeyframeInput struct {
	Animation string
	Bone      string
	Channel   ChannelKind
	Time      float64
}

// DeleteKeyframe removes the keyframe at the bucket containing Time, if any.
func (p *Project) DeleteKeyframe(in DeleteKeyframeInput) (string, *toolerr.Detail) {
	return p.mutate(func(s *State) *toolerr.Detail {
		return applyDeleteKeyframe(s, in)
	})
}

func applyDeleteKeyframe(s *State, in DeleteKeyframeInput) *toolerr.Detail {
	animIdx := s.FindAnimation(in.Animation)
	if animIdx < 0 {
		return toolerr.New(toolerr.CodeInvalidState, fmt.Sprintf("animation %q does not exist", in.Animation))
	}
	anim := &s.Animations[animIdx]
	chIdx := findChannel(anim, in.Bone, in.Channel)
	if chIdx < 0 {
		return toolerr.New(toolerr.CodeInvalidState, fmt.Sprintf("no %s channel on bone %q", in.Channel, in.Bone))
	}
	ch := &anim.Channels[chIdx]
	target := BucketTime(in.Time, s.TimePolicy)
	for i, k := range ch.Keys {
		if k.Time == target {
			ch.Keys = append(ch.Keys[:i], ch.Keys[i+1:]...)
			return nil
		}
	}
	return toolerr.New(toolerr.CodeInvalidState, "no keyframe at the given time")
}

// SetTriggerKeyInput is the validated argument shape for set_trigger_key.
type SetTriggerKeyInput struct {
	Animation string
	Type      TriggerKind
	Time      float64
	Value     any
}

// SetTriggerKey inserts or replaces a timed trigger event, bucketed the same
// way channel keyframes are.
func (p *Project) SetTriggerKey(in SetTriggerKeyInput) (string, *toolerr.Detail) {
	return p.mutate(func(s *State) *toolerr.Detail {
		return applySetTriggerKey(s, in)
	})
}

func applySetTriggerKey(s *State, in SetTriggerKeyInput) *toolerr.Detail {
	animIdx := s.FindAnimation(in.Animation)
	if animIdx < 0 {
		return toolerr.New(toolerr.CodeInvalidState, fmt.Sprintf("animation %q does not exist", in.Animation))
	}
	anim := &s.Animations[animIdx]
	trigIdx := -1
	for i, t := range anim.Triggers {
		if t.Type == in.Type {
			trigIdx = i
			break
		}
	}
	if trigIdx < 0 {
		anim.Triggers = append(anim.Triggers, Trigger{Type: in.Type})
		trigIdx = len(anim.Triggers) - 1
	}
	trig := &anim.Triggers[trigIdx]
	bucketed := BucketTime(in.Time, s.TimePolicy)
	for i := range trig.Keys {
		if trig.Keys[i].Time == bucketed {
			trig.Keys[i].Value = in.Value
			return nil
		}
	}
	trig.Keys = append(trig.Keys, TriggerKey{Time: bucketed, Value: in.Value})
	return nil
}
