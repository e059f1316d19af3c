// animation.go — the deterministic animation artifact (spec.md §4.6.2).
package exporter

import "github.com/ashfox/ashfox-mcp/internal/project"

// AnimationArtifact is the top-level animation export document.
type AnimationArtifact struct {
	Animations map[string]animationEntry `json:"animations"`
}

type animationEntry struct {
	AnimationLength Number                  `json:"animation_length"`
	Loop            bool                    `json:"loop,omitempty"`
	Bones           map[string]boneChannels `json:"bones,omitempty"`
	SoundEffects    map[string]effectKey    `json:"sound_effects,omitempty"`
	ParticleEffects map[string]effectKey    `json:"particle_effects,omitempty"`
	Timeline        map[string]any          `json:"timeline,omitempty"`
}

type boneChannels struct {
	Rotation any `json:"rotation,omitempty"`
	Position any `json:"position,omitempty"`
	Scale    any `json:"scale,omitempty"`
}

type effectKey struct {
	Effect string `json:"effect"`
}

// easingKeyframe is the object shape a keyframe carrying easing metadata
// emits in place of a bare 3-tuple (spec.md §4.6: "emits {pre, post,
// easing, easingArgs} at that key").
type easingKeyframe struct {
	Pre        *[3]Number `json:"pre,omitempty"`
	Post       *[3]Number `json:"post,omitempty"`
	Easing     string     `json:"easing,omitempty"`
	EasingArgs []Number   `json:"easingArgs,omitempty"`
}

func channelKey(kind project.ChannelKind) string {
	switch kind {
	case project.ChannelRotation:
		return "rotation"
	case project.ChannelPosition:
		return "position"
	case project.ChannelScale:
		return "scale"
	default:
		return string(kind)
	}
}

// BuildAnimations assembles the animation artifact from a (typically
// already normalized) project state.
func BuildAnimations(s *project.State) AnimationArtifact {
	normalized := project.Normalize(s)

	out := AnimationArtifact{Animations: map[string]animationEntry{}}
	for _, anim := range normalized.Animations {
		entry := animationEntry{
			AnimationLength: Number(anim.Length),
			Loop:            anim.Loop,
			Bones:           map[string]boneChannels{},
		}

		for _, ch := range anim.Channels {
			// A channel with zero keys is valid but omitted from the export.
			if len(ch.Keys) == 0 {
				continue
			}
			bc := entry.Bones[ch.Bone]
			keyed := buildChannelKeys(ch)
			switch ch.Channel {
			case project.ChannelRotation:
				bc.Rotation = keyed
			case project.ChannelPosition:
				bc.Position = keyed
			case project.ChannelScale:
				bc.Scale = keyed
			}
			entry.Bones[ch.Bone] = bc
		}
		if len(entry.Bones) == 0 {
			entry.Bones = nil
		}

		for _, trig := range anim.Triggers {
			switch trig.Type {
			case project.TriggerSound:
				entry.SoundEffects = buildEffectKeys(trig)
			case project.TriggerParticle:
				entry.ParticleEffects = buildEffectKeys(trig)
			case project.TriggerTimeline:
				entry.Timeline = buildTimelineKeys(trig)
			}
		}

		out.Animations[anim.Name] = entry
	}
	return out
}

func buildChannelKeys(ch project.Channel) map[string]any {
	keys := make(map[string]any, len(ch.Keys))
	negateRotation := ch.Channel == project.ChannelRotation
	for _, k := range ch.Keys {
		value := k.Value
		if negateRotation {
			value[1] = -value[1]
		}
		if k.HasEasing() {
			keys[formatTimeKey(k.Time)] = buildEasingKeyframe(k, negateRotation)
		} else {
			keys[formatTimeKey(k.Time)] = vec3ToNumbers([3]float64(value))
		}
	}
	return keys
}

func buildEasingKeyframe(k project.Keyframe, negateRotation bool) easingKeyframe {
	e := easingKeyframe{Easing: k.Easing}
	if k.Pre != nil {
		pre := *k.Pre
		if negateRotation {
			pre[1] = -pre[1]
		}
		v := vec3ToNumbers([3]float64(pre))
		e.Pre = &v
	}
	if k.Post != nil {
		post := *k.Post
		if negateRotation {
			post[1] = -post[1]
		}
		v := vec3ToNumbers([3]float64(post))
		e.Post = &v
	}
	if len(k.EasingArgs) > 0 {
		args := make([]Number, len(k.EasingArgs))
		for i, a := range k.EasingArgs {
			args[i] = Number(a)
		}
		e.EasingArgs = args
	}
	return e
}

func buildEffectKeys(trig project.Trigger) map[string]effectKey {
	out := make(map[string]effectKey, len(trig.Keys))
	for _, k := range trig.Keys {
		name, _ := k.Value.(string)
		out[formatTimeKey(k.Time)] = effectKey{Effect: name}
	}
	return out
}

func buildTimelineKeys(trig project.Trigger) map[string]any {
	out := make(map[string]any, len(trig.Keys))
	for _, k := range trig.Keys {
		out[formatTimeKey(k.Time)] = k.Value
	}
	return out
}
