// normalize.go — canonical ordering applied before hashing and export
// (spec.md §4.5 "Normalization step"). Object keys inside map-typed fields
// (texture Meta, cube Faces) are already sorted lexicographically by
// encoding/json's map marshaling, so normalization here only needs to fix
// slice order and merge duplicate keyframe buckets.
package project

import "sort"

// Normalize returns a new State with bones sorted by (parent, name), cubes
// by (bone, name), textures by name, animations by name, channels by
// (bone, channel), and keyframes bucketed and sorted by time.
func Normalize(s *State) *State {
	out := s.Clone()

	sort.SliceStable(out.Bones, func(i, j int) bool {
		a, b := out.Bones[i], out.Bones[j]
		if a.Parent != b.Parent {
			return a.Parent < b.Parent
		}
		return a.Name < b.Name
	})

	sort.SliceStable(out.Cubes, func(i, j int) bool {
		a, b := out.Cubes[i], out.Cubes[j]
		if a.Bone != b.Bone {
			return a.Bone < b.Bone
		}
		return a.Name < b.Name
	})

	sort.SliceStable(out.Textures, func(i, j int) bool {
		return out.Textures[i].Name < out.Textures[j].Name
	})

	sort.SliceStable(out.Animations, func(i, j int) bool {
		return out.Animations[i].Name < out.Animations[j].Name
	})

	for ai := range out.Animations {
		anim := &out.Animations[ai]
		for ci := range anim.Channels {
			anim.Channels[ci].Keys = BucketKeyframes(anim.Channels[ci].Keys, out.TimePolicy)
		}
		sort.SliceStable(anim.Channels, func(i, j int) bool {
			a, b := anim.Channels[i], anim.Channels[j]
			if a.Bone != b.Bone {
				return a.Bone < b.Bone
			}
			return a.Channel < b.Channel
		})
		for ti := range anim.Triggers {
			sort.SliceStable(anim.Triggers[ti].Keys, func(i, j int) bool {
				return anim.Triggers[ti].Keys[i].Time < anim.Triggers[ti].Keys[j].Time
			})
		}
	}

	return out
}

// BucketTime rounds time to the nearest multiple of policy.BucketPrecision,
// treating values within policy.TimeEpsilon of a bucket boundary as exactly
// that bucket (spec.md §3 invariant 2, §8 invariant 5).
func BucketTime(t float64, policy TimePolicy) float64 {
	if policy.BucketPrecision <= 0 {
		return t
	}
	quot := t / policy.BucketPrecision
	rounded := roundHalfAwayFromZero(quot)
	bucketed := rounded * policy.BucketPrecision
	if absf(bucketed-t) <= policy.TimeEpsilon {
		return bucketed
	}
	// Outside epsilon of the rounded bucket: still bucket to preserve
	// monotonic ordering, per the same rounding rule.
	return bucketed
}

func roundHalfAwayFromZero(x float64) float64 {
	if x >= 0 {
		return float64(int64(x + 0.5))
	}
	return float64(int64(x - 0.5))
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// BucketKeyframes buckets every key's time per policy, merging duplicate
// buckets with last-write-wins (spec.md §4.5), and returns the result
// sorted ascending by bucketed time.
func BucketKeyframes(keys []Keyframe, policy TimePolicy) []Keyframe {
	type entry struct {
		bucket float64
		order  int
		key    Keyframe
	}
	byBucket := make(map[float64]entry, len(keys))
	order := 0
	for _, k := range keys {
		b := BucketTime(k.Time, policy)
		nk := k
		nk.Time = b
		byBucket[b] = entry{bucket: b, order: order, key: nk}
		order++
	}
	out := make([]Keyframe, 0, len(byBucket))
	for _, e := range byBucket {
		out = append(out, e.key)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})
	return out
}
