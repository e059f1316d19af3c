// types.go — the project-state data model (spec.md §3): bones, cubes,
// textures, animations, and the animation time policy. No teacher file
// covers this domain directly; struct shape and mutex discipline follow
// the teacher's internal/session package (sync.RWMutex-guarded maps of
// named entities), generalized to a tree with cross-references (cube→bone,
// channel→bone).
package project

import (
	"encoding/json"
	"fmt"
)

// Vec3 is a 3-component float vector, marshaled as a JSON 3-tuple array.
type Vec3 [3]float64

// MarshalJSON renders Vec3 as [x,y,z].
func (v Vec3) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{v[0], v[1], v[2]})
}

// UnmarshalJSON parses a JSON 3-tuple array into Vec3.
func (v *Vec3) UnmarshalJSON(data []byte) error {
	var arr [3]float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("vec3: %w", err)
	}
	*v = Vec3(arr)
	return nil
}

// IsFinite reports whether every component is a finite float within
// ±maxFinite (1e18); NaN, infinities and larger magnitudes are rejected
// (spec.md §4.5: "from/to finite floats").
func (v Vec3) IsFinite() bool {
	for _, c := range v {
		if c != c || c > maxFinite || c < -maxFinite {
			return false
		}
	}
	return true
}

const maxFinite = 1e18

// Sub returns v - o component-wise.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Bone is a named joint in the project's skeleton.
type Bone struct {
	ID         string  `json:"id,omitempty"`
	Name       string  `json:"name"`
	Parent     string  `json:"parent,omitempty"`
	Pivot      Vec3    `json:"pivot"`
	Rotation   *Vec3   `json:"rotation,omitempty"`
	Scale      *Vec3   `json:"scale,omitempty"`
	Visibility *bool   `json:"visibility,omitempty"`
}

// FaceUV describes one cube face's UV rectangle.
type FaceUV struct {
	UV      [4]float64 `json:"uv"`
	Texture string     `json:"texture,omitempty"`
}

// Cube is a rectangular prism attached to a bone.
type Cube struct {
	ID      string             `json:"id,omitempty"`
	Name    string             `json:"name"`
	Bone    string             `json:"bone"`
	From    Vec3               `json:"from"`
	To      Vec3               `json:"to"`
	UV      *[2]float64        `json:"uv,omitempty"`
	Inflate float64            `json:"inflate,omitempty"`
	Mirror  bool               `json:"mirror,omitempty"`
	Faces   map[string]FaceUV  `json:"faces,omitempty"`
}

// Texture is an image resource referenced by cube UVs.
type Texture struct {
	ID          string         `json:"id,omitempty"`
	Name        string         `json:"name"`
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	ContentHash string         `json:"contentHash,omitempty"`
	Meta        map[string]any `json:"meta,omitempty"`
}

// Keyframe is one timed sample within a channel.
type Keyframe struct {
	Time       float64   `json:"time"`
	Value      Vec3      `json:"value"`
	Interp     string    `json:"interp,omitempty"`
	Easing     string    `json:"easing,omitempty"`
	EasingArgs []float64 `json:"easingArgs,omitempty"`
	Pre        *Vec3     `json:"pre,omitempty"`
	Post       *Vec3     `json:"post,omitempty"`
}

// HasEasing reports whether this keyframe carries easing metadata, which
// changes its export shape from a bare 3-tuple to an object (spec.md §4.6).
func (k Keyframe) HasEasing() bool {
	return k.Easing != "" || k.Pre != nil || k.Post != nil || len(k.EasingArgs) > 0
}

// ChannelKind enumerates the animatable attributes of a bone.
type ChannelKind string

const (
	ChannelRotation ChannelKind = "rot"
	ChannelPosition ChannelKind = "pos"
	ChannelScale    ChannelKind = "scale"
)

// Channel is a (bone, attribute) keyframe track.
type Channel struct {
	Bone    string      `json:"bone"`
	Channel ChannelKind `json:"channel"`
	Keys    []Keyframe  `json:"keys"`
}

// TriggerKind enumerates animation trigger types.
type TriggerKind string

const (
	TriggerSound    TriggerKind = "sound"
	TriggerParticle TriggerKind = "particle"
	TriggerTimeline TriggerKind = "timeline"
)

// TriggerKey is one timed trigger event.
type TriggerKey struct {
	Time  float64 `json:"time"`
	Value any     `json:"value"`
}

// Trigger is a timed, non-channel animation event track.
type Trigger struct {
	Type TriggerKind  `json:"type"`
	Keys []TriggerKey `json:"keys"`
}

// Animation is a named clip over one or more channels.
type Animation struct {
	ID         string    `json:"id,omitempty"`
	Name       string    `json:"name"`
	Length     float64   `json:"length"`
	Loop       bool      `json:"loop"`
	FPS        float64   `json:"fps"`
	Channels   []Channel `json:"channels,omitempty"`
	Triggers   []Trigger `json:"triggers,omitempty"`
}

// TimePolicy controls keyframe-time bucketing (spec.md §3/§4.5).
type TimePolicy struct {
	TimeEpsilon     float64 `json:"timeEpsilon"`
	BucketPrecision float64 `json:"bucketPrecision"`
}

// DefaultTimePolicy matches the fixture precision implied by scenario S3
// ("0.0" / "0.5" keys).
var DefaultTimePolicy = TimePolicy{TimeEpsilon: 1e-4, BucketPrecision: 0.05}

// Limits bounds the size of a project (spec.md §3 invariant 4).
type Limits struct {
	MaxTextureSize      int
	MaxCubes            int
	MaxAnimationSeconds float64
}

// DefaultLimits are the module's default resource bounds.
var DefaultLimits = Limits{MaxTextureSize: 2048, MaxCubes: 5000, MaxAnimationSeconds: 3600}

// State is the full session-scoped project model.
type State struct {
	ID               string
	Name             string
	Format           string
	FormatID         string
	Dirty            bool
	UVPixelsPerBlock float64
	Bones            []Bone
	Cubes            []Cube
	Textures         []Texture
	Animations       []Animation
	TimePolicy       TimePolicy
}

// NewState builds an empty project with default policy.
func NewState(id, name string) *State {
	return &State{
		ID:               id,
		Name:             name,
		Format:           "generic",
		UVPixelsPerBlock: 16,
		TimePolicy:       DefaultTimePolicy,
		Bones:            []Bone{},
		Cubes:            []Cube{},
		Textures:         []Texture{},
		Animations:       []Animation{},
	}
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	out := *s
	out.Bones = append([]Bone(nil), s.Bones...)
	for i, b := range out.Bones {
		if b.Rotation != nil {
			r := *b.Rotation
			out.Bones[i].Rotation = &r
		}
		if b.Scale != nil {
			sc := *b.Scale
			out.Bones[i].Scale = &sc
		}
		if b.Visibility != nil {
			v := *b.Visibility
			out.Bones[i].Visibility = &v
		}
	}
	out.Cubes = append([]Cube(nil), s.Cubes...)
	for i, c := range out.Cubes {
		if c.UV != nil {
			uv := *c.UV
			out.Cubes[i].UV = &uv
		}
		if c.Faces != nil {
			faces := make(map[string]FaceUV, len(c.Faces))
			for k, v := range c.Faces {
				faces[k] = v
			}
			out.Cubes[i].Faces = faces
		}
	}
	out.Textures = append([]Texture(nil), s.Textures...)
	for i, t := range out.Textures {
		if t.Meta != nil {
			meta := make(map[string]any, len(t.Meta))
			for k, v := range t.Meta {
				meta[k] = v
			}
			out.Textures[i].Meta = meta
		}
	}
	out.Animations = make([]Animation, len(s.Animations))
	for i, a := range s.Animations {
		na := a
		na.Channels = make([]Channel, len(a.Channels))
		for j, ch := range a.Channels {
			nch := ch
			nch.Keys = append([]Keyframe(nil), ch.Keys...)
			for k, key := range nch.Keys {
				if key.Pre != nil {
					pre := *key.Pre
					nch.Keys[k].Pre = &pre
				}
				if key.Post != nil {
					post := *key.Post
					nch.Keys[k].Post = &post
				}
				if key.EasingArgs != nil {
					nch.Keys[k].EasingArgs = append([]float64(nil), key.EasingArgs...)
				}
			}
			na.Channels[j] = nch
		}
		na.Triggers = make([]Trigger, len(a.Triggers))
		for j, tr := range a.Triggers {
			ntr := tr
			ntr.Keys = append([]TriggerKey(nil), tr.Keys...)
			na.Triggers[j] = ntr
		}
		out.Animations[i] = na
	}
	return &out
}

// FindBone returns the index of the bone named name, or -1.
func (s *State) FindBone(name string) int {
	for i, b := range s.Bones {
		if b.Name == name {
			return i
		}
	}
	return -1
}

// FindCube returns the index of the cube named name, or -1.
func (s *State) FindCube(name string) int {
	for i, c := range s.Cubes {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// FindTexture returns the index of the texture named name, or -1.
func (s *State) FindTexture(name string) int {
	for i, t := range s.Textures {
		if t.Name == name {
			return i
		}
	}
	return -1
}

// FindAnimation returns the index of the animation named name, or -1.
func (s *State) FindAnimation(name string) int {
	for i, a := range s.Animations {
		if a.Name == name {
			return i
		}
	}
	return -1
}

// BoneDescendants returns the names of every bone whose parent chain
// reaches name, directly or transitively.
func (s *State) BoneDescendants(name string) []string {
	children := map[string][]string{}
	for _, b := range s.Bones {
		if b.Parent != "" {
			children[b.Parent] = append(children[b.Parent], b.Name)
		}
	}
	var out []string
	queue := append([]string(nil), children[name]...)
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		out = append(out, n)
		queue = append(queue, children[n]...)
	}
	return out
}
