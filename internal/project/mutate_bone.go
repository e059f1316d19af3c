// mutate_bone.go — add_bone/update_bone/delete_bone mutators (spec.md §4.5).
package project

import (
	"fmt"

	"github.com/ashfox/ashfox-mcp/internal/toolerr"
)

// AddBoneInput is the validated argument shape for add_bone.
type AddBoneInput struct {
	Name       string
	Parent     string
	Pivot      Vec3
	Rotation   *Vec3
	Scale      *Vec3
	Visibility *bool
}

// AddBone appends a new bone, enforcing unique names and parent existence.
func (p *Project) AddBone(in AddBoneInput) (string, *toolerr.Detail) {
	return p.mutate(func(s *State) *toolerr.Detail {
		return applyAddBone(s, in)
	})
}

func applyAddBone(s *State, in AddBoneInput) *toolerr.Detail {
	if in.Name == "" {
		return toolerr.New(toolerr.CodeInvalidPayload, "bone name must not be empty")
	}
	if s.FindBone(in.Name) >= 0 {
		return toolerr.New(toolerr.CodeInvalidPayload, fmt.Sprintf("bone %q already exists", in.Name))
	}
	if in.Parent != "" && s.FindBone(in.Parent) < 0 {
		return toolerr.New(toolerr.CodeInvalidPayload, fmt.Sprintf("parent bone %q does not exist", in.Parent))
	}
	if !in.Pivot.IsFinite() {
		return toolerr.New(toolerr.CodeInvalidPayload, "pivot must be finite")
	}
	s.Bones = append(s.Bones, Bone{
		Name:       in.Name,
		Parent:     in.Parent,
		Pivot:      in.Pivot,
		Rotation:   in.Rotation,
		Scale:      in.Scale,
		Visibility: in.Visibility,
	})
	return nil
}

// UpdateBoneInput is the validated argument shape for update_bone. Nil
// pointers mean "leave unchanged".
type UpdateBoneInput struct {
	Name       string
	NewName    *string
	Parent     *string
	Pivot      *Vec3
	Rotation   *Vec3
	Scale      *Vec3
	Visibility *bool
}

// UpdateBone mutates an existing bone in place.
func (p *Project) UpdateBone(in UpdateBoneInput) (string, *toolerr.Detail) {
	return p.mutate(func(s *State) *toolerr.Detail {
		return applyUpdateBone(s, in)
	})
}

func applyUpdateBone(s *State, in UpdateBoneInput) *toolerr.Detail {
	idx := s.FindBone(in.Name)
	if idx < 0 {
		return toolerr.New(toolerr.CodeInvalidState, fmt.Sprintf("bone %q does not exist", in.Name))
	}
	bone := &s.Bones[idx]
	if in.NewName != nil && *in.NewName != bone.Name {
		if s.FindBone(*in.NewName) >= 0 {
			return toolerr.New(toolerr.CodeInvalidPayload, fmt.Sprintf("bone %q already exists", *in.NewName))
		}
		renameBoneReferences(s, bone.Name, *in.NewName)
		bone.Name = *in.NewName
	}
	if in.Parent != nil {
		if *in.Parent != "" && s.FindBone(*in.Parent) < 0 {
			return toolerr.New(toolerr.CodeInvalidPayload, fmt.Sprintf("parent bone %q does not exist", *in.Parent))
		}
		if *in.Parent == bone.Name {
			return toolerr.New(toolerr.CodeInvalidPayload, "bone cannot be its own parent")
		}
		bone.Parent = *in.Parent
	}
	if in.Pivot != nil {
		if !in.Pivot.IsFinite() {
			return toolerr.New(toolerr.CodeInvalidPayload, "pivot must be finite")
		}
		bone.Pivot = *in.Pivot
	}
	if in.Rotation != nil {
		bone.Rotation = in.Rotation
	}
	if in.Scale != nil {
		bone.Scale = in.Scale
	}
	if in.Visibility != nil {
		bone.Visibility = in.Visibility
	}
	return nil
}

func renameBoneReferences(s *State, oldName, newName string) {
	for i := range s.Bones {
		if s.Bones[i].Parent == oldName {
			s.Bones[i].Parent = newName
		}
	}
	for i := range s.Cubes {
		if s.Cubes[i].Bone == oldName {
			s.Cubes[i].Bone = newName
		}
	}
	for ai := range s.Animations {
		for ci := range s.Animations[ai].Channels {
			if s.Animations[ai].Channels[ci].Bone == oldName {
				s.Animations[ai].Channels[ci].Bone = newName
			}
		}
	}
}

// DeleteBone removes a bone. Descendant bones are cascade-deleted (along
// with their cubes) or reparented to root, per policy; policy defaults to
// the project's configured DeletePolicy when empty.
func (p *Project) DeleteBone(name string, policy DeletePolicy) (string, *toolerr.Detail) {
	return p.mutate(func(s *State) *toolerr.Detail {
		return applyDeleteBone(s, p.deletePolicy, name, policy)
	})
}

func applyDeleteBone(s *State, defaultPolicy DeletePolicy, name string, policy DeletePolicy) *toolerr.Detail {
	idx := s.FindBone(name)
	if idx < 0 {
		return toolerr.New(toolerr.CodeInvalidState, fmt.Sprintf("bone %q does not exist", name))
	}
	if policy == "" {
		policy = defaultPolicy
	}
	descendants := s.BoneDescendants(name)
	toRemove := map[string]bool{name: true}

	switch policy {
	case DeletePolicyReparent:
		for i := range s.Bones {
			if s.Bones[i].Parent == name {
				s.Bones[i].Parent = ""
			}
		}
	default: // DeletePolicyCascade
		for _, d := range descendants {
			toRemove[d] = true
		}
	}

	remainingBones := s.Bones[:0:0]
	for _, b := range s.Bones {
		if !toRemove[b.Name] {
			remainingBones = append(remainingBones, b)
		}
	}
	s.Bones = remainingBones

	remainingCubes := s.Cubes[:0:0]
	for _, c := range s.Cubes {
		if !toRemove[c.Bone] {
			remainingCubes = append(remainingCubes, c)
		}
	}
	s.Cubes = remainingCubes

	for ai := range s.Animations {
		remainingChannels := s.Animations[ai].Channels[:0:0]
		for _, ch := range s.Animations[ai].Channels {
			if !toRemove[ch.Bone] {
				remainingChannels = append(remainingChannels, ch)
			}
		}
		s.Animations[ai].Channels = remainingChannels
	}
	return nil
}
