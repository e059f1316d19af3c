// mutate_cube.go — add_cube/update_cube/delete_cube mutators (spec.md §4.5).
package project

import (
	"fmt"

	"github.com/ashfox/ashfox-mcp/internal/toolerr"
)

// AddCubeInput is the validated argument shape for add_cube.
type AddCubeInput struct {
	Name    string
	Bone    string
	From    Vec3
	To      Vec3
	UV      *[2]float64
	Inflate float64
	Mirror  bool
	Faces   map[string]FaceUV
}

func validateCubeGeometry(s *State, in AddCubeInput) *toolerr.Detail {
	if in.Name == "" {
		return toolerr.New(toolerr.CodeInvalidPayload, "cube name must not be empty")
	}
	if s.FindBone(in.Bone) < 0 {
		return toolerr.New(toolerr.CodeInvalidPayload, fmt.Sprintf("bone %q does not exist", in.Bone))
	}
	if !in.From.IsFinite() || !in.To.IsFinite() {
		return toolerr.New(toolerr.CodeInvalidPayload, "from/to must be finite")
	}
	if in.UV != nil {
		if err := validateUVFitsAnyTexture(s, *in.UV); err != nil {
			return err
		}
	}
	return nil
}

// validateUVFitsAnyTexture checks uv against the project's bound texture
// resolution. With no textures yet bound, any uv is provisionally accepted
// (spec.md leaves texture binding implicit via name matching elsewhere);
// once at least one texture exists, uv must fit within the largest bound
// resolution.
func validateUVFitsAnyTexture(s *State, uv [2]float64) *toolerr.Detail {
	if len(s.Textures) == 0 {
		return nil
	}
	maxW, maxH := 0, 0
	for _, t := range s.Textures {
		if t.Width > maxW {
			maxW = t.Width
		}
		if t.Height > maxH {
			maxH = t.Height
		}
	}
	if uv[0] < 0 || uv[1] < 0 || uv[0] > float64(maxW) || uv[1] > float64(maxH) {
		return toolerr.New(toolerr.CodeInvalidPayload, "uv does not fit current texture resolution")
	}
	return nil
}

// AddCube appends a new cube, enforcing bone existence, finite geometry,
// the project's maxCubes limit, and uv-fits-texture when uv is given.
func (p *Project) AddCube(in AddCubeInput) (string, *toolerr.Detail) {
	return p.mutate(func(s *State) *toolerr.Detail {
		return applyAddCube(s, p.limits, in)
	})
}

func applyAddCube(s *State, limits Limits, in AddCubeInput) *toolerr.Detail {
	if s.FindCube(in.Name) >= 0 {
		return toolerr.New(toolerr.CodeInvalidPayload, fmt.Sprintf("cube %q already exists", in.Name))
	}
	if detail := validateCubeGeometry(s, in); detail != nil {
		return detail
	}
	if len(s.Cubes)+1 > limits.MaxCubes {
		return toolerr.New(toolerr.CodeInvalidState, fmt.Sprintf("cube limit of %d reached", limits.MaxCubes))
	}
	s.Cubes = append(s.Cubes, Cube{
		Name:    in.Name,
		Bone:    in.Bone,
		From:    in.From,
		To:      in.To,
		UV:      in.UV,
		Inflate: in.Inflate,
		Mirror:  in.Mirror,
		Faces:   in.Faces,
	})
	return nil
}

// UpdateCubeInput is the validated argument shape for update_cube. Nil
// pointers mean "leave unchanged".
type UpdateCubeInput struct {
	Name    string
	NewName *string
	Bone    *string
	From    *Vec3
	To      *Vec3
	UV      *[2]float64
	Inflate *float64
	Mirror  *bool
	Faces   map[string]FaceUV
}

// UpdateCube mutates an existing cube in place.
func (p *Project) UpdateCube(in UpdateCubeInput) (string, *toolerr.Detail) {
	return p.mutate(func(s *State) *toolerr.Detail {
		return applyUpdateCube(s, in)
	})
}

func applyUpdateCube(s *State, in UpdateCubeInput) *toolerr.Detail {
	idx := s.FindCube(in.Name)
	if idx < 0 {
		return toolerr.New(toolerr.CodeInvalidState, fmt.Sprintf("cube %q does not exist", in.Name))
	}
	cube := &s.Cubes[idx]
	if in.NewName != nil && *in.NewName != cube.Name {
		if s.FindCube(*in.NewName) >= 0 {
			return toolerr.New(toolerr.CodeInvalidPayload, fmt.Sprintf("cube %q already exists", *in.NewName))
		}
		cube.Name = *in.NewName
	}
	if in.Bone != nil {
		if s.FindBone(*in.Bone) < 0 {
			return toolerr.New(toolerr.CodeInvalidPayload, fmt.Sprintf("bone %q does not exist", *in.Bone))
		}
		cube.Bone = *in.Bone
	}
	if in.From != nil {
		if !in.From.IsFinite() {
			return toolerr.New(toolerr.CodeInvalidPayload, "from must be finite")
		}
		cube.From = *in.From
	}
	if in.To != nil {
		if !in.To.IsFinite() {
			return toolerr.New(toolerr.CodeInvalidPayload, "to must be finite")
		}
		cube.To = *in.To
	}
	if in.UV != nil {
		if detail := validateUVFitsAnyTexture(s, *in.UV); detail != nil {
			return detail
		}
		cube.UV = in.UV
	}
	if in.Inflate != nil {
		cube.Inflate = *in.Inflate
	}
	if in.Mirror != nil {
		cube.Mirror = *in.Mirror
	}
	if in.Faces != nil {
		cube.Faces = in.Faces
	}
	return nil
}

// DeleteCube removes a cube by name.
func (p *Project) DeleteCube(name string) (string, *toolerr.Detail) {
	return p.mutate(func(s *State) *toolerr.Detail {
		return applyDeleteCube(s, name)
	})
}

func applyDeleteCube(s *State, name string) *toolerr.Detail {
	idx := s.FindCube(name)
	if idx < 0 {
		return toolerr.New(toolerr.CodeInvalidState, fmt.Sprintf("cube %q does not exist", name))
	}
	s.Cubes = append(s.Cubes[:idx], s.Cubes[idx+1:]...)
	return nil
}
