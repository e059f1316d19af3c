// mutate_texture.go — add_texture/update_texture/delete_texture mutators
// (spec.md §4.5, §3 invariant 4 "maxTextureSize").
package project

import (
	"fmt"

	"github.com/ashfox/ashfox-mcp/internal/toolerr"
)

// AddTextureInput is the validated argument shape for add_texture.
type AddTextureInput struct {
	Name        string
	Width       int
	Height      int
	ContentHash string
	Meta        map[string]any
}

func validateTextureDims(limits Limits, width, height int) *toolerr.Detail {
	if width <= 0 || height <= 0 {
		return toolerr.New(toolerr.CodeInvalidPayload, "texture width and height must be positive")
	}
	if width > limits.MaxTextureSize || height > limits.MaxTextureSize {
		return toolerr.New(toolerr.CodeInvalidPayload, fmt.Sprintf("texture dimensions exceed the %dpx limit", limits.MaxTextureSize))
	}
	return nil
}

// minOpaqueCoverage is the floor on the fraction of a texture's pixels that
// must be opaque once its background fill is applied. Pixel analysis itself
// happens on the EditorPort side (the MCP server never decodes image bytes);
// the host reports the measured ratio via meta.opaqueCoverage, and this
// mutator enforces the floor at write time. Resolved per spec.md §9(b): the
// ratio the host reports is defined to already reflect post-fill pixels.
const minOpaqueCoverage = 0.05

func validateOpaqueCoverage(meta map[string]any) *toolerr.Detail {
	raw, ok := meta["opaqueCoverage"]
	if !ok {
		return nil
	}
	coverage, ok := raw.(float64)
	if !ok {
		return toolerr.New(toolerr.CodeInvalidPayload, "meta.opaqueCoverage must be a number")
	}
	if coverage < minOpaqueCoverage {
		return toolerr.New(toolerr.CodeInvalidPayload, fmt.Sprintf("texture opaque coverage %.4f is below the %.4f floor", coverage, minOpaqueCoverage))
	}
	return nil
}

// AddTexture appends a new texture, enforcing unique names and the
// project's maxTextureSize limit.
func (p *Project) AddTexture(in AddTextureInput) (string, *toolerr.Detail) {
	return p.mutate(func(s *State) *toolerr.Detail {
		return applyAddTexture(s, p.limits, in)
	})
}

func applyAddTexture(s *State, limits Limits, in AddTextureInput) *toolerr.Detail {
	if in.Name == "" {
		return toolerr.New(toolerr.CodeInvalidPayload, "texture name must not be empty")
	}
	if s.FindTexture(in.Name) >= 0 {
		return toolerr.New(toolerr.CodeInvalidPayload, fmt.Sprintf("texture %q already exists", in.Name))
	}
	if detail := validateTextureDims(limits, in.Width, in.Height); detail != nil {
		return detail
	}
	if detail := validateOpaqueCoverage(in.Meta); detail != nil {
		return detail
	}
	s.Textures = append(s.Textures, Texture{
		Name:        in.Name,
		Width:       in.Width,
		Height:      in.Height,
		ContentHash: in.ContentHash,
		Meta:        in.Meta,
	})
	return nil
}

// UpdateTextureInput is the validated argument shape for update_texture. Nil
// pointers mean "leave unchanged".
type UpdateTextureInput struct {
	Name        string
	NewName     *string
	Width       *int
	Height      *int
	ContentHash *string
	Meta        map[string]any
}

// UpdateTexture mutates an existing texture in place. Shrinking a texture
// below any cube's bound uv is accepted here: uv-fit is re-checked only when
// the cube itself is next mutated, matching the teacher's pattern of
// validating at the point of write rather than continuously.
func (p *Project) UpdateTexture(in UpdateTextureInput) (string, *toolerr.Detail) {
	return p.mutate(func(s *State) *toolerr.Detail {
		return applyUpdateTexture(s, p.limits, in)
	})
}

func applyUpdateTexture(s *State, limits Limits, in UpdateTextureInput) *toolerr.Detail {
	idx := s.FindTexture(in.Name)
	if idx < 0 {
		return toolerr.New(toolerr.CodeInvalidState, fmt.Sprintf("texture %q does not exist", in.Name))
	}
	tex := &s.Textures[idx]
	if in.NewName != nil && *in.NewName != tex.Name {
		if s.FindTexture(*in.NewName) >= 0 {
			return toolerr.New(toolerr.CodeInvalidPayload, fmt.Sprintf("texture %q already exists", *in.NewName))
		}
		renameTextureReferences(s, tex.Name, *in.NewName)
		tex.Name = *in.NewName
	}
	width, height := tex.Width, tex.Height
	if in.Width != nil {
		width = *in.Width
	}
	if in.Height != nil {
		height = *in.Height
	}
	if in.Width != nil || in.Height != nil {
		if detail := validateTextureDims(limits, width, height); detail != nil {
			return detail
		}
		tex.Width, tex.Height = width, height
	}
	if in.ContentHash != nil {
		tex.ContentHash = *in.ContentHash
	}
	if in.Meta != nil {
		if detail := validateOpaqueCoverage(in.Meta); detail != nil {
			return detail
		}
		tex.Meta = in.Meta
	}
	return nil
}

func renameTextureReferences(s *State, oldName, newName string) {
	for ci := range s.Cubes {
		for face, uv := range s.Cubes[ci].Faces {
			if uv.Texture == oldName {
				uv.Texture = newName
				s.Cubes[ci].Faces[face] = uv
			}
		}
	}
}

// DeleteTexture removes a texture by name. Faces still referencing it keep
// their stale name rather than being rewritten; ComputeTextureUsage (the
// textureUsage reported by get_project_state) lists such a dangling
// reference under Unresolved.
func (p *Project) DeleteTexture(name string) (string, *toolerr.Detail) {
	return p.mutate(func(s *State) *toolerr.Detail {
		return applyDeleteTexture(s, name)
	})
}

func applyDeleteTexture(s *State, name string) *toolerr.Detail {
	idx := s.FindTexture(name)
	if idx < 0 {
		return toolerr.New(toolerr.CodeInvalidState, fmt.Sprintf("texture %q does not exist", name))
	}
	s.Textures = append(s.Textures[:idx], s.Textures[idx+1:]...)
	return nil
}
