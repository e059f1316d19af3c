// textureusage.go — TextureUsage: the derived per-face texture reference
// map and its identity digest uvUsageId (spec.md §3 "TextureUsage").
package project

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// FaceRef identifies one cube face that references a texture.
type FaceRef struct {
	CubeName string      `json:"cubeName"`
	Face     string      `json:"face"`
	UV       *[4]float64 `json:"uv,omitempty"`
}

// TextureUsage is the derived mapping from texture name to the faces that
// reference it, plus any face referencing a texture name that does not
// resolve to a bound Texture.
type TextureUsage struct {
	ByTexture  map[string][]FaceRef `json:"byTexture"`
	Unresolved []FaceRef            `json:"unresolved"`
	// UsageID is the stable digest of this mapping plus the set of bound
	// texture names it was resolved against.
	UsageID string `json:"uvUsageId"`
}

// ComputeTextureUsage derives the per-face texture usage mapping from a
// (typically already-normalized) state.
func ComputeTextureUsage(s *State) TextureUsage {
	bound := map[string]bool{}
	for _, t := range s.Textures {
		bound[t.Name] = true
	}

	usage := TextureUsage{ByTexture: map[string][]FaceRef{}}
	for _, c := range s.Cubes {
		faceNames := make([]string, 0, len(c.Faces))
		for face := range c.Faces {
			faceNames = append(faceNames, face)
		}
		sort.Strings(faceNames)
		for _, face := range faceNames {
			uv := c.Faces[face]
			ref := FaceRef{CubeName: c.Name, Face: face}
			if uv.UV != ([4]float64{}) {
				v := uv.UV
				ref.UV = &v
			}
			if uv.Texture == "" {
				continue
			}
			if bound[uv.Texture] {
				usage.ByTexture[uv.Texture] = append(usage.ByTexture[uv.Texture], ref)
			} else {
				usage.Unresolved = append(usage.Unresolved, ref)
			}
		}
	}

	usage.UsageID = computeUsageDigest(usage, bound)
	return usage
}

func computeUsageDigest(usage TextureUsage, bound map[string]bool) string {
	texNames := make([]string, 0, len(bound))
	for name := range bound {
		texNames = append(texNames, name)
	}
	sort.Strings(texNames)

	view := struct {
		ByTexture      map[string][]FaceRef `json:"byTexture"`
		Unresolved     []FaceRef            `json:"unresolved"`
		BoundTextures  []string             `json:"boundTextures"`
	}{
		ByTexture:     usage.ByTexture,
		Unresolved:    usage.Unresolved,
		BoundTextures: texNames,
	}
	// Error impossible: view holds only JSON-marshalable primitives, slices,
	// and maps produced by this package.
	data, _ := json.Marshal(view)
	sum := sha256.Sum256(data)
	return "uvu_" + hex.EncodeToString(sum[:16])
}
