// geometry.go — the deterministic geometry artifact (spec.md §4.6.1).
package exporter

import "github.com/ashfox/ashfox-mcp/internal/project"

// GeometryArtifact is the top-level geometry export document.
type GeometryArtifact struct {
	FormatVersion string          `json:"format_version"`
	Geometry      []geometryEntry `json:"minecraft:geometry"`
}

type geometryEntry struct {
	Description geometryDescription `json:"description"`
	Bones       []geometryBone      `json:"bones"`
}

type geometryDescription struct {
	Identifier string `json:"identifier"`
}

type geometryBone struct {
	Name   string         `json:"name"`
	Parent string         `json:"parent,omitempty"`
	Pivot  [3]Number      `json:"pivot"`
	Cubes  []geometryCube `json:"cubes,omitempty"`
}

type geometryCube struct {
	Origin  [3]Number  `json:"origin"`
	Size    [3]Number  `json:"size"`
	UV      *[2]Number `json:"uv,omitempty"`
	Inflate Number     `json:"inflate,omitempty"`
	Mirror  bool       `json:"mirror,omitempty"`
}

// BuildGeometry assembles the geometry artifact from a (typically already
// normalized) project state. geometryName becomes the "geometry.<name>"
// identifier.
func BuildGeometry(s *project.State, geometryName string) GeometryArtifact {
	normalized := project.Normalize(s)

	bones := make([]geometryBone, 0, len(normalized.Bones))
	for _, b := range normalized.Bones {
		gb := geometryBone{
			Name:   b.Name,
			Parent: b.Parent,
			Pivot:  vec3ToNumbers([3]float64(b.Pivot)),
		}
		for _, c := range normalized.Cubes {
			if c.Bone != b.Name {
				continue
			}
			gb.Cubes = append(gb.Cubes, buildCube(c))
		}
		bones = append(bones, gb)
	}

	return GeometryArtifact{
		FormatVersion: "1.12.0",
		Geometry: []geometryEntry{{
			Description: geometryDescription{Identifier: "geometry." + geometryName},
			Bones:       bones,
		}},
	}
}

// buildCube applies the repo's mirrored-X origin convention: origin is
// (-to.x, from.y, from.z), size is to-from (spec.md §4.6 example:
// from:[0,0,0] to:[4,4,4] → origin:[-4,0,0], size:[4,4,4]).
func buildCube(c project.Cube) geometryCube {
	origin := [3]Number{Number(-c.To[0]), Number(c.From[1]), Number(c.From[2])}
	size := [3]Number{
		Number(c.To[0] - c.From[0]),
		Number(c.To[1] - c.From[1]),
		Number(c.To[2] - c.From[2]),
	}
	cube := geometryCube{Origin: origin, Size: size, Inflate: Number(c.Inflate), Mirror: c.Mirror}
	if c.UV != nil {
		uv := [2]Number{Number(c.UV[0]), Number(c.UV[1])}
		cube.UV = &uv
	}
	return cube
}
