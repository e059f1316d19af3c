// revision.go — the revision token: a stable structural hash of the
// normalized project state (spec.md §3 "Revision", §8 invariant 1).
// ID and Dirty are excluded from the hash input so that replaying the same
// mutation sequence from a fresh project always yields the same revision,
// regardless of the randomly-minted project ID.
package project

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// digestView is the subset of State that participates in revision hashing
// and export — everything that changes the project's observable meaning.
type digestView struct {
	Format           string      `json:"format"`
	FormatID         string      `json:"formatId"`
	UVPixelsPerBlock float64     `json:"uvPixelsPerBlock"`
	Bones            []Bone      `json:"bones"`
	Cubes            []Cube      `json:"cubes"`
	Textures         []Texture   `json:"textures"`
	Animations       []Animation `json:"animations"`
	TimePolicy       TimePolicy  `json:"animationTimePolicy"`
}

func toDigestView(normalized *State) digestView {
	return digestView{
		Format:           normalized.Format,
		FormatID:         normalized.FormatID,
		UVPixelsPerBlock: normalized.UVPixelsPerBlock,
		Bones:            normalized.Bones,
		Cubes:            normalized.Cubes,
		Textures:         normalized.Textures,
		Animations:       normalized.Animations,
		TimePolicy:       normalized.TimePolicy,
	}
}

// ComputeRevision normalizes s and returns its opaque revision token.
// encoding/json already marshals map[string]any keys in sorted order, which
// covers the "object keys lexicographic for digest computation" rule for
// texture Meta and cube Faces; slice order is fixed by Normalize.
func ComputeRevision(s *State) string {
	normalized := Normalize(s)
	view := toDigestView(normalized)
	// Error impossible: digestView holds only JSON-marshalable primitives,
	// slices, and maps produced by this package.
	data, _ := json.Marshal(view)
	sum := sha256.Sum256(data)
	return "rev_" + hex.EncodeToString(sum[:16])
}
