// bundle.go — the combined export result and its stability digest.
package exporter

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/ashfox/ashfox-mcp/internal/project"
)

// Bundle is the pair of artifacts a single export produces.
type Bundle struct {
	Geometry  GeometryArtifact
	Animation AnimationArtifact
}

// Export builds both artifacts from a project state snapshot.
func Export(s *project.State, geometryName string) Bundle {
	return Bundle{
		Geometry:  BuildGeometry(s, geometryName),
		Animation: BuildAnimations(s),
	}
}

// Digest returns the SHA-256 hex digest of the bundle's canonical JSON
// encoding — stable across runs for the same project state (spec.md §4.6
// "SHA-256 of output is stable across runs").
func (b Bundle) Digest() (string, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
