// Package editorport models the boundary to the host 3D modeling runtime
// (spec.md §2, §9): the dynamic, duck-typed host API the original
// integration sniffed at runtime is modeled here as an explicit Go
// interface with one method per semantic operation plus explicit
// capability flags. A capability either has a wired implementation or its
// call returns a not_implemented Detail — there is no runtime feature
// sniffing (spec.md §9 "commit to one model").
package editorport

import (
	"context"

	"github.com/ashfox/ashfox-mcp/internal/project"
	"github.com/ashfox/ashfox-mcp/internal/toolerr"
)

// Capability names one semantic editor operation.
type Capability string

const (
	CapCreateBone      Capability = "create_bone"
	CapUpdateBone      Capability = "update_bone"
	CapDeleteBone      Capability = "delete_bone"
	CapCreateCube      Capability = "create_cube"
	CapUpdateCube      Capability = "update_cube"
	CapDeleteCube      Capability = "delete_cube"
	CapCreateTexture   Capability = "create_texture"
	CapUpdateTexture   Capability = "update_texture"
	CapDeleteTexture   Capability = "delete_texture"
	CapCreateAnimation Capability = "create_animation"
	CapUpdateAnimation Capability = "update_animation"
	CapDeleteAnimation Capability = "delete_animation"
	CapWriteFile       Capability = "write_file"
	CapRenderPreview   Capability = "render_preview"
)

// Port is the EditorPort: the set of semantic operations the core issues
// against the host editor. Every method is synchronous and takes a
// context.Context for cancellation — there is no promise/thenable modeling
// since Go has none.
type Port interface {
	Capabilities() map[Capability]bool

	CreateBone(ctx context.Context, b project.Bone) error
	UpdateBone(ctx context.Context, name string, b project.Bone) error
	DeleteBone(ctx context.Context, name string) error

	CreateCube(ctx context.Context, c project.Cube) error
	UpdateCube(ctx context.Context, name string, c project.Cube) error
	DeleteCube(ctx context.Context, name string) error

	CreateTexture(ctx context.Context, t project.Texture) error
	UpdateTexture(ctx context.Context, name string, t project.Texture) error
	DeleteTexture(ctx context.Context, name string) error

	CreateAnimation(ctx context.Context, a project.Animation) error
	UpdateAnimation(ctx context.Context, name string, a project.Animation) error
	DeleteAnimation(ctx context.Context, name string) error

	// WriteFile persists bytes (or, if text is non-empty, text) at path on
	// the host's filesystem or project bundle.
	WriteFile(ctx context.Context, path string, bytes []byte, text string) error
	// RenderPreview asks the host to render a preview image and returns an
	// opaque reference (e.g. a data URI or host-local path).
	RenderPreview(ctx context.Context) (string, error)
}

// SnapshotPort is the read-side counterpart: a way to recover a
// previously-persisted normalized state, independent of the live project
// held in memory (spec.md §4.5 persisted state layout).
type SnapshotPort interface {
	ReadSnapshot(ctx context.Context) (*project.State, error)
}

// NotImplemented builds the standard not_implemented Detail for a
// capability absent in the bound editor (spec.md §7).
func NotImplemented(cap Capability) *toolerr.Detail {
	return toolerr.New(toolerr.CodeNotImplemented, string(cap)+" is not supported by the bound editor").
		WithDetails(map[string]any{"capability": string(cap)})
}

// RequireCapability checks caps[cap] and returns a not_implemented Detail
// when absent, nil otherwise. Tool services call this before issuing the
// corresponding Port method.
func RequireCapability(caps map[Capability]bool, cap Capability) *toolerr.Detail {
	if caps[cap] {
		return nil
	}
	return NotImplemented(cap)
}
