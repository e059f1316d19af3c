package editorport

import (
	"context"
	"sync"

	"github.com/ashfox/ashfox-mcp/internal/project"
)

// MemoryPort is a standalone-mode Port/SnapshotPort: it has no live host
// editor to talk to, so every capability except render_preview is
// "supported" by simply recording the call rather than forwarding it
// anywhere; RenderPreview returns not_implemented. cmd/ashfox-mcp wires this
// in as its editor port, so tool services still have something to call
// against spec.md's EditorPort boundary.
type MemoryPort struct {
	mu    sync.Mutex
	Files map[string][]byte
	Calls []string
}

// NewMemoryPort builds a MemoryPort reporting every capability except
// render_preview as supported.
func NewMemoryPort() *MemoryPort {
	return &MemoryPort{Files: map[string][]byte{}}
}

func (m *MemoryPort) Capabilities() map[Capability]bool {
	return map[Capability]bool{
		CapCreateBone: true, CapUpdateBone: true, CapDeleteBone: true,
		CapCreateCube: true, CapUpdateCube: true, CapDeleteCube: true,
		CapCreateTexture: true, CapUpdateTexture: true, CapDeleteTexture: true,
		CapCreateAnimation: true, CapUpdateAnimation: true, CapDeleteAnimation: true,
		CapWriteFile: true, CapRenderPreview: false,
	}
}

func (m *MemoryPort) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

func (m *MemoryPort) CreateBone(ctx context.Context, b project.Bone) error      { m.record("create_bone:" + b.Name); return nil }
func (m *MemoryPort) UpdateBone(ctx context.Context, name string, b project.Bone) error {
	m.record("update_bone:" + name)
	return nil
}
func (m *MemoryPort) DeleteBone(ctx context.Context, name string) error { m.record("delete_bone:" + name); return nil }

func (m *MemoryPort) CreateCube(ctx context.Context, c project.Cube) error      { m.record("create_cube:" + c.Name); return nil }
func (m *MemoryPort) UpdateCube(ctx context.Context, name string, c project.Cube) error {
	m.record("update_cube:" + name)
	return nil
}
func (m *MemoryPort) DeleteCube(ctx context.Context, name string) error { m.record("delete_cube:" + name); return nil }

func (m *MemoryPort) CreateTexture(ctx context.Context, t project.Texture) error {
	m.record("create_texture:" + t.Name)
	return nil
}
func (m *MemoryPort) UpdateTexture(ctx context.Context, name string, t project.Texture) error {
	m.record("update_texture:" + name)
	return nil
}
func (m *MemoryPort) DeleteTexture(ctx context.Context, name string) error {
	m.record("delete_texture:" + name)
	return nil
}

func (m *MemoryPort) CreateAnimation(ctx context.Context, a project.Animation) error {
	m.record("create_animation:" + a.Name)
	return nil
}
func (m *MemoryPort) UpdateAnimation(ctx context.Context, name string, a project.Animation) error {
	m.record("update_animation:" + name)
	return nil
}
func (m *MemoryPort) DeleteAnimation(ctx context.Context, name string) error {
	m.record("delete_animation:" + name)
	return nil
}

func (m *MemoryPort) WriteFile(ctx context.Context, path string, data []byte, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if text != "" {
		m.Files[path] = []byte(text)
	} else {
		m.Files[path] = data
	}
	return nil
}

func (m *MemoryPort) RenderPreview(ctx context.Context) (string, error) {
	return "", NotImplemented(CapRenderPreview)
}

// ReadSnapshot implements SnapshotPort. MemoryPort has no persisted state,
// so it always returns nil, which signals "no prior snapshot"; the live
// state is read through project.Project.Snapshot instead.
func (m *MemoryPort) ReadSnapshot(ctx context.Context) (*project.State, error) {
	return nil, nil
}
