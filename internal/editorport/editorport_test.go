package editorport

import (
	"context"
	"testing"
)

func TestRequireCapabilityReturnsNotImplementedWhenAbsent(t *testing.T) {
	caps := map[Capability]bool{CapCreateBone: true}
	if detail := RequireCapability(caps, CapRenderPreview); detail == nil || detail.Code != "not_implemented" {
		t.Fatalf("expected not_implemented for an absent capability, got %v", detail)
	}
}

func TestRequireCapabilityPassesWhenPresent(t *testing.T) {
	caps := map[Capability]bool{CapCreateBone: true}
	if detail := RequireCapability(caps, CapCreateBone); detail != nil {
		t.Fatalf("unexpected error: %v", detail)
	}
}

func TestMemoryPortRecordsWriteFile(t *testing.T) {
	m := NewMemoryPort()
	if err := m.WriteFile(context.Background(), "model.json", nil, `{"ok":true}`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(m.Files["model.json"]) != `{"ok":true}` {
		t.Fatalf("expected file contents recorded")
	}
}

func TestMemoryPortRenderPreviewIsNotImplemented(t *testing.T) {
	m := NewMemoryPort()
	if _, err := m.RenderPreview(context.Background()); err == nil {
		t.Fatalf("expected render_preview to be not_implemented on MemoryPort")
	}
}
