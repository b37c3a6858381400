package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestMemory_GetMissing(t *testing.T) {
	m := NewMemory()

	value, ok, err := m.Get(context.Background(), "latest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected missing key")
	}
	if value != "" {
		t.Errorf("expected empty value, got %q", value)
	}
}

func TestMemory_SetThenGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Set(ctx, "latest", `{"rawText":"x"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}

	value, ok, err := m.Get(ctx, "latest")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected key to be present")
	}
	if value != `{"rawText":"x"}` {
		t.Errorf("unexpected value: %q", value)
	}
}

func TestMemory_SetOverwrites(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_ = m.Set(ctx, "latest", "first")
	_ = m.Set(ctx, "latest", "second")

	value, _, _ := m.Get(ctx, "latest")
	if value != "second" {
		t.Errorf("expected overwrite, got %q", value)
	}
}

func TestFile_RoundTrip(t *testing.T) {
	f, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	ctx := context.Background()

	if _, ok, err := f.Get(ctx, "latest"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := f.Set(ctx, "latest", `{"a":1}`); err != nil {
		t.Fatalf("Set: %v", err)
	}

	value, ok, err := f.Get(ctx, "latest")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || value != `{"a":1}` {
		t.Errorf("round trip failed: ok=%v value=%q", ok, value)
	}
}

func TestFile_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")

	if _, err := NewFile(dir); err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("store directory should exist: %v", err)
	}
}

func TestFile_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	f, _ := NewFile(dir)

	_ = f.Set(context.Background(), "latest", "value")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "latest.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only latest.json, got %v", names)
	}
}

func TestFile_CancelledContext(t *testing.T) {
	f, _ := NewFile(t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := f.Set(ctx, "latest", "v"); err == nil {
		t.Error("Set should honor a cancelled context")
	}
	if _, _, err := f.Get(ctx, "latest"); err == nil {
		t.Error("Get should honor a cancelled context")
	}
}
