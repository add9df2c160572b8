package linker

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestInitProjectDiscoversSchemas(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"transaction.proto", "transaction.options", "config.proto"} {
		if err := os.WriteFile(filepath.Join(tmpDir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	m, err := InitProject(tmpDir, nil)
	if err != nil {
		t.Fatalf("InitProject failed: %v", err)
	}
	if want := []string{"config", "transaction"}; !reflect.DeepEqual(m.Schemas, want) {
		t.Errorf("schemas = %v, want %v", m.Schemas, want)
	}

	reloaded, err := LoadProject(tmpDir)
	if err != nil {
		t.Fatalf("LoadProject failed after init: %v", err)
	}
	if !reflect.DeepEqual(reloaded.Schemas, m.Schemas) {
		t.Errorf("reloaded schemas = %v, want %v", reloaded.Schemas, m.Schemas)
	}
}

func TestInitProjectEmptyFolderUsesDefault(t *testing.T) {
	tmpDir := t.TempDir()

	m, err := InitProject(tmpDir, nil)
	if err != nil {
		t.Fatalf("InitProject failed: %v", err)
	}
	if want := []string{"transaction"}; !reflect.DeepEqual(m.Schemas, want) {
		t.Errorf("schemas = %v, want %v", m.Schemas, want)
	}
}

func TestInitProjectExplicitSchemas(t *testing.T) {
	tmpDir := t.TempDir()

	m, err := InitProject(tmpDir, []string{"frame.proto", "config"})
	if err != nil {
		t.Fatalf("InitProject failed: %v", err)
	}
	if want := []string{"frame", "config"}; !reflect.DeepEqual(m.Schemas, want) {
		t.Errorf("schemas = %v, want %v", m.Schemas, want)
	}
}

func TestInitProjectMissingFolder(t *testing.T) {
	if _, err := InitProject(filepath.Join(t.TempDir(), "nope"), nil); err == nil {
		t.Error("expected error for missing schema folder")
	}
}

func TestInitProjectIdempotent(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := InitProject(tmpDir, []string{"transaction"}); err != nil {
		t.Fatalf("first InitProject failed: %v", err)
	}
	if _, err := InitProject(tmpDir, []string{"transaction"}); err != nil {
		t.Fatalf("second InitProject failed: %v", err)
	}

	m, err := LoadProject(tmpDir)
	if err != nil {
		t.Fatalf("LoadProject failed after double init: %v", err)
	}
	if len(m.Schemas) != 1 {
		t.Errorf("expected 1 schema, got %d", len(m.Schemas))
	}
}

func TestLoadProjectWithoutManifest(t *testing.T) {
	m, err := LoadProject(t.TempDir())
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	if want := []string{"transaction"}; !reflect.DeepEqual(m.Schemas, want) {
		t.Errorf("schemas = %v, want %v", m.Schemas, want)
	}
}

func TestProjectConfigPath(t *testing.T) {
	path := ProjectConfigPath("/src/protobuf")
	expected := filepath.Join("/src/protobuf", "pbhook.yaml")
	if path != expected {
		t.Errorf("expected %s, got %s", expected, path)
	}
}

func TestSchemaName(t *testing.T) {
	tests := map[string]string{
		"transaction":         "transaction",
		"transaction.proto":   "transaction",
		"transaction.options": "transaction",
		"sub/config.proto":    "config",
	}
	for in, want := range tests {
		if got := schemaName(in); got != want {
			t.Errorf("schemaName(%q) = %q, want %q", in, got, want)
		}
	}
}
