package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseFileMissingUsesDefault(t *testing.T) {
	m, found, err := ParseFile(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	if found {
		t.Error("expected found=false for missing manifest")
	}
	if !reflect.DeepEqual(m.Schemas, []string{"transaction"}) {
		t.Errorf("default schemas = %v", m.Schemas)
	}
	if !m.StrictMatching() {
		t.Error("strict matching should default to true")
	}
}

func TestParse(t *testing.T) {
	m, err := Parse([]byte("link_dir: lib/proto\nschemas: [config, transaction]\nerror_on_unmatched: false\n"), FileName)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if m.LinkDir != "lib/proto" {
		t.Errorf("LinkDir = %q", m.LinkDir)
	}
	if m.StrictMatching() {
		t.Error("expected strict matching to be disabled")
	}

	want := []string{"config.proto", "config.options", "transaction.proto", "transaction.options"}
	if got := m.Files(); !reflect.DeepEqual(got, want) {
		t.Errorf("Files() = %v, want %v", got, want)
	}
}

func TestParseEmptySchemasFallsBack(t *testing.T) {
	m, err := Parse([]byte("link_dir: protobuf\n"), FileName)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if !reflect.DeepEqual(m.Schemas, []string{DefaultSchema}) {
		t.Errorf("Schemas = %v, want default", m.Schemas)
	}
}

func TestParseInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("schemas: [transaction.proto]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, found, err := ParseFile(path)
	if !found {
		t.Error("expected found=true")
	}
	var invalid *InvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidError, got %v", err)
	}
	if !strings.Contains(err.Error(), "/schemas/0") {
		t.Errorf("error should name the offending path: %v", err)
	}
}
