package linker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/programmor/pbhook/internal/manifest"
	"github.com/programmor/pbhook/internal/registrar"
	"go.yaml.in/yaml/v3"
)

// ProjectConfigPath returns the full path to pbhook.yaml for a schema folder.
func ProjectConfigPath(schemaDir string) string {
	return filepath.Join(schemaDir, manifest.FileName)
}

// LoadProject reads and validates pbhook.yaml from the schema folder. A
// folder without one gets the default manifest.
func LoadProject(schemaDir string) (*manifest.Manifest, error) {
	m, _, err := manifest.ParseFile(ProjectConfigPath(schemaDir))
	if err != nil {
		return nil, err
	}
	return m, nil
}

// SaveProject writes the manifest to pbhook.yaml.
func SaveProject(schemaDir string, m *manifest.Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling project config: %w", err)
	}

	if result, err := manifest.Validate(data); err != nil {
		return err
	} else if !result.Valid {
		return &manifest.InvalidError{Path: ProjectConfigPath(schemaDir), Issues: result.Issues}
	}

	if err := os.WriteFile(ProjectConfigPath(schemaDir), data, 0644); err != nil {
		return fmt.Errorf("writing project config: %w", err)
	}
	return nil
}

// InitProject writes a pbhook.yaml listing the given schemas. With no
// schemas it lists every *.proto file found in the folder, falling back to
// the default pair.
func InitProject(schemaDir string, schemas []string) (*manifest.Manifest, error) {
	if info, err := os.Stat(schemaDir); err != nil {
		return nil, fmt.Errorf("schema folder: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("schema folder %s is not a directory", schemaDir)
	}

	if len(schemas) == 0 {
		found, err := registrar.Discover(schemaDir)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			schemas = append(schemas, schemaName(f))
		}
	}

	m := manifest.Default()
	if len(schemas) > 0 {
		m.Schemas = nil
		for _, s := range schemas {
			m.Schemas = append(m.Schemas, schemaName(s))
		}
	}

	if err := SaveProject(schemaDir, m); err != nil {
		return nil, err
	}
	return m, nil
}

// schemaName accepts "transaction", "transaction.proto" or
// "transaction.options" and returns the base name.
func schemaName(s string) string {
	s = filepath.Base(s)
	s = strings.TrimSuffix(s, registrar.SchemaExt)
	return strings.TrimSuffix(s, registrar.OptionsExt)
}
