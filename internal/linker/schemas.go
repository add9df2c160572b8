package linker

import (
	"fmt"
	"slices"

	"github.com/programmor/pbhook/internal/manifest"
)

// AddSchema adds a schema pair to pbhook.yaml.
func AddSchema(schemaDir, name string) (*manifest.Manifest, error) {
	name = schemaName(name)

	m, err := LoadProject(schemaDir)
	if err != nil {
		return nil, err
	}
	if slices.Contains(m.Schemas, name) {
		return nil, fmt.Errorf("%s is already listed", name)
	}

	m.Schemas = append(m.Schemas, name)
	if err := SaveProject(schemaDir, m); err != nil {
		return nil, err
	}
	return m, nil
}

// RemoveSchema drops a schema pair from pbhook.yaml. Links already created
// for it are left in place.
func RemoveSchema(schemaDir, name string) (*manifest.Manifest, error) {
	name = schemaName(name)

	m, err := LoadProject(schemaDir)
	if err != nil {
		return nil, err
	}
	i := slices.Index(m.Schemas, name)
	if i < 0 {
		return nil, fmt.Errorf("%s is not listed", name)
	}
	if len(m.Schemas) == 1 {
		return nil, fmt.Errorf("cannot remove %s: pbhook.yaml must list at least one schema", name)
	}

	m.Schemas = slices.Delete(m.Schemas, i, i+1)
	if err := SaveProject(schemaDir, m); err != nil {
		return nil, err
	}
	return m, nil
}
