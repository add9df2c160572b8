package manifest

// FileName is the manifest file looked up in a schema folder.
const FileName = "pbhook.yaml"

// DefaultSchema is the schema pair linked when a folder has no manifest.
const DefaultSchema = "transaction"

// Manifest is the pbhook.yaml structure.
type Manifest struct {
	Requires         string   `yaml:"requires,omitempty" json:"requires,omitempty"`
	LinkDir          string   `yaml:"link_dir,omitempty" json:"link_dir,omitempty"`
	Schemas          []string `yaml:"schemas,omitempty" json:"schemas,omitempty"`
	ErrorOnUnmatched *bool    `yaml:"error_on_unmatched,omitempty" json:"error_on_unmatched,omitempty"`
}

// Default returns the manifest used for folders without a pbhook.yaml.
func Default() *Manifest {
	return &Manifest{Schemas: []string{DefaultSchema}}
}

// StrictMatching reports whether the generator should fail on unmatched
// schemas. Unset means true.
func (m *Manifest) StrictMatching() bool {
	return m.ErrorOnUnmatched == nil || *m.ErrorOnUnmatched
}

// Files expands the schema base names into the files to link, schema file
// first, then its options file.
func (m *Manifest) Files() []string {
	files := make([]string, 0, 2*len(m.Schemas))
	for _, s := range m.Schemas {
		files = append(files, s+".proto", s+".options")
	}
	return files
}
