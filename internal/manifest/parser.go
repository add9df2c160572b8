package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Parse decodes and validates manifest bytes. path is only used in messages.
func Parse(data []byte, path string) (*Manifest, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		return nil, &InvalidError{Path: path, Issues: result.Issues}
	}

	m := Default()
	m.Schemas = nil
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if len(m.Schemas) == 0 {
		m.Schemas = []string{DefaultSchema}
	}
	return m, nil
}

// ParseFile reads a manifest. A missing file yields Default() and found=false.
func ParseFile(path string) (m *Manifest, found bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	m, err = Parse(data, path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// InvalidError reports schema violations in a manifest.
type InvalidError struct {
	Path   string
	Issues []ValidationIssue
}

func (e *InvalidError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: ", e.Path)
	b.WriteString(printer.Sprintf("%d validation issue(s)", len(e.Issues)))
	for _, issue := range e.Issues {
		loc := issue.Path
		if loc == "" {
			loc = "/"
		}
		fmt.Fprintf(&b, "\n  %s: %s", loc, issue.Message)
	}
	return b.String()
}
