package buildenv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/renameio"
	"go.yaml.in/yaml/v3"
)

// ProjectDirVar is the substitution variable holding the project directory.
const ProjectDirVar = "PROJECT_DIR"

// Env is a mutable build configuration.
type Env struct {
	Options map[string]string `yaml:"options,omitempty"`
	Vars    map[string]string `yaml:"vars,omitempty"`
}

// New returns an empty Env.
func New() *Env {
	return &Env{
		Options: map[string]string{},
		Vars:    map[string]string{},
	}
}

// Get returns the option value for key, or "" when it is not set.
func (e *Env) Get(key string) string {
	return e.Options[key]
}

// Lookup returns the option value and whether it was set.
func (e *Env) Lookup(key string) (string, bool) {
	v, ok := e.Options[key]
	return v, ok
}

// Set overwrites an option.
func (e *Env) Set(key, value string) {
	if e.Options == nil {
		e.Options = map[string]string{}
	}
	e.Options[key] = value
}

// Append concatenates fragment onto the current value of key. An absent key
// is treated as the empty string.
func (e *Env) Append(key, fragment string) {
	e.Set(key, e.Get(key)+fragment)
}

// SetVar sets a substitution variable.
func (e *Env) SetVar(name, value string) {
	if e.Vars == nil {
		e.Vars = map[string]string{}
	}
	e.Vars[name] = value
}

// Subst expands $NAME and ${NAME} references in s using the env's variables.
// Unknown variables expand to the empty string.
func (e *Env) Subst(s string) string {
	return os.Expand(s, func(name string) string {
		return e.Vars[name]
	})
}

// Keys returns the option names in sorted order.
func (e *Env) Keys() []string {
	keys := make([]string, 0, len(e.Options))
	for k := range e.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Environ renders the options as KEY=VALUE lines sorted by key.
func (e *Env) Environ() []string {
	lines := make([]string, 0, len(e.Options))
	for _, k := range e.Keys() {
		lines = append(lines, k+"="+e.Options[k])
	}
	return lines
}

// Load reads an Env from a yaml file. A missing file yields an empty Env.
func Load(path string) (*Env, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading build env: %w", err)
	}

	env := New()
	if err := yaml.Unmarshal(data, env); err != nil {
		return nil, fmt.Errorf("parsing build env %s: %w", path, err)
	}
	if env.Options == nil {
		env.Options = map[string]string{}
	}
	if env.Vars == nil {
		env.Vars = map[string]string{}
	}
	return env, nil
}

// Save writes the Env to path atomically, creating the parent directory.
func (e *Env) Save(path string) error {
	data, err := yaml.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling build env: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating build env directory: %w", err)
	}

	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing build env: %w", err)
	}
	return nil
}
