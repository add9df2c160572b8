//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // HOME for ~/.pbhook/config.yaml
	SchemaDir  string // folder holding the schema pair, where the hook runs from
	ProjectDir string // firmware project root substituted for $PROJECT_DIR
	EnvFile    string // persisted build env
}

// setupTestEnv creates isolated temp directories and clears the environment
// variables pbhook reads, so every test starts from a clean build.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		SchemaDir:  t.TempDir(),
		ProjectDir: t.TempDir(),
	}
	env.EnvFile = filepath.Join(env.ProjectDir, ".pbhook", "env.yaml")

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("PROJECT_DIR", "")
	t.Setenv("PBHOOK_PROJECT_DIR", "")

	if err := os.MkdirAll(filepath.Join(env.ProjectDir, "protobuf"), 0755); err != nil {
		t.Fatalf("creating protobuf/: %v", err)
	}
	return env
}

// setupSchemas writes a .proto/.options pair for each base name.
func setupSchemas(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		writeFile(t, filepath.Join(dir, name+".proto"), "syntax = \"proto3\";\nmessage "+name+" {}\n")
		writeFile(t, filepath.Join(dir, name+".options"), name+".* max_size:47\n")
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertSymlink fails the test unless link is a symlink pointing at target.
func assertSymlink(t *testing.T, link, target string) {
	t.Helper()
	got, err := os.Readlink(link)
	if err != nil {
		t.Errorf("expected symlink at %s: %v", link, err)
		return
	}
	if got != target {
		t.Errorf("symlink %s -> %s, want %s", link, got, target)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
