package buildenv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestGetMissingKeyIsEmpty(t *testing.T) {
	env := New()
	require.Equal(t, "", env.Get("custom_nanopb_protos"))

	_, ok := env.Lookup("custom_nanopb_protos")
	require.False(t, ok)
}

func TestAppendKeepsExistingValue(t *testing.T) {
	tests := []struct {
		name     string
		existing *string
		fragment string
		want     string
	}{
		{"absent", nil, " +<a/*.proto>", " +<a/*.proto>"},
		{"empty", ptr(""), " +<a/*.proto>", " +<a/*.proto>"},
		{"existing", ptr("+<b/*.proto>"), " +<a/*.proto>", "+<b/*.proto> +<a/*.proto>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := New()
			if tt.existing != nil {
				env.Set("k", *tt.existing)
			}
			env.Append("k", tt.fragment)
			require.Equal(t, tt.want, env.Get("k"))
		})
	}
}

func TestAppendOnZeroValue(t *testing.T) {
	var env Env
	env.Append("k", "v")
	require.Equal(t, "v", env.Get("k"))
}

func TestSubst(t *testing.T) {
	env := New()
	env.SetVar(ProjectDirVar, "/build/project")

	require.Equal(t, "/build/project/protobuf", env.Subst("$PROJECT_DIR/protobuf"))
	require.Equal(t, "/build/project/protobuf", env.Subst("${PROJECT_DIR}/protobuf"))
	require.Equal(t, "/protobuf", env.Subst("$UNSET_VAR/protobuf"))
}

func TestEnvironSorted(t *testing.T) {
	env := New()
	env.Set("b", "2")
	env.Set("a", "1")

	want := []string{"a=1", "b=2"}
	if diff := cmp.Diff(want, env.Environ()); diff != "" {
		t.Errorf("Environ() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	env, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Empty(t, env.Options)
	require.NotNil(t, env.Vars)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "env.yaml")

	env := New()
	env.Set("custom_nanopb_protos", "+<other/*.proto>")
	env.SetVar(ProjectDirVar, "/build/project")
	require.NoError(t, env.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(env, loaded); diff != "" {
		t.Errorf("reloaded env mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("options: [unterminated"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func ptr(s string) *string { return &s }
