package platform

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestCreateSymlink(t *testing.T) {
	fsys := afero.NewOsFs()
	tmp := t.TempDir()

	targetPath := filepath.Join(tmp, "transaction.proto")
	if err := os.WriteFile(targetPath, []byte("syntax = \"proto3\";"), 0644); err != nil {
		t.Fatal(err)
	}

	linkPath := filepath.Join(tmp, "link.proto")
	if err := CreateSymlink(fsys, targetPath, linkPath); err != nil {
		t.Fatalf("CreateSymlink failed: %v", err)
	}

	data, err := os.ReadFile(linkPath)
	if err != nil {
		t.Fatalf("reading link: %v", err)
	}
	if string(data) != "syntax = \"proto3\";" {
		t.Errorf("link content = %q", string(data))
	}
}

func TestCreateSymlinkExisting(t *testing.T) {
	fsys := afero.NewOsFs()
	tmp := t.TempDir()

	targetPath := filepath.Join(tmp, "target.txt")
	linkPath := filepath.Join(tmp, "link.txt")
	if err := os.WriteFile(targetPath, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(linkPath, []byte("keep me"), 0644); err != nil {
		t.Fatal(err)
	}

	err := CreateSymlink(fsys, targetPath, linkPath)
	if !errors.Is(err, fs.ErrExist) {
		t.Fatalf("CreateSymlink on occupied path = %v, want fs.ErrExist", err)
	}

	data, _ := os.ReadFile(linkPath)
	if string(data) != "keep me" {
		t.Errorf("existing file was modified: %q", string(data))
	}
}

func TestCreateSymlinkMissingParent(t *testing.T) {
	fsys := afero.NewOsFs()
	tmp := t.TempDir()

	err := CreateSymlink(fsys, filepath.Join(tmp, "target"), filepath.Join(tmp, "missing", "link"))
	if err == nil {
		t.Fatal("expected error for missing parent directory")
	}
	if errors.Is(err, fs.ErrExist) {
		t.Errorf("missing parent must not be reported as fs.ErrExist: %v", err)
	}
}

func TestCreateSymlinkUnsupportedFs(t *testing.T) {
	fsys := noLinkFs{afero.NewMemMapFs()}

	err := CreateSymlink(fsys, "/a", "/b")
	if !errors.Is(err, ErrSymlinkUnsupported) {
		t.Fatalf("CreateSymlink = %v, want ErrSymlinkUnsupported", err)
	}
	if _, err := ReadSymlinkTarget(fsys, "/b"); !errors.Is(err, ErrSymlinkUnsupported) {
		t.Fatalf("ReadSymlinkTarget = %v, want ErrSymlinkUnsupported", err)
	}
}

// noLinkFs hides every optional afero interface of the wrapped filesystem.
type noLinkFs struct{ afero.Fs }

func TestReadSymlinkTarget(t *testing.T) {
	fsys := afero.NewOsFs()
	tmp := t.TempDir()

	targetPath := filepath.Join(tmp, "target.txt")
	if err := os.WriteFile(targetPath, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	linkPath := filepath.Join(tmp, "link.txt")
	if err := CreateSymlink(fsys, targetPath, linkPath); err != nil {
		t.Fatal(err)
	}

	got, err := ReadSymlinkTarget(fsys, linkPath)
	if err != nil {
		t.Fatalf("ReadSymlinkTarget failed: %v", err)
	}
	if got != targetPath {
		t.Errorf("ReadSymlinkTarget = %q, want %q", got, targetPath)
	}
}

func TestIsSymlink(t *testing.T) {
	fsys := afero.NewOsFs()
	tmp := t.TempDir()

	plain := filepath.Join(tmp, "plain.txt")
	if err := os.WriteFile(plain, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(tmp, "link.txt")
	if err := CreateSymlink(fsys, plain, link); err != nil {
		t.Fatal(err)
	}

	if ok, err := IsSymlink(fsys, link); err != nil || !ok {
		t.Errorf("IsSymlink(link) = %v, %v; want true", ok, err)
	}
	if ok, err := IsSymlink(fsys, plain); err != nil || ok {
		t.Errorf("IsSymlink(plain) = %v, %v; want false", ok, err)
	}
	if _, err := IsSymlink(fsys, filepath.Join(tmp, "nope")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("IsSymlink(missing) err = %v, want fs.ErrNotExist", err)
	}
}

func TestIsSymlinkSupported(t *testing.T) {
	result := IsSymlinkSupported()
	// On macOS and Linux, symlinks should always be supported.
	if runtime.GOOS != "windows" && !result {
		t.Error("IsSymlinkSupported returned false on Unix")
	}
}

// sidecarFailFs refuses to write .target sidecar files.
type sidecarFailFs struct {
	afero.Fs
}

func (f sidecarFailFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if strings.HasSuffix(name, sidecarExt) {
		return nil, &os.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func TestCopyFallback(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/src/transaction.proto", []byte("schema"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := fsys.MkdirAll("/project/protobuf", 0755); err != nil {
		t.Fatal(err)
	}

	if err := copyFallback(fsys, "/src/transaction.proto", "/project/protobuf/transaction.proto"); err != nil {
		t.Fatalf("copyFallback failed: %v", err)
	}

	data, err := afero.ReadFile(fsys, "/project/protobuf/transaction.proto")
	if err != nil || string(data) != "schema" {
		t.Fatalf("copy = %q, %v", data, err)
	}
	sidecar, err := afero.ReadFile(fsys, "/project/protobuf/transaction.proto"+sidecarExt)
	if err != nil || string(sidecar) != "/src/transaction.proto" {
		t.Errorf("sidecar = %q, %v", sidecar, err)
	}

	err = copyFallback(fsys, "/src/transaction.proto", "/project/protobuf/transaction.proto")
	if !errors.Is(err, fs.ErrExist) {
		t.Errorf("second copyFallback error = %v, want fs.ErrExist", err)
	}
}

func TestCopyFallbackSidecarWriteFails(t *testing.T) {
	fsys := sidecarFailFs{afero.NewMemMapFs()}
	if err := afero.WriteFile(fsys, "/src/transaction.proto", []byte("schema"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := fsys.MkdirAll("/project/protobuf", 0755); err != nil {
		t.Fatal(err)
	}

	err := copyFallback(fsys, "/src/transaction.proto", "/project/protobuf/transaction.proto")
	if !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("copyFallback error = %v, want fs.ErrPermission", err)
	}
	if ok, _ := afero.Exists(fsys, "/project/protobuf/transaction.proto"); ok {
		t.Error("copy without a sidecar should be removed")
	}
}
