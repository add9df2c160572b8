package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"
)

// ErrSymlinkUnsupported is returned when the filesystem cannot create or read
// symlinks at all.
var ErrSymlinkUnsupported = errors.New("filesystem does not support symlinks")

const sidecarExt = ".target"

// CreateSymlink creates a symbolic link at link pointing to target.
// An occupied link path is reported as an error matching fs.ErrExist and is
// never overwritten, including by the Windows copy fallback.
func CreateSymlink(fsys afero.Fs, target, link string) error {
	linker, ok := fsys.(afero.Linker)
	if !ok {
		return &os.LinkError{Op: "symlink", Old: target, New: link, Err: ErrSymlinkUnsupported}
	}

	err := linker.SymlinkIfPossible(target, link)
	if err == nil || runtime.GOOS != "windows" || errors.Is(err, fs.ErrExist) {
		return err
	}

	// Windows without developer mode: copy the target and record it in a sidecar.
	return copyFallback(fsys, target, link)
}

// copyFallback stands in for a symlink with a copy of target plus a .target
// sidecar naming it. Without the sidecar the copy is not recognized as a
// link, so a failed sidecar write removes the copy again.
func copyFallback(fsys afero.Fs, target, link string) error {
	if _, err := lstat(fsys, link); err == nil {
		return &os.LinkError{Op: "symlink", Old: target, New: link, Err: fs.ErrExist}
	}
	if err := copyFileForSymlink(fsys, target, link); err != nil {
		return fmt.Errorf("symlink fallback (copy) failed: %w", err)
	}
	if err := afero.WriteFile(fsys, link+sidecarExt, []byte(target), 0644); err != nil {
		err = fmt.Errorf("writing symlink sidecar for %s: %w", link, err)
		if rmErr := fsys.Remove(link); rmErr != nil {
			return errors.Join(err, rmErr)
		}
		return err
	}
	return nil
}

// ReadSymlinkTarget returns the target of a symlink.
// On Windows, if reading the link fails because a copy fallback was used,
// it reads from the .target sidecar file.
func ReadSymlinkTarget(fsys afero.Fs, path string) (string, error) {
	reader, ok := fsys.(afero.LinkReader)
	if !ok {
		return "", ErrSymlinkUnsupported
	}
	target, err := reader.ReadlinkIfPossible(path)
	if err == nil {
		return target, nil
	}

	if runtime.GOOS != "windows" {
		return "", err
	}

	data, readErr := afero.ReadFile(fsys, path+sidecarExt)
	if readErr != nil {
		return "", fmt.Errorf("readlink failed and no .target sidecar found: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// IsSymlink reports whether path exists and is a symlink (or a Windows
// fallback copy with a sidecar). A missing path returns an fs.ErrNotExist error.
func IsSymlink(fsys afero.Fs, path string) (bool, error) {
	info, err := lstat(fsys, path)
	if err != nil {
		return false, err
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return true, nil
	}
	if runtime.GOOS == "windows" {
		if _, err := fsys.Stat(path + sidecarExt); err == nil {
			return true, nil
		}
	}
	return false, nil
}

// IsSymlinkSupported returns true if the current platform supports native symlinks.
// On Windows this attempts a test symlink to check developer mode.
func IsSymlinkSupported() bool {
	if runtime.GOOS != "windows" {
		return true
	}

	tmpDir := os.TempDir()
	link := filepath.Join(tmpDir, ".pbhook-symlink-test")
	defer os.Remove(link)

	return os.Symlink(tmpDir, link) == nil
}

func lstat(fsys afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fsys.Stat(path)
}

// copyFileForSymlink copies src to dst. A relative src is resolved against
// the directory containing dst, the same way a relative symlink would be.
func copyFileForSymlink(fsys afero.Fs, src, dst string) error {
	resolvedSrc := src
	if !filepath.IsAbs(src) {
		resolvedSrc = filepath.Join(filepath.Dir(dst), src)
	}

	data, err := afero.ReadFile(fsys, resolvedSrc)
	if err != nil {
		return err
	}
	info, err := fsys.Stat(resolvedSrc)
	if err != nil {
		return err
	}
	return afero.WriteFile(fsys, dst, data, info.Mode().Perm())
}
