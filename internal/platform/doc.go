// Package platform provides cross-platform symlink operations over an afero
// filesystem. On Unix systems it uses native symlinks. On Windows it falls
// back to copying the file and writing a .target sidecar when developer mode
// symlinks are unavailable.
package platform
