// Package linker runs the pbhook build hooks for one schema folder. It loads
// the folder's pbhook.yaml, registers the folder with the persisted build
// env, provisions the schema symlinks under the project directory and
// reports link status. It also edits the schema list in pbhook.yaml.
package linker
