// Package cli defines the Cobra command tree for the pbhook CLI. Each file
// registers one top-level command with the root command. Commands resolve
// flags and config into linker.Options and delegate the work to the internal
// packages; they only handle I/O formatting.
package cli
