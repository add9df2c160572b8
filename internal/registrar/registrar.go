package registrar

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Build configuration keys read by the nanopb generator step.
const (
	ProtosKey  = "custom_nanopb_protos"
	OptionsKey = "custom_nanopb_options"
)

const (
	// SchemaExt is the extension of schema files picked up by the include filter.
	SchemaExt = ".proto"
	// OptionsExt is the extension of the companion generator options file.
	OptionsExt = ".options"
	// ErrorOnUnmatchedFlag makes the generator fail when a schema has no
	// matching options rule.
	ErrorOnUnmatchedFlag = "--error-on-unmatched"
)

// Options is the subset of a build configuration the registrar touches.
type Options interface {
	Get(key string) string
	Set(key, value string)
	Append(key, fragment string)
}

// Mode selects how registration writes the configuration values.
type Mode int

const (
	// ModeAppend extends the existing values.
	ModeAppend Mode = iota
	// ModeOverwrite replaces the existing values with the new fragments.
	ModeOverwrite
)

func (m Mode) String() string {
	if m == ModeOverwrite {
		return "overwrite"
	}
	return "append"
}

type settings struct {
	mode             Mode
	errorOnUnmatched bool
}

// Option customizes RegisterSchemaFolder.
type Option func(*settings)

// WithMode sets the write mode. The default is ModeAppend.
func WithMode(m Mode) Option {
	return func(s *settings) { s.mode = m }
}

// WithErrorOnUnmatched toggles the strict-matching generator flag. It is on
// by default.
func WithErrorOnUnmatched(enabled bool) Option {
	return func(s *settings) { s.errorOnUnmatched = enabled }
}

// ProtoFilter returns the include filter fragment for a schema folder,
// e.g. "+</src/protobuf/*.proto>".
func ProtoFilter(folder string) string {
	return fmt.Sprintf("+<%s/*%s>", strings.TrimRight(folder, `/\`), SchemaExt)
}

// RegisterSchemaFolder adds folder's schemas and the strict-matching flag to
// opts. Fragments are space-prefixed so they concatenate onto whatever the
// configuration already holds.
func RegisterSchemaFolder(opts Options, folder string, options ...Option) error {
	s := settings{mode: ModeAppend, errorOnUnmatched: true}
	for _, o := range options {
		o(&s)
	}

	abs, err := filepath.Abs(folder)
	if err != nil {
		return fmt.Errorf("resolving schema folder %s: %w", folder, err)
	}

	write(opts, ProtosKey, " "+ProtoFilter(filepath.ToSlash(abs)), s.mode)
	if s.errorOnUnmatched {
		write(opts, OptionsKey, " "+ErrorOnUnmatchedFlag, s.mode)
	}
	return nil
}

func write(opts Options, key, fragment string, mode Mode) {
	if mode == ModeOverwrite {
		opts.Set(key, fragment)
		return
	}
	opts.Append(key, fragment)
}
