package linker

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/programmor/pbhook/internal/buildenv"
	"github.com/programmor/pbhook/internal/logging"
	"github.com/programmor/pbhook/internal/manifest"
	"github.com/programmor/pbhook/internal/provision"
	"github.com/programmor/pbhook/internal/registrar"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Options configures a hook run for one schema folder.
type Options struct {
	SchemaDir  string // folder holding the schemas and the optional pbhook.yaml
	ProjectDir string // value for PROJECT_DIR; empty keeps what the env file holds
	EnvFile    string // persisted build env
	LinkDir    string // overrides the manifest's link_dir
	Version    string // running pbhook version, checked against requires
	Mode       registrar.Mode
	DryRun     bool // Register computes the new values without saving them

	Fs     afero.Fs
	Log    logrus.FieldLogger
	Out    io.Writer
	Notify func(provision.Result) // defaults to printing Result.Notice() to Out
}

func (o *Options) defaults() {
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Log == nil {
		o.Log = logging.NewNullLogger()
	}
	if o.Notify == nil {
		out := o.Out
		o.Notify = func(r provision.Result) { fmt.Fprintln(out, r.Notice()) }
	}
}

// project loads the manifest and checks it against the running version.
func (o *Options) project() (*manifest.Manifest, error) {
	m, err := LoadProject(o.SchemaDir)
	if err != nil {
		return nil, err
	}
	if err := manifest.CheckRequires(m.Requires, o.Version); err != nil {
		return nil, fmt.Errorf("%s: %w", ProjectConfigPath(o.SchemaDir), err)
	}
	return m, nil
}

// env loads the build env and applies the project directory override.
func (o *Options) env() (*buildenv.Env, error) {
	env, err := buildenv.Load(o.EnvFile)
	if err != nil {
		return nil, err
	}
	if o.ProjectDir != "" {
		abs, err := filepath.Abs(o.ProjectDir)
		if err != nil {
			return nil, fmt.Errorf("resolving project directory: %w", err)
		}
		env.SetVar(buildenv.ProjectDirVar, abs)
	}
	return env, nil
}

func (o *Options) provisioner(m *manifest.Manifest) *provision.Provisioner {
	linkDir := o.LinkDir
	if linkDir == "" {
		linkDir = m.LinkDir
	}
	return provision.New(o.Fs, o.Log, linkDir)
}

// Register appends the schema folder to the build env's generator options
// and saves the env, unless DryRun is set.
func Register(opts Options) (*buildenv.Env, error) {
	opts.defaults()

	m, err := opts.project()
	if err != nil {
		return nil, err
	}
	env, err := opts.env()
	if err != nil {
		return nil, err
	}
	if err := register(opts, m, env); err != nil {
		return nil, err
	}
	if opts.DryRun {
		return env, nil
	}
	if err := env.Save(opts.EnvFile); err != nil {
		return nil, err
	}
	return env, nil
}

func register(opts Options, m *manifest.Manifest, env *buildenv.Env) error {
	err := registrar.RegisterSchemaFolder(savedEnv{env}, opts.SchemaDir,
		registrar.WithMode(opts.Mode),
		registrar.WithErrorOnUnmatched(m.StrictMatching()))
	if err != nil {
		return err
	}
	opts.Log.WithFields(logrus.Fields{
		"folder": opts.SchemaDir,
		"mode":   opts.Mode,
	}).Debug("registered schema folder")
	return nil
}

// savedEnv appends only the fragments the env does not hold yet. The env file
// outlives a single build, so a repeated hook run must leave it unchanged.
type savedEnv struct {
	*buildenv.Env
}

func (e savedEnv) Append(key, fragment string) {
	if hasFragment(key, e.Get(key), fragment) {
		return
	}
	e.Env.Append(key, fragment)
}

// hasFragment reports whether every entry of fragment is already in value.
// Schema filters are compared as parsed filters so paths with spaces match.
func hasFragment(key, value, fragment string) bool {
	if key == registrar.ProtosKey {
		have, err := registrar.ParseFilters(value)
		want, wantErr := registrar.ParseFilters(fragment)
		if err == nil && wantErr == nil && len(want) > 0 {
			for _, f := range want {
				if !slices.Contains(have, f) {
					return false
				}
			}
			return true
		}
	}

	want := strings.Fields(fragment)
	if len(want) == 0 {
		return false
	}
	have := strings.Fields(value)
	for _, f := range want {
		if !slices.Contains(have, f) {
			return false
		}
	}
	return true
}

// Link provisions the symlinks for every schema pair in the manifest. Notices
// are reported for each result, including those before a failure.
func Link(opts Options) ([]provision.Result, error) {
	opts.defaults()

	m, err := opts.project()
	if err != nil {
		return nil, err
	}
	env, err := opts.env()
	if err != nil {
		return nil, err
	}
	return link(opts, m, env)
}

func link(opts Options, m *manifest.Manifest, env *buildenv.Env) ([]provision.Result, error) {
	results, err := opts.provisioner(m).Provision(env, opts.SchemaDir, m.Files())
	for _, r := range results {
		if r.Outcome != provision.Failed {
			opts.Notify(r)
		}
	}
	return results, err
}

// Sync runs both hooks: it registers the folder, saves the env and then
// provisions the links.
func Sync(opts Options) ([]provision.Result, error) {
	opts.defaults()

	m, err := opts.project()
	if err != nil {
		return nil, err
	}
	env, err := opts.env()
	if err != nil {
		return nil, err
	}
	if err := register(opts, m, env); err != nil {
		return nil, err
	}
	if err := env.Save(opts.EnvFile); err != nil {
		return nil, err
	}
	return link(opts, m, env)
}

// Status reports the link state of every file in the manifest.
func Status(opts Options) ([]provision.LinkStatus, error) {
	opts.defaults()

	m, err := opts.project()
	if err != nil {
		return nil, err
	}
	env, err := opts.env()
	if err != nil {
		return nil, err
	}

	p := opts.provisioner(m)
	statuses := make([]provision.LinkStatus, 0, len(m.Schemas)*2)
	for _, name := range m.Files() {
		st, err := p.Status(env, opts.SchemaDir, name)
		if err != nil {
			return statuses, err
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}
