package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/programmor/pbhook/internal/branding"
	"github.com/programmor/pbhook/internal/buildenv"
	"github.com/programmor/pbhook/internal/linker"
	"github.com/programmor/pbhook/internal/manifest"
	"github.com/programmor/pbhook/internal/platform"
	"github.com/programmor/pbhook/internal/provision"
	"github.com/programmor/pbhook/internal/registrar"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor [folder]",
	Short: "Check a schema folder and its project links",
	Long: `Run diagnostic checks for a schema folder: symlink support, pbhook.yaml
validity, the schema pairs on disk, the project's link directory, the build
env registration and the state of every link.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := hookOptions(cmd, args)
		if err != nil {
			return err
		}

		d := &doctor{out: cmd.OutOrStdout()}
		d.run(opts)
		if d.failures > 0 {
			return fmt.Errorf("%d check(s) failed", d.failures)
		}
		return nil
	},
}

type doctor struct {
	out      io.Writer
	failures int
}

func (d *doctor) ok(format string, args ...any) {
	fmt.Fprintf(d.out, "  [%s] %s\n", createdColor.Sprint("OK"), fmt.Sprintf(format, args...))
}

func (d *doctor) warn(format string, args ...any) {
	fmt.Fprintf(d.out, "  [%s] %s\n", existsColor.Sprint("!!"), fmt.Sprintf(format, args...))
}

func (d *doctor) fail(format string, args ...any) {
	d.failures++
	fmt.Fprintf(d.out, "  [%s] %s\n", failedColor.Sprint("XX"), fmt.Sprintf(format, args...))
}

func (d *doctor) run(opts linker.Options) {
	fmt.Fprintf(d.out, "Schema folder: %s\n", opts.SchemaDir)

	if platform.IsSymlinkSupported() {
		d.ok("symlinks supported")
	} else {
		d.warn("native symlinks unavailable; links will be copies with .target sidecars")
	}

	m, ok := d.checkManifest(opts)
	if !ok {
		return
	}
	d.checkSchemaFiles(opts.SchemaDir, m)

	env, err := buildenv.Load(opts.EnvFile)
	if err != nil {
		d.fail("build env %s: %v", opts.EnvFile, err)
		return
	}
	d.checkRegistration(opts, env)

	projectDir := opts.ProjectDir
	if projectDir == "" {
		projectDir = env.Vars[buildenv.ProjectDirVar]
	}
	if projectDir == "" {
		d.fail("PROJECT_DIR is not set (use --project-dir, PBHOOK_PROJECT_DIR or PROJECT_DIR)")
		return
	}
	linkDir := opts.LinkDir
	if linkDir == "" {
		linkDir = m.LinkDir
	}
	if linkDir == "" {
		linkDir = provision.DefaultLinkDir
	}
	dir := filepath.Join(projectDir, linkDir)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		d.fail("link directory %s does not exist", dir)
		return
	}
	d.ok("link directory %s", dir)

	statuses, err := linker.Status(opts)
	if err != nil {
		d.fail("link status: %v", err)
		return
	}
	for _, st := range statuses {
		switch st.State {
		case provision.StateLinked:
			d.ok("%s linked", st.Name)
		case provision.StateMissing:
			d.warn("%s not linked yet", st.Name)
		case provision.StateMismatch:
			d.warn("%s links to %s", st.Name, st.Target)
		default:
			d.warn("%s exists but is not a symlink", st.Name)
		}
	}
}

func (d *doctor) checkManifest(opts linker.Options) (*manifest.Manifest, bool) {
	path := linker.ProjectConfigPath(opts.SchemaDir)
	result, err := manifest.ValidateFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		d.ok("no %s, using defaults", manifest.FileName)
	case err != nil:
		d.fail("%v", err)
		return nil, false
	case !result.Valid:
		for _, issue := range result.Issues {
			d.fail("%s %s: %s", manifest.FileName, issue.Path, issue.Message)
		}
		return nil, false
	default:
		d.ok("%s is valid", manifest.FileName)
	}

	m, err := linker.LoadProject(opts.SchemaDir)
	if err != nil {
		d.fail("%v", err)
		return nil, false
	}
	if err := manifest.CheckRequires(m.Requires, opts.Version); err != nil {
		d.fail("%v", err)
		return nil, false
	}
	return m, true
}

func (d *doctor) checkSchemaFiles(dir string, m *manifest.Manifest) {
	for _, name := range m.Files() {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			d.fail("%s missing from schema folder", name)
		}
	}

	found, err := registrar.Discover(dir)
	if err != nil {
		d.fail("listing schemas: %v", err)
		return
	}
	for _, schema := range found {
		companion := registrar.Companion(schema)
		if _, err := os.Stat(filepath.Join(dir, companion)); err != nil {
			d.warn("%s has no %s; --error-on-unmatched may reject it", schema, companion)
		}
	}
	d.ok("%d schema file(s) in folder", len(found))
}

func (d *doctor) checkRegistration(opts linker.Options, env *buildenv.Env) {
	filters, err := registrar.ParseFilters(env.Get(registrar.ProtosKey))
	if err != nil {
		d.fail("%s: %v", registrar.ProtosKey, err)
		return
	}
	want := registrar.Filter{Include: true, Pattern: filterPattern(opts.SchemaDir)}
	if slices.Contains(filters, want) {
		d.ok("folder registered in %s", registrar.ProtosKey)
	} else {
		d.warn("folder not registered in %s; run '%s register'", registrar.ProtosKey, branding.CLIName())
	}
}

// filterPattern is the glob RegisterSchemaFolder writes for dir.
func filterPattern(dir string) string {
	f, _ := registrar.ParseFilters(registrar.ProtoFilter(filepath.ToSlash(dir)))
	if len(f) == 0 {
		return ""
	}
	return f[0].Pattern
}
