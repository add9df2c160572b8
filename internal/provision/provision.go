package provision

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/programmor/pbhook/internal/logging"
	"github.com/programmor/pbhook/internal/platform"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// DefaultLinkDir is the link directory, relative to the project directory,
// the firmware build expects schemas in.
const DefaultLinkDir = "protobuf"

// projectDirRef is resolved through the host's substitution once per link.
const projectDirRef = "$PROJECT_DIR"

// ErrNoProjectDir is returned when PROJECT_DIR substitutes to an empty string.
var ErrNoProjectDir = errors.New("PROJECT_DIR is not set")

// Substituter resolves host variables such as $PROJECT_DIR.
type Substituter interface {
	Subst(s string) string
}

// Provisioner creates schema symlinks on a filesystem.
type Provisioner struct {
	fs      afero.Fs
	log     logrus.FieldLogger
	linkDir string
}

// New returns a Provisioner. An empty linkDir selects DefaultLinkDir.
func New(fsys afero.Fs, logger logrus.FieldLogger, linkDir string) *Provisioner {
	if linkDir == "" {
		linkDir = DefaultLinkDir
	}
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Provisioner{fs: fsys, log: logger, linkDir: linkDir}
}

// paths resolves the source file and link path for name.
func (p *Provisioner) paths(vars Substituter, sourceDir, name string) (source, link string, err error) {
	absDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", "", fmt.Errorf("resolving source folder %s: %w", sourceDir, err)
	}
	source = filepath.Join(absDir, name)

	projectDir := vars.Subst(projectDirRef)
	if projectDir == "" {
		return source, "", ErrNoProjectDir
	}
	link = filepath.Join(projectDir, p.linkDir, name)
	return source, link, nil
}

// Link creates <project>/<linkDir>/<name> pointing at <sourceDir>/<name>.
func (p *Provisioner) Link(vars Substituter, sourceDir, name string) Result {
	res := Result{Name: name}

	source, link, err := p.paths(vars, sourceDir, name)
	res.Source, res.Link = source, link
	if err != nil {
		res.Outcome, res.Err = Failed, err
		return res
	}

	log := p.log.WithFields(logrus.Fields{"source": source, "link": link})
	log.Debug("creating symlink")

	err = platform.CreateSymlink(p.fs, source, link)
	switch {
	case err == nil:
		res.Outcome = Created
	case errors.Is(err, fs.ErrExist):
		log.Debug("link path already occupied")
		res.Outcome = AlreadyExists
	default:
		log.WithError(err).Debug("symlink failed")
		res.Outcome, res.Err = Failed, err
	}
	return res
}

// Provision links every name in order. It stops at the first Failed result
// and returns the results gathered so far together with the failure.
func (p *Provisioner) Provision(vars Substituter, sourceDir string, names []string) ([]Result, error) {
	results := make([]Result, 0, len(names))
	for _, name := range names {
		res := p.Link(vars, sourceDir, name)
		results = append(results, res)
		if res.Outcome == Failed {
			return results, fmt.Errorf("linking %s: %w", name, res.Err)
		}
	}
	return results, nil
}
