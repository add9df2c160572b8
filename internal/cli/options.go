package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/programmor/pbhook/internal/config"
	"github.com/programmor/pbhook/internal/linker"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// hookOptions resolves the schema folder argument and config into linker
// options. The folder defaults to the current directory, which is where the
// build runs hook scripts from.
func hookOptions(cmd *cobra.Command, args []string) (linker.Options, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return linker.Options{}, fmt.Errorf("getting current directory: %w", err)
	}

	schemaDir := cwd
	if len(args) > 0 {
		schemaDir = args[0]
	}
	schemaDir, err = filepath.Abs(schemaDir)
	if err != nil {
		return linker.Options{}, fmt.Errorf("resolving schema folder: %w", err)
	}

	linkDir := config.Get(config.KeyLinkDir)
	if err := checkLinkDir(linkDir); err != nil {
		return linker.Options{}, err
	}

	projectDir := config.ProjectDir("")
	envBase := projectDir
	if envBase == "" {
		envBase = cwd
	}

	return linker.Options{
		SchemaDir:  schemaDir,
		ProjectDir: projectDir,
		EnvFile:    config.EnvFile(envBase),
		LinkDir:    linkDir,
		Version:    buildVersion,
		Fs:         afero.NewOsFs(),
		Log:        log,
		Out:        cmd.OutOrStdout(),
		Notify:     printNotice(cmd.OutOrStdout()),
	}, nil
}

// checkLinkDir rejects link directories that climb out of the project
// directory, matching the link_dir rule in pbhook.yaml.
func checkLinkDir(dir string) error {
	parts := strings.FieldsFunc(dir, func(r rune) bool { return r == '/' || r == '\\' })
	if slices.Contains(parts, "..") {
		return fmt.Errorf("link dir %q must not contain a '..' component", dir)
	}
	return nil
}
