package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/programmor/pbhook/internal/branding"
	"github.com/programmor/pbhook/internal/config"
	"github.com/programmor/pbhook/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbose bool
	log     logrus.FieldLogger = logging.NewNullLogger()
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` runs the firmware build hooks for nanopb schemas: it registers a
schema folder with the generator options in the build env and links the
schema files into the project's protobuf/ directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		for _, key := range []string{config.KeyProjectDir, config.KeyEnvFile, config.KeyLinkDir} {
			if err := viper.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(flagName(key))); err != nil {
				return fmt.Errorf("binding flag %s: %w", key, err)
			}
		}
		log = logging.New(os.Stderr, verbose)
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String(flagName(config.KeyProjectDir), "", "Project directory substituted for $PROJECT_DIR")
	flags.String(flagName(config.KeyEnvFile), "", "Build env file (default <project-dir>/"+config.DefaultEnvFile+", or under the current directory without a project dir)")
	flags.String(flagName(config.KeyLinkDir), "", "Link directory relative to the project directory (default from pbhook.yaml, else protobuf)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// flagName maps a config key to its flag name (project_dir -> project-dir).
func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
