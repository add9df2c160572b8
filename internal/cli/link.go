package cli

import (
	"os"

	"github.com/programmor/pbhook/internal/linker"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(statusCmd)
}

var linkCmd = &cobra.Command{
	Use:   "link [folder]",
	Short: "Link the folder's schema files into the project",
	Long: `Create <project-dir>/protobuf/<file> symlinks for every schema pair
(<name>.proto and <name>.options) listed in the folder's pbhook.yaml, or for
the transaction pair when there is none.

Links that already exist are reported and left alone. Any other failure
aborts with a non-zero exit status.

The build env is read from <project-dir>/.pbhook/env.yaml. Without
--project-dir (or project_dir / PROJECT_DIR) that is the current directory,
so a PROJECT_DIR saved by an earlier 'pbhook run --project-dir X' is only
seen when X is given again or --env-file points at X/.pbhook/env.yaml.

Example:
  PROJECT_DIR=/build/project pbhook link ./protobuf`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := hookOptions(cmd, args)
		if err != nil {
			return err
		}

		results, err := linker.Link(opts)
		if err != nil {
			return err
		}
		if verbose {
			printSummary(os.Stderr, results)
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status [folder]",
	Short: "Show the state of the folder's schema links",
	Long: `Show the state of the folder's schema links. The build env is resolved
the same way as for 'pbhook link'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := hookOptions(cmd, args)
		if err != nil {
			return err
		}

		statuses, err := linker.Status(opts)
		if err != nil {
			return err
		}
		for _, st := range statuses {
			fprintStatus(cmd.OutOrStdout(), st)
		}
		return nil
	},
}
