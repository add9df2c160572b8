package cli

import (
	"os"

	"github.com/programmor/pbhook/internal/linker"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [folder]",
	Short: "Run both build hooks for a schema folder",
	Long: `Register the schema folder with the generator options, then link its
schema files into the project. This is the command to call from the
firmware build's pre-build step.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := hookOptions(cmd, args)
		if err != nil {
			return err
		}

		results, err := linker.Sync(opts)
		if err != nil {
			return err
		}
		if verbose {
			printSummary(os.Stderr, results)
		}
		return nil
	},
}
