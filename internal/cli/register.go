package cli

import (
	"fmt"

	"github.com/programmor/pbhook/internal/linker"
	"github.com/programmor/pbhook/internal/registrar"
	"github.com/spf13/cobra"
)

var (
	registerOverwrite bool
	registerDryRun    bool
)

func init() {
	registerCmd.Flags().BoolVar(&registerOverwrite, "overwrite", false, "Replace the generator options instead of appending to them")
	registerCmd.Flags().BoolVar(&registerDryRun, "dry-run", false, "Print the resulting options without saving the build env")
	rootCmd.AddCommand(registerCmd)
}

var registerCmd = &cobra.Command{
	Use:   "register [folder]",
	Short: "Register a schema folder with the nanopb generator options",
	Long: `Append an include filter for the folder's *.proto files to
custom_nanopb_protos and the --error-on-unmatched flag to
custom_nanopb_options in the build env. Existing values are kept.

The folder defaults to the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := hookOptions(cmd, args)
		if err != nil {
			return err
		}
		if registerOverwrite {
			opts.Mode = registrar.ModeOverwrite
		}
		opts.DryRun = registerDryRun

		env, err := linker.Register(opts)
		if err != nil {
			return err
		}
		if !registerDryRun {
			return nil
		}

		schemas, err := registrar.Discover(opts.SchemaDir)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s=%s\n", registrar.ProtosKey, env.Get(registrar.ProtosKey))
		fmt.Fprintf(out, "%s=%s\n", registrar.OptionsKey, env.Get(registrar.OptionsKey))
		fmt.Fprintf(out, "# %d schema file(s) match in %s\n", len(schemas), opts.SchemaDir)
		for _, s := range schemas {
			fmt.Fprintf(out, "#   %s\n", s)
		}
		return nil
	},
}
