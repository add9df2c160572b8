package cli

import (
	"fmt"
	"strings"

	"github.com/programmor/pbhook/internal/linker"
	"github.com/programmor/pbhook/internal/manifest"
	"github.com/spf13/cobra"
)

var schemaDir string

func init() {
	schemaCmd.PersistentFlags().StringVar(&schemaDir, "dir", "", "Schema folder (default current directory)")
	schemaCmd.AddCommand(schemaAddCmd)
	schemaCmd.AddCommand(schemaRemoveCmd)
	schemaCmd.AddCommand(schemaListCmd)
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Manage the schema pairs listed in pbhook.yaml",
}

func schemaArgs() []string {
	if schemaDir == "" {
		return nil
	}
	return []string{schemaDir}
}

func printSchemas(cmd *cobra.Command, m *manifest.Manifest) {
	fmt.Fprintf(cmd.OutOrStdout(), "schemas: %s\n", strings.Join(m.Schemas, ", "))
}

var schemaAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a schema pair",
	Long: `Add <name>.proto and <name>.options to the files linked for this folder.

Example:
  pbhook schema add config`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := hookOptions(cmd, schemaArgs())
		if err != nil {
			return err
		}
		m, err := linker.AddSchema(opts.SchemaDir, args[0])
		if err != nil {
			return err
		}
		printSchemas(cmd, m)
		return nil
	},
}

var schemaRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a schema pair (existing links are kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := hookOptions(cmd, schemaArgs())
		if err != nil {
			return err
		}
		m, err := linker.RemoveSchema(opts.SchemaDir, args[0])
		if err != nil {
			return err
		}
		printSchemas(cmd, m)
		return nil
	},
}

var schemaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the files linked for this folder",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := hookOptions(cmd, schemaArgs())
		if err != nil {
			return err
		}
		m, err := linker.LoadProject(opts.SchemaDir)
		if err != nil {
			return err
		}
		for _, f := range m.Files() {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		return nil
	},
}
