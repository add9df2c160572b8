package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/programmor/pbhook/internal/branding"
	"github.com/programmor/pbhook/internal/linker"
	"github.com/spf13/cobra"
)

var (
	initSchemas string
	initForce   bool
)

func init() {
	initCmd.Flags().StringVar(&initSchemas, "schemas", "", "Comma-separated schema names (default: every *.proto in the folder)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing pbhook.yaml")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [folder]",
	Short: "Create a pbhook.yaml for a schema folder",
	Long: `Create pbhook.yaml in the schema folder (default current directory),
listing the schema pairs that the link hook should provision.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := hookOptions(cmd, args)
		if err != nil {
			return err
		}

		configPath := linker.ProjectConfigPath(opts.SchemaDir)
		if _, err := os.Stat(configPath); err == nil && !initForce {
			return fmt.Errorf("schema folder already initialized: %s exists", configPath)
		}

		m, err := linker.InitProject(opts.SchemaDir, parseList(initSchemas))
		if err != nil {
			return fmt.Errorf("initializing schema folder: %w", err)
		}

		fmt.Printf("Created %s\n", configPath)
		fmt.Printf("Schemas: %s\n", strings.Join(m.Schemas, ", "))
		fmt.Printf("Use '%s run' from the build to register and link them.\n", branding.CLIName())
		return nil
	},
}

func parseList(s string) []string {
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
