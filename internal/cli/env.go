package cli

import (
	"fmt"

	"github.com/programmor/pbhook/internal/buildenv"
	"github.com/programmor/pbhook/internal/registrar"
	"github.com/spf13/cobra"
)

func init() {
	envCmd.AddCommand(envShowCmd)
	envCmd.AddCommand(envExportCmd)
	rootCmd.AddCommand(envCmd)
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Inspect the persisted build env",
	Long:  `Show the generator options and variables that the hooks have written to the build env file.`,
}

func loadEnv(cmd *cobra.Command) (*buildenv.Env, string, error) {
	opts, err := hookOptions(cmd, nil)
	if err != nil {
		return nil, "", err
	}
	env, err := buildenv.Load(opts.EnvFile)
	if err != nil {
		return nil, "", err
	}
	return env, opts.EnvFile, nil
}

var envShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the build env with schema filters broken out",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, path, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "# %s\n", path)
		if len(env.Options) == 0 {
			fmt.Fprintln(out, "(no options)")
		}
		for _, key := range env.Keys() {
			fmt.Fprintf(out, "%s=%s\n", key, env.Get(key))
			if key != registrar.ProtosKey {
				continue
			}
			filters, err := registrar.ParseFilters(env.Get(key))
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			for _, f := range filters {
				fmt.Fprintf(out, "  %s\n", f)
			}
		}
		if v := env.Vars[buildenv.ProjectDirVar]; v != "" {
			fmt.Fprintf(out, "$%s=%s\n", buildenv.ProjectDirVar, v)
		}
		return nil
	},
}

var envExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the options as KEY=VALUE lines for the host build",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, _, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		for _, line := range env.Environ() {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}
