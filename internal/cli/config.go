package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kettle-rb/kettle-changelog/internal/config"
	clierrors "github.com/kettle-rb/kettle-changelog/internal/errors"
	"github.com/kettle-rb/kettle-changelog/internal/output"
)

var (
	configInitUser   bool
	configInitForce  bool
	configMigrateDry bool
	cGreen           = color.New(color.FgGreen).SprintFunc()
	cBold            = color.New(color.Bold).SprintFunc()
	cDim             = color.New(color.Faint).SprintFunc()
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage kettle-changelog configuration",
	Long: `Manage kettle-changelog configuration.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (KETTLE_CHANGELOG_*)
  2. Project config (.kettle-changelog.yml)
  3. User config (~/.config/kettle-changelog/config.yml)
  4. Built-in defaults

Command-line flags such as --changelog override all of them.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented config file",
	Example: `  kettle-changelog config init          # .kettle-changelog.yml in the project
  kettle-changelog config init --user   # ~/.config/kettle-changelog/config.yml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(cmd.OutOrStdout(), configInitUser, configInitForce)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		return enc.Close()
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the known configuration keys",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		defaults := config.GetDefaults()
		for _, k := range config.SortedKeys() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, default %v)\n", cBold(k.Path), k.Type, formatDefault(defaults[k.Path]))
			fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", k.Description)
			fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", cDim("env: "+config.EnvName(k.Path)))
		}
	},
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert a legacy .kettle-changelog.json to YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := config.MigrateProjectConfig(workDir, configMigrateDry)
		if err != nil {
			return clierrors.Wrap(err, clierrors.Configuration)
		}
		if result.Success {
			output.PrintSuccess(cmd.OutOrStdout(), result.Message)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		}
		return nil
	},
}

func init() {
	configCmd.GroupID = GroupSettings
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd, configKeysCmd, configMigrateCmd)

	configInitCmd.Flags().BoolVar(&configInitUser, "user", false, "Write the user config instead of the project config")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")
	configMigrateCmd.Flags().BoolVar(&configMigrateDry, "dry-run", false, "Report the migration without writing")
}

func runConfigInit(out io.Writer, user, force bool) error {
	configPath := config.ProjectConfigPath(workDir)
	if user {
		var err error
		configPath, err = config.UserConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get user config path: %w", err)
		}
	}

	_, statErr := os.Stat(configPath)
	exists := statErr == nil
	if exists && !force {
		fmt.Fprintf(out, "%s %s: exists at %s (use --force to overwrite)\n", cGreen("✓"), cBold("Config"), cDim(configPath))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	verb := "created"
	if exists {
		verb = "overwritten"
	}
	fmt.Fprintf(out, "%s %s: %s at %s\n", cGreen("✓"), cBold("Config"), verb, cDim(configPath))
	return nil
}

func formatDefault(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(v)
}
