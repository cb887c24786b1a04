package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kettle-rb/kettle-changelog/internal/config"
	clierrors "github.com/kettle-rb/kettle-changelog/internal/errors"
	"github.com/kettle-rb/kettle-changelog/internal/git"
)

// Command groups shown in help output.
const (
	GroupRelease  = "release"
	GroupInspect  = "inspect"
	GroupSettings = "settings"
)

var (
	configPath    string
	changelogPath string
	workDir       string
	debugMode     bool
)

var rootCmd = &cobra.Command{
	Use:   "kettle-changelog",
	Short: "Cut releases in a Keep a Changelog CHANGELOG.md",
	Long: `kettle-changelog maintains a CHANGELOG.md in the Keep a Changelog format.

It moves the pending changes under "## [Unreleased]" into a dated release
section, resets Unreleased to an empty category skeleton, and keeps the
link references at the bottom of the file pointing at GitHub compare and
tag pages.`,
	Example: `  # Cut the version declared in lib/**/version.rb, dated today
  kettle-changelog cut

  # Preview a cut of an explicit version
  kettle-changelog cut --version 1.2.0 --dry-run

  # Show what is pending release
  kettle-changelog show unreleased

  # Lint the changelog in CI
  kettle-changelog check`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugMode {
			log.SetFlags(log.Ltime | log.Lmicroseconds)
			log.SetOutput(cmd.ErrOrStderr())
			git.SetDebugLogger(log.Printf)
		}
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupInspect, Title: "Inspection Commands:"},
		&cobra.Group{ID: GroupSettings, Title: "Configuration Commands:"},
	)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Project config file (default: .kettle-changelog.yml)")
	rootCmd.PersistentFlags().StringVar(&changelogPath, "changelog", "", "Changelog file (overrides changelog_path)")
	rootCmd.PersistentFlags().StringVarP(&workDir, "chdir", "C", "", "Run as if started in this directory")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Log debug output to stderr")
}

// Execute runs the root command. CLIErrors are printed with their
// remediation steps before being returned.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		clierrors.FprintError(os.Stderr, cliErr)
	} else if !isExitError(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func isExitError(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}

// loadConfig loads the configuration, applies the --changelog override and
// resolves file settings against the working directory.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configPath,
		ProjectDir:        workDir,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, clierrors.ConfigLoadFailed(err)
	}
	if changelogPath != "" {
		cfg.ChangelogPath = changelogPath
	}

	cfg.ChangelogPath = resolvePath(cfg.ChangelogPath)
	cfg.CoverageFile = resolvePath(cfg.CoverageFile)
	cfg.DocsStatsFile = resolvePath(cfg.DocsStatsFile)
	return cfg, nil
}

// resolvePath joins a relative path onto --chdir.
func resolvePath(path string) string {
	if path == "" || workDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workDir, path)
}

// projectDir returns the directory commands operate in.
func projectDir() string {
	if workDir == "" {
		return "."
	}
	return workDir
}
