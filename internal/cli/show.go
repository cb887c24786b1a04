package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kettle-rb/kettle-changelog/internal/changelog"
	clierrors "github.com/kettle-rb/kettle-changelog/internal/errors"
)

var (
	showLastFlag     int
	showPlainFlag    bool
	showOnelineFlag  bool
	showVersionsFlag bool
)

var showCmd = &cobra.Command{
	Use:   "show [version]",
	Short: "View changelog entries",
	Long: `View changelog entries.

By default, shows the 5 most recent entries. Use a version argument to
see all entries for a specific version, or use --last to control entry count.`,
	Example: `  kettle-changelog show              # Show 5 most recent entries
  kettle-changelog show v1.1.0       # Show all entries for version 1.1.0
  kettle-changelog show unreleased   # Show pending changes
  kettle-changelog show --last 10    # Show 10 most recent entries
  kettle-changelog show --oneline    # One short line per entry
  kettle-changelog show --versions   # List section labels`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd, args)
	},
}

func init() {
	showCmd.GroupID = GroupInspect
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().IntVar(&showLastFlag, "last", 5, "Number of entries to show")
	showCmd.Flags().BoolVar(&showPlainFlag, "plain", false, "Plain text output (no colors/icons)")
	showCmd.Flags().BoolVar(&showOnelineFlag, "oneline", false, "One truncated line per entry")
	showCmd.Flags().BoolVar(&showVersionsFlag, "versions", false, "List section labels and exit")
}

func runShow(cmd *cobra.Command, args []string) error {
	log, err := loadChangelog(cmd)
	if err != nil {
		return err
	}

	if showVersionsFlag {
		for _, v := range log.ListVersions() {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}
		return nil
	}

	opts := changelog.FormatOptions{Plain: showPlainFlag}

	if len(args) == 1 {
		s, err := findSection(cmd, log, args[0])
		if err != nil {
			return err
		}
		if showOnelineFlag {
			printOneline(cmd, s.Entries(), opts)
			return nil
		}
		return changelog.FormatVersion(s, cmd.OutOrStdout(), opts)
	}

	return showLastEntries(log, showLastFlag, cmd, opts)
}

func showLastEntries(log *changelog.Changelog, n int, cmd *cobra.Command, opts changelog.FormatOptions) error {
	entries := log.GetLastN(n)
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No changelog entries found.")
		return nil
	}

	if showOnelineFlag {
		printOneline(cmd, entries, opts)
	} else if err := changelog.FormatTerminal(entries, cmd.OutOrStdout(), opts); err != nil {
		return fmt.Errorf("formatting entries: %w", err)
	}

	total := log.GetEntryCount()
	if total > len(entries) {
		fmt.Fprintf(cmd.OutOrStdout(), "\n(%d of %d entries shown. Use --last %d to see all)\n",
			len(entries), total, total)
	}
	return nil
}

func printOneline(cmd *cobra.Command, entries []changelog.Entry, opts changelog.FormatOptions) {
	for _, e := range entries {
		fmt.Fprintln(cmd.OutOrStdout(), changelog.FormatEntrySummary(e, opts))
	}
}

// loadChangelog reads and parses the configured changelog.
func loadChangelog(cmd *cobra.Command) (*changelog.Changelog, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	text, err := changelog.ReadFile(cfg.ChangelogPath)
	if err != nil {
		return nil, clierrors.ChangelogNotFound(cfg.ChangelogPath)
	}
	return changelog.Parse(text), nil
}

// findSection looks up a section, listing the available ones on stderr when
// it does not exist.
func findSection(cmd *cobra.Command, log *changelog.Changelog, version string) (*changelog.Section, error) {
	s, err := log.GetVersion(version)
	if err == nil {
		return s, nil
	}

	var notFound *changelog.VersionNotFoundError
	if errors.As(err, &notFound) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Version %q not found.\n\n", version)
		fmt.Fprintf(cmd.ErrOrStderr(), "Available versions:\n")
		for _, ver := range notFound.AvailableVersions {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", ver)
		}
		return nil, NewExitError(ExitInvalidArguments)
	}
	return nil, fmt.Errorf("getting version: %w", err)
}
