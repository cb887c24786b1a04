package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/kettle-rb/kettle-changelog/internal/changelog"
)

var extractCmd = &cobra.Command{
	Use:   "extract <version>",
	Short: "Print the release notes of a version",
	Long: `Print the release notes of a version in markdown.

The category subsections of the section are printed as written, without the
TAG and metric lines, in a form suitable for a GitHub release body.`,
	Example: `  kettle-changelog extract v1.1.0     # Notes for version 1.1.0
  kettle-changelog extract unreleased # Pending changes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(cmd, args[0])
	},
}

func init() {
	extractCmd.GroupID = GroupInspect
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, version string) error {
	log, err := loadChangelog(cmd)
	if err != nil {
		return err
	}

	s, err := findSection(cmd, log, version)
	if err != nil {
		return err
	}

	_, err = io.WriteString(cmd.OutOrStdout(), changelog.ReleaseNotes(s))
	return err
}
