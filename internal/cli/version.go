package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kettle-rb/kettle-changelog/internal/build"
)

// SourceURL is the project source URL
const SourceURL = "https://github.com/kettle-rb/kettle-changelog"

var versionPlain bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  "Display version, commit, build date, and Go version information for kettle-changelog",
	Example: `  kettle-changelog version
  kettle-changelog version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		info := build.Get()
		if versionPlain {
			fmt.Fprintf(out, "kettle-changelog %s\n", info.Version)
			fmt.Fprintf(out, "commit: %s\n", info.Commit)
			fmt.Fprintf(out, "built: %s\n", info.BuildDate)
			fmt.Fprintf(out, "go: %s\n", info.GoVersion)
			fmt.Fprintf(out, "platform: %s\n", info.Platform)
			return
		}

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		title := cyan("kettle-changelog") + " " + info.Version
		if info.IsDevBuild() {
			title += " (development build)"
		}
		fmt.Fprintln(out, title)
		for _, item := range []struct{ label, value string }{
			{"Commit", info.ShortCommit()},
			{"Built", info.BuildDate},
			{"Go", info.GoVersion},
			{"Platform", info.Platform},
			{"Source", SourceURL},
		} {
			fmt.Fprintf(out, "  %s %s\n", yellow(fmt.Sprintf("%-9s", item.label)), item.value)
		}
	},
}

func init() {
	versionCmd.GroupID = GroupSettings
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
}
