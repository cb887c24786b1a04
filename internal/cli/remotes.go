package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	clierrors "github.com/kettle-rb/kettle-changelog/internal/errors"
	"github.com/kettle-rb/kettle-changelog/internal/git"
)

var remotesCmd = &cobra.Command{
	Use:   "remotes",
	Short: "List git remotes and the forge identity detected for each",
	Long: `List the git remotes of the repository with the forge, owner and repo
parsed from each URL, and mark the one cut uses for link references.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemotes(cmd)
	},
}

func init() {
	remotesCmd.GroupID = GroupInspect
	rootCmd.AddCommand(remotesCmd)
}

func runRemotes(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	remotes, err := git.Remotes(projectDir())
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Prerequisite,
			"reading git remotes",
			"Run inside a git repository, or pass -C <dir>",
		)
	}

	selected := cfg.IdentityOverride()
	source := "config owner/repo"
	if selected == nil {
		selected, _ = git.RepoIdentity(projectDir(), cfg.Remote)
		source = ""
	}

	if len(remotes) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No remotes configured.")
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, r := range remotes {
		forgeName, repo := "-", "-"
		if r.Identity != nil {
			forgeName = string(r.Identity.Provider)
			repo = r.Identity.String()
		}
		mark := " "
		if source == "" && selected != nil && r.Identity != nil && *r.Identity == *selected {
			mark = "*"
			source = r.Name
		}
		fmt.Fprintf(tw, "%s %s\t%s\t%s\t%s\n", mark, r.Name, forgeName, repo, r.URL)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if selected == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "\nNo GitHub remote found; cut will skip link references.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nLink references use github.com/%s (%s)\n", selected, source)
	return nil
}
