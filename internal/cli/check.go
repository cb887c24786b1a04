package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kettle-rb/kettle-changelog/internal/changelog"
	clierrors "github.com/kettle-rb/kettle-changelog/internal/errors"
	"github.com/kettle-rb/kettle-changelog/internal/git"
	"github.com/kettle-rb/kettle-changelog/internal/output"
	"github.com/kettle-rb/kettle-changelog/internal/watch"
)

var (
	checkFixFlag   bool
	checkWatchFlag bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Lint the changelog structure and link references",
	Long: `Lint the changelog.

Reports a missing Unreleased section, duplicate or misordered release
headings, releases and TAG lines without a link reference, duplicate or
misordered reference keys, and legacy GitLab links.

Returns exit code 0 when clean, or exit code 1 with one line per problem.
With --fix, legacy GitLab compare and tag links are rewritten to GitHub
before linting. With --watch, the changelog is linted again every time it
is saved until interrupted.`,
	Example: `  kettle-changelog check
  kettle-changelog check --fix
  kettle-changelog check --watch`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd)
	},
}

func init() {
	checkCmd.GroupID = GroupRelease
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkFixFlag, "fix", false, "Rewrite legacy GitLab links to GitHub")
	checkCmd.Flags().BoolVar(&checkWatchFlag, "watch", false, "Re-run the check whenever the changelog changes")
}

func runCheck(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	text, err := changelog.ReadFile(cfg.ChangelogPath)
	if err != nil {
		return clierrors.ChangelogNotFound(cfg.ChangelogPath)
	}

	if checkFixFlag && changelog.HasLegacyLinks(text) {
		id := cfg.IdentityOverride()
		if id == nil {
			id, _ = git.RepoIdentity(projectDir(), cfg.Remote)
		}
		fixed := changelog.MigrateLegacyLinks(text, id)
		if err := changelog.WriteFile(cfg.ChangelogPath, fixed); err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing changelog")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rewrote legacy GitLab links in %s\n", cfg.ChangelogPath)
		text = fixed
	}

	if checkWatchFlag {
		return watchChangelog(cmd, cfg.ChangelogPath)
	}

	if n := reportProblems(cmd.OutOrStdout(), cfg.ChangelogPath, changelog.Lint(text)); n > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "\n%d problem(s) found\n", n)
		return NewExitError(ExitValidationFailed)
	}
	return nil
}

// reportProblems prints one line per problem, or a success line, and
// returns the number of problems.
func reportProblems(w io.Writer, path string, problems []changelog.Problem) int {
	if len(problems) == 0 {
		output.PrintSuccess(w, path+": no problems found")
		return 0
	}
	for _, p := range problems {
		if p.Line > 0 {
			fmt.Fprintf(w, "%s:%d: %s\n", path, p.Line, p.Message)
		} else {
			fmt.Fprintf(w, "%s: %s\n", path, p.Message)
		}
	}
	return len(problems)
}

// watchChangelog lints path now and after every change until the command
// context is cancelled or the process is interrupted.
func watchChangelog(cmd *cobra.Command, path string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	w, err := watch.New(path)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "watching changelog")
	}
	defer w.Close()

	out := cmd.OutOrStdout()
	dim := color.New(color.Faint).SprintFunc()
	lint := func() {
		fmt.Fprintln(out, dim(fmt.Sprintf("[%s] checking %s", time.Now().Format(time.TimeOnly), path)))
		text, err := changelog.ReadFile(path)
		if err != nil {
			clierrors.FprintWarning(cmd.ErrOrStderr(), "%v", err)
			return
		}
		reportProblems(out, path, changelog.Lint(text))
	}

	lint()
	for range w.Changes(ctx) {
		lint()
	}
	return nil
}
