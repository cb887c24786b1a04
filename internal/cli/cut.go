package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kettle-rb/kettle-changelog/internal/changelog"
	"github.com/kettle-rb/kettle-changelog/internal/config"
	clierrors "github.com/kettle-rb/kettle-changelog/internal/errors"
	"github.com/kettle-rb/kettle-changelog/internal/forge"
	"github.com/kettle-rb/kettle-changelog/internal/git"
	"github.com/kettle-rb/kettle-changelog/internal/output"
	"github.com/kettle-rb/kettle-changelog/internal/progress"
	"github.com/kettle-rb/kettle-changelog/internal/project"
)

// cutOptions holds the cut command flags.
type cutOptions struct {
	Version   string
	Date      string
	Remote    string
	DryRun    bool
	NoMetrics bool
	// Now is the clock used for the default date.
	Now func() time.Time
}

var cutFlags cutOptions

var cutCmd = &cobra.Command{
	Use:   "cut",
	Short: "Move Unreleased changes into a new release section",
	Long: `Cut a release in the changelog.

The changes listed under "## [Unreleased]" become a new "## [X.Y.Z] - DATE"
section with a TAG line and, when available, coverage and documentation
metrics. Empty categories are dropped from the release, Unreleased is reset
to an empty Added/Changed/Deprecated/Removed/Fixed/Security skeleton, and the
link references at the bottom of the file are rebuilt for the new version.

The version defaults to the VERSION constant found by version_glob and the
date defaults to today. The GitHub owner/repo comes from owner/repo in the
config, else from the --remote remote, else origin, else any GitHub remote.

The file is written once, atomically. Nothing is written on error.`,
	Example: `  # Cut the detected version, dated today
  kettle-changelog cut

  # Explicit version and date, printed instead of written
  kettle-changelog cut --version 2.0.0 --date 2025-06-01 --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCut(cmd, cutFlags)
	},
}

func init() {
	cutCmd.GroupID = GroupRelease
	rootCmd.AddCommand(cutCmd)

	cutCmd.Flags().StringVar(&cutFlags.Version, "version", "", "Release version (default: detected from version_glob)")
	cutCmd.Flags().StringVar(&cutFlags.Date, "date", "", "Release date as YYYY-MM-DD (default: today)")
	cutCmd.Flags().StringVar(&cutFlags.Remote, "remote", "", "Git remote for the GitHub owner/repo (default: remote from config)")
	cutCmd.Flags().BoolVar(&cutFlags.DryRun, "dry-run", false, "Print the updated changelog instead of writing it")
	cutCmd.Flags().BoolVar(&cutFlags.NoMetrics, "no-metrics", false, "Omit coverage and documentation lines")
}

// cutInputs is what the concurrent gathering step collects.
type cutInputs struct {
	version  string
	identity *forge.Identity
	metrics  project.Metrics
	warnings []string
}

func runCut(cmd *cobra.Command, opts cutOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if opts.Remote == "" {
		opts.Remote = cfg.Remote
	}

	if _, err := os.Stat(cfg.ChangelogPath); err != nil {
		return clierrors.ChangelogNotFound(cfg.ChangelogPath)
	}

	spin := progress.StartSpinner(cmd.ErrOrStderr(), "Reading version, remotes and metrics")
	inputs, err := gatherCutInputs(cfg, opts)
	spin.Finish(err == nil)
	if err != nil {
		return err
	}

	date := opts.Date
	if date == "" {
		date = project.Today(opts.Now)
	}

	in := changelog.CutInput{
		Release: changelog.Release{
			Version: inputs.version,
			Date:    date,
			Metrics: inputs.metrics.Lines(),
		},
		Identity: inputs.identity,
	}

	var result *changelog.CutResult
	if opts.DryRun {
		var text string
		text, err = changelog.ReadFile(cfg.ChangelogPath)
		if err == nil {
			result, err = changelog.Cut(text, in)
		}
	} else {
		result, err = changelog.CutFile(cfg.ChangelogPath, in)
	}
	if err != nil {
		return cutError(err, cfg.ChangelogPath)
	}

	stderr := cmd.ErrOrStderr()
	for _, w := range inputs.warnings {
		clierrors.FprintWarning(stderr, "%s", w)
	}
	for _, w := range result.Warnings {
		clierrors.FprintWarning(stderr, "%s", w.Message)
	}
	warnIfTagExists(stderr, result.Version)

	if opts.DryRun {
		_, err := io.WriteString(cmd.OutOrStdout(), result.Text)
		return err
	}

	output.PrintCutSummary(cmd.OutOrStdout(), result.Version, date, cfg.ChangelogPath, result.PreviousVersion)
	return nil
}

// gatherCutInputs resolves the version, the GitHub identity and the metric
// lines concurrently. Only a missing version is fatal.
func gatherCutInputs(cfg *config.Configuration, opts cutOptions) (*cutInputs, error) {
	var (
		g              errgroup.Group
		inputs         cutInputs
		metricWarnings []string
	)
	dir := projectDir()

	g.Go(func() error {
		if opts.Version != "" {
			inputs.version = opts.Version
			return nil
		}
		root, err := git.Root(dir)
		if err != nil {
			root = dir
		}
		v, err := project.DetectVersion(root, cfg.VersionGlob)
		if err != nil {
			return clierrors.VersionNotDetected(err)
		}
		inputs.version = v
		return nil
	})

	g.Go(func() error {
		if id := cfg.IdentityOverride(); id != nil {
			inputs.identity = id
			return nil
		}
		id, err := git.RepoIdentity(dir, opts.Remote)
		if err != nil {
			// Not a repository: Cut reports the missing identity.
			return nil
		}
		inputs.identity = id
		return nil
	})

	g.Go(func() error {
		if !cfg.Metrics || opts.NoMetrics {
			return nil
		}
		inputs.metrics, metricWarnings = readMetrics(cfg)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	inputs.warnings = metricWarnings
	return &inputs, nil
}

// readMetrics reads the coverage and documentation metrics, turning each
// unavailable one into a warning.
func readMetrics(cfg *config.Configuration) (project.Metrics, []string) {
	var (
		m        project.Metrics
		warnings []string
	)

	if cfg.CoverageFile != "" {
		line, branch, err := project.ReadCoverage(cfg.CoverageFile)
		switch {
		case err != nil:
			warnings = append(warnings, fmt.Sprintf("omitting coverage lines: %v", err))
		case line == "":
			warnings = append(warnings, fmt.Sprintf("omitting coverage line: no line coverage in %s", cfg.CoverageFile))
		}
		m.Line, m.Branch = line, branch
	}

	if cfg.DocsStatsFile != "" {
		doc, err := project.ReadDocumentation(cfg.DocsStatsFile)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("omitting documentation line: %v", err))
		}
		m.Documentation = doc
	}
	return m, warnings
}

// cutError maps changelog errors to CLI errors with remediation.
func cutError(err error, path string) error {
	var dup *changelog.DuplicateVersionError
	switch {
	case errors.Is(err, changelog.ErrUnreleasedNotFound):
		return clierrors.MissingUnreleasedSection(path)
	case errors.As(err, &dup):
		return clierrors.DuplicateVersion(dup.Version, path)
	case changelog.IsValidationError(err):
		return clierrors.InvalidRelease(err)
	}
	return clierrors.WrapWithMessage(err, clierrors.Runtime, "cutting release")
}

func warnIfTagExists(w io.Writer, version string) {
	tag := "v" + version
	exists, err := git.TagExists(projectDir(), tag)
	if err == nil && exists {
		clierrors.FprintWarning(w, "tag %s already exists in this repository", tag)
	}
}
