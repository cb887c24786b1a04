package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// These tests share the global rootCmd and its flag variables, so they must
// not run in parallel.

const fixtureChangelog = `# Changelog

All notable changes to this project will be documented in this file.

## [Unreleased]
### Added
- New widget API
### Changed
### Deprecated
### Removed
### Fixed
- Crash on empty input
### Security

## [1.0.0] - 2025-01-01
- TAG: [v1.0.0][1.0.0t]
### Added
- Initial release

[Unreleased]: https://github.com/acme/widget/compare/v1.0.0...HEAD
[1.0.0]: https://github.com/acme/widget/compare/a1b2c3d...v1.0.0
[1.0.0t]: https://github.com/acme/widget/releases/tag/v1.0.0
`

func resetFlags() {
	configPath = ""
	changelogPath = ""
	workDir = ""
	debugMode = false
	cutFlags = cutOptions{}
	showLastFlag = 5
	showPlainFlag = false
	showOnelineFlag = false
	showVersionsFlag = false
	checkFixFlag = false
	checkWatchFlag = false
	configInitUser = false
	configInitForce = false
	configMigrateDry = false
	versionPlain = false

	clearContexts(rootCmd)
}

// clearContexts drops contexts left on subcommands by earlier runs. Cobra
// only hands the root context down to subcommands that have none.
func clearContexts(cmd *cobra.Command) {
	for _, c := range cmd.Commands() {
		c.SetContext(nil)
		clearContexts(c)
	}
}

// executeCommand runs rootCmd with args and returns stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// newProject creates a project directory with a changelog and an isolated
// user config location. remote is the origin URL; empty means no git repo.
func newProject(t *testing.T, changelogText, remote string) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := t.TempDir()
	if changelogText != "" {
		writeTestFile(t, dir, "CHANGELOG.md", changelogText)
	}
	if remote != "" {
		repo, err := git.PlainInit(dir, false)
		require.NoError(t, err)
		_, err = repo.CreateRemote(&gitconfig.RemoteConfig{Name: "origin", URLs: []string{remote}})
		require.NoError(t, err)
	}
	return dir
}

func writeTestFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readTestFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}
