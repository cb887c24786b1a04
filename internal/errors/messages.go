package errors

import "fmt"

// Common error messages for the kettle-changelog CLI.

// ChangelogNotFound creates an error for a missing changelog file.
func ChangelogNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("changelog not found: %s", path),
		"Run from the project root, or pass --changelog <path>",
		"Set changelog_path in .kettle-changelog.yml",
	)
}

// MissingUnreleasedSection creates an error for a changelog without an
// Unreleased section.
func MissingUnreleasedSection(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("%s has no '## [Unreleased]' section", path),
		"Add a '## [Unreleased]' heading above the latest release",
		"List the pending changes under '### Added', '### Fixed', etc.",
	)
}

// DuplicateVersion creates an error for a version that already has a section.
func DuplicateVersion(version, path string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("%s already has a section for version %s", path, version),
		"Bump VERSION before cutting a new release",
		fmt.Sprintf("Or remove the existing '## [%s]' section if it was added by mistake", version),
	)
}

// InvalidRelease creates an error for a malformed version or date.
func InvalidRelease(err error) *CLIError {
	return WrapWithMessage(err, Argument,
		"invalid release",
		"Versions look like 1.2.3 (a leading 'v' is accepted)",
		"Dates look like 2025-01-31",
	).WithUsage("kettle-changelog cut [--version X.Y.Z] [--date YYYY-MM-DD]")
}

// VersionNotDetected creates an error when no version was given and none
// could be read from the project.
func VersionNotDetected(err error) *CLIError {
	return WrapWithMessage(err, Prerequisite,
		"could not detect the release version",
		"Pass it explicitly: kettle-changelog cut --version X.Y.Z",
		"Or set version_glob to the file declaring VERSION",
	)
}

// ConfigLoadFailed creates an error for an unreadable or invalid configuration.
func ConfigLoadFailed(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"failed to load configuration",
		"Check .kettle-changelog.yml and ~/.config/kettle-changelog/config.yml",
		"See the known keys with: kettle-changelog config keys",
	)
}
