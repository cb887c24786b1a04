package config

// GetDefaultConfigTemplate returns the commented project config written by
// 'kettle-changelog config init'.
func GetDefaultConfigTemplate() string {
	return `# kettle-changelog configuration
# Environment variables (KETTLE_CHANGELOG_<KEY>) override these values.

changelog_path: CHANGELOG.md          # Changelog to cut releases in
version_glob: lib/**/version.rb       # Files searched for VERSION = "x.y.z"

# GitHub identity for link references
remote: origin                        # Remote consulted first
# owner: ""                           # Pin owner and repo together to skip remote detection
# repo: ""

# Release section metrics
metrics: true                         # Add coverage and documentation lines
coverage_file: coverage/coverage.json # SimpleCov JSON report
docs_stats_file: ""                   # Saved 'yard stats' output
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog_path":  "CHANGELOG.md",
		"remote":          "origin",
		"owner":           "",
		"repo":            "",
		"version_glob":    "lib/**/version.rb",
		"coverage_file":   "coverage/coverage.json",
		"docs_stats_file": "",
		// metrics: unavailable reports become cut warnings
		"metrics": true,
	}
}
