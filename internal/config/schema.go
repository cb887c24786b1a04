package config

import (
	"sort"
	"strings"
)

// ConfigKeySchema describes a known configuration key for help output.
type ConfigKeySchema struct {
	Path        string
	Type        string
	Description string
}

// KnownKeys is the registry of all known configuration keys.
var KnownKeys = map[string]ConfigKeySchema{
	"changelog_path": {
		Path:        "changelog_path",
		Type:        "string",
		Description: "Changelog file to cut releases in",
	},
	"remote": {
		Path:        "remote",
		Type:        "string",
		Description: "Git remote consulted first for the GitHub owner/repo",
	},
	"owner": {
		Path:        "owner",
		Type:        "string",
		Description: "GitHub owner; set with repo to skip remote detection",
	},
	"repo": {
		Path:        "repo",
		Type:        "string",
		Description: "GitHub repository name; set with owner",
	},
	"version_glob": {
		Path:        "version_glob",
		Type:        "string",
		Description: "Glob of files declaring VERSION = \"x.y.z\"",
	},
	"coverage_file": {
		Path:        "coverage_file",
		Type:        "string",
		Description: "SimpleCov JSON report used for coverage lines",
	},
	"docs_stats_file": {
		Path:        "docs_stats_file",
		Type:        "string",
		Description: "Saved 'yard stats' output used for the documentation line",
	},
	"metrics": {
		Path:        "metrics",
		Type:        "bool",
		Description: "Add coverage and documentation lines to release sections",
	},
}

// SortedKeys returns the known keys in alphabetical order.
func SortedKeys() []ConfigKeySchema {
	keys := make([]ConfigKeySchema, 0, len(KnownKeys))
	for _, k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Path < keys[j].Path
	})
	return keys
}

// EnvName returns the environment variable overriding key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(key)
}
