// Package config provides hierarchical configuration for kettle-changelog using koanf.
// Configuration is loaded with priority: environment variables (KETTLE_CHANGELOG_*)
// > project config (.kettle-changelog.yml) > user config (~/.config/kettle-changelog/config.yml)
// > defaults. A legacy project .kettle-changelog.json is still read, with a warning.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kettle-rb/kettle-changelog/internal/forge"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "KETTLE_CHANGELOG_"

// Configuration represents the kettle-changelog configuration.
type Configuration struct {
	// ChangelogPath is the changelog file, relative to the working directory.
	ChangelogPath string `koanf:"changelog_path" yaml:"changelog_path" validate:"required"`

	// Remote is the git remote consulted first for the GitHub owner/repo.
	Remote string `koanf:"remote" yaml:"remote"`
	// Owner and Repo pin the GitHub identity and skip remote detection.
	// They must be set together.
	Owner string `koanf:"owner" yaml:"owner" validate:"required_with=Repo"`
	Repo  string `koanf:"repo" yaml:"repo" validate:"required_with=Owner"`

	// VersionGlob locates the file declaring the VERSION constant.
	VersionGlob string `koanf:"version_glob" yaml:"version_glob" validate:"required,glob"`

	CoverageFile  string `koanf:"coverage_file" yaml:"coverage_file"`
	DocsStatsFile string `koanf:"docs_stats_file" yaml:"docs_stats_file"`
	// Metrics enables the coverage and documentation lines of a release section.
	Metrics bool `koanf:"metrics" yaml:"metrics"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .kettle-changelog.yml)
	ProjectConfigPath string
	// ProjectDir is where project config files are looked up (default: current directory)
	ProjectDir string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts, warningWriter); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads ~/.config/kettle-changelog/config.yml when present.
func loadUserConfig(k *koanf.Koanf) error {
	userPath, err := UserConfigPath()
	if err != nil || !fileExists(userPath) {
		return nil
	}
	if err := loadYAMLConfig(k, userPath, "user"); err != nil {
		return fmt.Errorf("loading user YAML config: %w", err)
	}
	return nil
}

// loadProjectConfig loads the project YAML config, falling back to the legacy
// JSON file with a deprecation warning.
func loadProjectConfig(k *koanf.Koanf, opts LoadOptions, warningWriter io.Writer) error {
	yamlPath := ProjectConfigPath(opts.ProjectDir)
	if opts.ProjectConfigPath != "" {
		yamlPath = opts.ProjectConfigPath
	}
	legacyPath := LegacyProjectConfigPath(opts.ProjectDir)

	yamlExists := fileExists(yamlPath)
	legacyExists := fileExists(legacyPath)

	switch {
	case yamlExists:
		if err := loadYAMLConfig(k, yamlPath, "project"); err != nil {
			return fmt.Errorf("loading project YAML config: %w", err)
		}
		if legacyExists && !opts.SkipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n", legacyPath, yamlPath)
			fmt.Fprintf(warningWriter, "  Run 'kettle-changelog config migrate' to remove the legacy file.\n\n")
		}
	case legacyExists:
		if err := k.Load(file.Provider(legacyPath), json.Parser()); err != nil {
			return fmt.Errorf("failed to load legacy project config %s: %w", legacyPath, err)
		}
		if !opts.SkipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", legacyPath)
			fmt.Fprintf(warningWriter, "  Run 'kettle-changelog config migrate' to migrate to YAML format.\n\n")
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged configuration.
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.ChangelogPath = expandHomePath(cfg.ChangelogPath)
	cfg.CoverageFile = expandHomePath(cfg.CoverageFile)
	cfg.DocsStatsFile = expandHomePath(cfg.DocsStatsFile)
	return &cfg, nil
}

// IdentityOverride returns the GitHub identity pinned by owner and repo, or
// nil when they are not configured.
func (c *Configuration) IdentityOverride() *forge.Identity {
	if c.Owner == "" || c.Repo == "" {
		return nil
	}
	return &forge.Identity{
		Provider: forge.ProviderGitHub,
		Host:     forge.GitHubHost,
		Owner:    c.Owner,
		Repo:     c.Repo,
	}
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: KETTLE_CHANGELOG_VERSION_GLOB -> version_glob
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
