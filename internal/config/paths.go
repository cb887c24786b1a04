package config

import (
	"os"
	"path/filepath"
)

const (
	projectConfigName       = ".kettle-changelog.yml"
	legacyProjectConfigName = ".kettle-changelog.json"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/kettle-changelog/config.yml
// - macOS: ~/Library/Application Support/kettle-changelog/config.yml
// - Windows: %APPDATA%\kettle-changelog\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "kettle-changelog", "config.yml"), nil
}

// ProjectConfigPath returns the project config file in dir ("" means the
// current directory).
func ProjectConfigPath(dir string) string {
	return filepath.Join(dir, projectConfigName)
}

// LegacyProjectConfigPath returns the legacy JSON project config file in dir.
func LegacyProjectConfigPath(dir string) string {
	return filepath.Join(dir, legacyProjectConfigName)
}
