package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/natefinch/atomic"
)

const migratedHeader = "# kettle-changelog configuration\n# Migrated from .kettle-changelog.json\n\n"

// MigrationResult reports what a migration did, or would do.
type MigrationResult struct {
	SourcePath string
	TargetPath string
	Success    bool
	DryRun     bool
	Message    string
}

func (r *MigrationResult) report(format string, args ...any) *MigrationResult {
	r.Message = fmt.Sprintf(format, args...)
	return r
}

// MigrateJSONToYAML rewrites the JSON config at jsonPath as YAML at
// yamlPath and renames the JSON file to .bak. An existing YAML file is
// never overwritten.
func MigrateJSONToYAML(jsonPath, yamlPath string, dryRun bool) (*MigrationResult, error) {
	result := &MigrationResult{SourcePath: jsonPath, TargetPath: yamlPath, DryRun: dryRun}

	if _, err := os.Stat(jsonPath); errors.Is(err, fs.ErrNotExist) {
		return result.report("No JSON config found at %s", jsonPath), nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(jsonPath), json.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse JSON config: %w", err)
	}

	if _, err := os.Stat(yamlPath); err == nil {
		return result.report("YAML config already exists at %s (skipped)", yamlPath), nil
	}

	if dryRun {
		result.Success = true
		return result.report("Would migrate %s → %s", jsonPath, yamlPath), nil
	}

	body, err := k.Marshal(yaml.Parser())
	if err != nil {
		return nil, fmt.Errorf("failed to convert to YAML: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(yamlPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	doc := append([]byte(migratedHeader), body...)
	if err := atomic.WriteFile(yamlPath, bytes.NewReader(doc)); err != nil {
		return nil, fmt.Errorf("failed to write YAML config: %w", err)
	}

	backup := jsonPath + ".bak"
	if err := os.Rename(jsonPath, backup); err != nil {
		return nil, fmt.Errorf("failed to back up legacy config: %w", err)
	}

	result.Success = true
	return result.report("Migrated %s → %s (legacy file kept as %s)", jsonPath, yamlPath, backup), nil
}

// MigrateProjectConfig migrates dir's .kettle-changelog.json, if any.
func MigrateProjectConfig(dir string, dryRun bool) (*MigrationResult, error) {
	return MigrateJSONToYAML(LegacyProjectConfigPath(dir), ProjectConfigPath(dir), dryRun)
}
