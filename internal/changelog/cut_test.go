package changelog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleChangelog = `# Changelog

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

const sampleCut = `# Changelog

All notable changes to this project will be documented in this file.

## [Unreleased]
### Added
### Changed
### Deprecated
### Removed
### Fixed
### Security

## [1.1.0] - 2025-02-01
- TAG: [v1.1.0][1.1.0t]
- COVERAGE: 90.00% -- 9/10 lines in 1 files
### Added
- New widget API

### Fixed
- Crash on empty input

## [1.0.0] - 2025-01-01
- TAG: [v1.0.0][1.0.0t]
### Added
- Initial release

[Unreleased]: https://github.com/acme/widget/compare/v1.1.0...HEAD
[1.1.0]: https://github.com/acme/widget/compare/v1.0.0...v1.1.0
[1.1.0t]: https://github.com/acme/widget/releases/tag/v1.1.0
[1.0.0]: https://github.com/acme/widget/compare/a1b2c3d...v1.0.0
[1.0.0t]: https://github.com/acme/widget/releases/tag/v1.0.0
`

func sampleInput(version string) CutInput {
	return CutInput{
		Release: Release{
			Version: version,
			Date:    "2025-02-01",
			Metrics: []string{"COVERAGE: 90.00% -- 9/10 lines in 1 files"},
		},
		Identity: acmeWidget(),
	}
}

func TestCut(t *testing.T) {
	t.Parallel()

	result, err := Cut(sampleChangelog, sampleInput("v1.1.0"))
	require.NoError(t, err)

	assert.Equal(t, sampleCut, result.Text)
	assert.Equal(t, "1.1.0", result.Version)
	assert.Equal(t, "1.0.0", result.PreviousVersion)
	assert.Empty(t, result.Warnings)
}

func TestCut_ResetsUnreleasedTemplate(t *testing.T) {
	t.Parallel()

	result, err := Cut(sampleChangelog, sampleInput("1.1.0"))
	require.NoError(t, err)

	unreleased := Parse(result.Text).GetUnreleased()
	require.NotNil(t, unreleased)
	assert.True(t, unreleased.IsEmpty())

	var names []string
	for _, c := range unreleased.Categories {
		names = append(names, c.Name)
	}
	assert.Equal(t, ValidCategories(), names)
}

func TestCut_Twice(t *testing.T) {
	t.Parallel()

	first, err := Cut(sampleChangelog, sampleInput("1.1.0"))
	require.NoError(t, err)

	in := sampleInput("1.2.0")
	in.Release.Metrics = nil
	second, err := Cut(first.Text, in)
	require.NoError(t, err)

	assert.Equal(t, "1.1.0", second.PreviousVersion)
	require.Len(t, second.Warnings, 1)
	assert.Equal(t, WarnEmptyUnreleased, second.Warnings[0].Code)

	var keys []string
	for _, link := range Parse(second.Text).Links {
		keys = append(keys, link.Key)
	}
	assert.Equal(t, []string{"Unreleased", "1.2.0", "1.2.0t", "1.1.0", "1.1.0t", "1.0.0", "1.0.0t"}, keys)
	assert.Contains(t, second.Text, "[1.2.0]: https://github.com/acme/widget/compare/v1.1.0...v1.2.0\n")

	_, err = Cut(second.Text, in)
	assert.True(t, IsDuplicateVersion(err))
}

func TestCut_Warnings(t *testing.T) {
	t.Parallel()

	text := "# Changelog\n\n## [Unreleased]\n### Added\n### Fixed\n\n## [0.1.0] - 2024-01-01\n"

	result, err := Cut(text, CutInput{Release: Release{Version: "0.2.0", Date: "2024-02-01"}})
	require.NoError(t, err)

	assert.Equal(t, "# Changelog\n\n"+
		"## [Unreleased]\n### Added\n### Changed\n### Deprecated\n### Removed\n### Fixed\n### Security\n\n"+
		"## [0.2.0] - 2024-02-01\n- TAG: [v0.2.0][0.2.0t]\n\n"+
		"## [0.1.0] - 2024-01-01\n", result.Text)
	assert.Equal(t, "0.1.0", result.PreviousVersion)

	var codes []WarningCode
	for _, w := range result.Warnings {
		codes = append(codes, w.Code)
		assert.NotEmpty(t, w.String())
	}
	assert.Equal(t, []WarningCode{WarnEmptyUnreleased, WarnNoIdentity, WarnNoFooter}, codes)
}

func TestCut_FirstRelease(t *testing.T) {
	t.Parallel()

	text := "# Changelog\n\n## [Unreleased]\n### Added\n- Everything\n"

	result, err := Cut(text, CutInput{
		Release:  Release{Version: "0.1.0", Date: "2024-01-01"},
		Identity: acmeWidget(),
	})
	require.NoError(t, err)

	assert.Empty(t, result.PreviousVersion)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarnNoFooter, result.Warnings[0].Code)
	assert.True(t, strings.HasSuffix(result.Text, "## [0.1.0] - 2024-01-01\n- TAG: [v0.1.0][0.1.0t]\n### Added\n- Everything\n\n"+
		"[Unreleased]: https://github.com/acme/widget/compare/v0.1.0...HEAD\n"+
		"[0.1.0]: https://github.com/acme/widget/compare/HEAD^...v0.1.0\n"+
		"[0.1.0t]: https://github.com/acme/widget/releases/tag/v0.1.0\n"))
}

func TestCut_FirstReleaseWithFooter(t *testing.T) {
	t.Parallel()

	text := "# Changelog\n\n## [Unreleased]\n### Added\n- Everything\n### Changed\n### Security\n\n" +
		"[Unreleased]: https://github.com/acme/widget/compare/HEAD^...HEAD\n"

	result, err := Cut(text, CutInput{
		Release:  Release{Version: "0.1.0", Date: "2024-01-01"},
		Identity: acmeWidget(),
	})
	require.NoError(t, err)

	assert.Empty(t, result.PreviousVersion)
	assert.Empty(t, result.Warnings)
	assert.True(t, strings.HasSuffix(result.Text, "## [0.1.0] - 2024-01-01\n- TAG: [v0.1.0][0.1.0t]\n### Added\n- Everything\n\n"+
		"[Unreleased]: https://github.com/acme/widget/compare/v0.1.0...HEAD\n"+
		"[0.1.0]: https://github.com/acme/widget/compare/HEAD^...v0.1.0\n"+
		"[0.1.0t]: https://github.com/acme/widget/releases/tag/v0.1.0\n"), result.Text)
}

func TestCut_TrailingNewline(t *testing.T) {
	t.Parallel()

	result, err := Cut(strings.TrimRight(sampleChangelog, "\n")+"\n\n\n \t\n", sampleInput("1.1.0"))
	require.NoError(t, err)
	assert.Equal(t, sampleCut, result.Text)
}

func TestCut_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text      string
		release   Release
		wantField string
		check     func(t *testing.T, err error)
	}{
		"duplicate version": {
			text:    sampleChangelog,
			release: Release{Version: "1.0.0", Date: "2025-02-01"},
			check: func(t *testing.T, err error) {
				var dup *DuplicateVersionError
				require.True(t, errors.As(err, &dup))
				assert.Equal(t, "1.0.0", dup.Version)
			},
		},
		"duplicate version with v prefix": {
			text:    sampleChangelog,
			release: Release{Version: "v1.0.0", Date: "2025-02-01"},
			check: func(t *testing.T, err error) {
				assert.True(t, IsDuplicateVersion(err))
			},
		},
		"missing unreleased": {
			text:    "# Changelog\n\n## [1.0.0] - 2025-01-01\n",
			release: Release{Version: "1.1.0", Date: "2025-02-01"},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUnreleasedNotFound)
			},
		},
		"empty version": {
			text:      sampleChangelog,
			release:   Release{Date: "2025-02-01"},
			wantField: "version",
		},
		"partial version": {
			text:      sampleChangelog,
			release:   Release{Version: "1.1", Date: "2025-02-01"},
			wantField: "version",
		},
		"malformed date": {
			text:      sampleChangelog,
			release:   Release{Version: "1.1.0", Date: "2025/02/01"},
			wantField: "date",
		},
		"empty date": {
			text:      sampleChangelog,
			release:   Release{Version: "1.1.0"},
			wantField: "date",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			result, err := Cut(tt.text, CutInput{Release: tt.release, Identity: acmeWidget()})
			require.Error(t, err)
			assert.Nil(t, result)

			if tt.wantField != "" {
				var ve *ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, tt.wantField, ve.Field)
				assert.True(t, IsValidationError(err))
				return
			}
			tt.check(t, err)
		})
	}
}

func TestCutFile(t *testing.T) {
	t.Parallel()

	t.Run("writes result and keeps mode", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "CHANGELOG.md")
		require.NoError(t, os.WriteFile(path, []byte(sampleChangelog), 0o640))

		result, err := CutFile(path, sampleInput("1.1.0"))
		require.NoError(t, err)
		assert.Equal(t, sampleCut, result.Text)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, sampleCut, string(data))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
	})

	t.Run("leaves file untouched on error", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "CHANGELOG.md")
		require.NoError(t, os.WriteFile(path, []byte(sampleChangelog), 0o644))

		_, err := CutFile(path, sampleInput("1.0.0"))
		require.Error(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, sampleChangelog, string(data))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := CutFile(filepath.Join(t.TempDir(), "CHANGELOG.md"), sampleInput("1.1.0"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
