package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocateUnreleased(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		lines      []string
		wantBefore []string
		wantBody   []string
		wantAfter  []string
		wantOK     bool
	}{
		"between header and release": {
			lines:      []string{"# Changelog", "", "## [Unreleased]", "### Added", "- x", "", "## [1.0.0] - 2024-01-01", "- y"},
			wantBefore: []string{"# Changelog", ""},
			wantBody:   []string{"### Added", "- x", ""},
			wantAfter:  []string{"## [1.0.0] - 2024-01-01", "- y"},
			wantOK:     true,
		},
		"runs to EOF without a release": {
			lines:      []string{"## [Unreleased]", "### Fixed", "- z"},
			wantBefore: []string{},
			wantBody:   []string{"### Fixed", "- z"},
			wantAfter:  []string{},
			wantOK:     true,
		},
		"footer ends the body": {
			lines:      []string{"## [Unreleased]", "### Added", "- x", "### Security", "", "[Unreleased]: https://github.com/acme/widget/compare/HEAD^...HEAD"},
			wantBefore: []string{},
			wantBody:   []string{"### Added", "- x", "### Security", ""},
			wantAfter:  []string{"[Unreleased]: https://github.com/acme/widget/compare/HEAD^...HEAD"},
			wantOK:     true,
		},
		"category headings do not end the body": {
			lines:      []string{"## [Unreleased]", "### Added", "#### Detail", "## [0.1.0]"},
			wantBefore: []string{},
			wantBody:   []string{"### Added", "#### Detail"},
			wantAfter:  []string{"## [0.1.0]"},
			wantOK:     true,
		},
		"heading with trailing text still matches": {
			lines:      []string{"## [Unreleased] - pending", "- a", "## [0.1.0]"},
			wantBefore: []string{},
			wantBody:   []string{"- a"},
			wantAfter:  []string{"## [0.1.0]"},
			wantOK:     true,
		},
		"no unreleased heading": {
			lines:  []string{"# Changelog", "## [1.0.0] - 2024-01-01"},
			wantOK: false,
		},
		"lowercase heading is not recognised": {
			lines:  []string{"## [unreleased]"},
			wantOK: false,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			before, body, after, ok := LocateUnreleased(tt.lines)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Nil(t, before)
				assert.Nil(t, body)
				assert.Nil(t, after)
				return
			}
			assert.Equal(t, tt.wantBefore, before)
			assert.Equal(t, tt.wantBody, body)
			assert.Equal(t, tt.wantAfter, after)
		})
	}
}

func TestLocateUnreleased_DoesNotAlias(t *testing.T) {
	t.Parallel()

	lines := []string{"## [Unreleased]", "- a", "## [1.0.0]"}
	_, body, _, ok := LocateUnreleased(lines)
	assert.True(t, ok)

	body[0] = "changed"
	assert.Equal(t, "- a", lines[1])
}

func TestPreviousVersion(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		after []string
		want  string
	}{
		"dated release":       {after: []string{"## [2.0.0] - 2024-01-01", "- x"}, want: "2.0.0"},
		"undated release":     {after: []string{"## [0.3.1]"}, want: "0.3.1"},
		"rubygems prerelease": {after: []string{"## [1.0.0.pre1] - 2024-01-01"}, want: "1.0.0.pre1"},
		"empty":               {after: nil, want: ""},
		"not a version":       {after: []string{"## [Next]"}, want: ""},
		"first line not a heading": {
			after: []string{"", "## [1.0.0]"},
			want:  "",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, PreviousVersion(tt.after))
		})
	}
}

func TestHasVersionSection(t *testing.T) {
	t.Parallel()

	lines := []string{"## [Unreleased]", "## [1.0.0] - 2024-01-01", "[1.1.0]: https://example.com"}

	assert.True(t, HasVersionSection(lines, "1.0.0"))
	assert.False(t, HasVersionSection(lines, "1.1.0"))
	assert.False(t, HasVersionSection(lines, "1.0"))
}
