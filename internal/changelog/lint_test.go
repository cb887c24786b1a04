package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLint(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text string
		want []Problem
	}{
		"clean changelog": {
			text: sampleChangelog,
			want: nil,
		},
		"clean after cut": {
			text: sampleCut,
			want: nil,
		},
		"ordering duplicates and legacy links": {
			text: "# Changelog\n" +
				"\n" +
				"## [1.0.0] - 2024-01-01\n" +
				"- TAG: [v1.0.0][1.0.0t]\n" +
				"\n" +
				"## [2.0.0] - 2024-02-01\n" +
				"- TAG: [v2.0.0][2.0.0t]\n" +
				"\n" +
				"[2.0.0]: https://gitlab.com/acme/widget/-/compare/v1.0.0...v2.0.0\n" +
				"[2.0.0t]: https://github.com/acme/widget/releases/tag/v2.0.0\n" +
				"[1.0.0]: https://github.com/acme/widget/compare/v0.9.0...v1.0.0\n" +
				"[1.0.0]: https://github.com/acme/widget/compare/v0.9.0...v1.0.0\n" +
				"[1.0.0t]: https://github.com/acme/widget/releases/tag/v1.0.0\n",
			want: []Problem{
				{Line: 0, Message: "missing '## [Unreleased]' section"},
				{Line: 6, Message: "section [2.0.0] should come before [1.0.0] (versions must descend)"},
				{Line: 9, Message: "legacy GitLab link (the next cut rewrites it to GitHub)"},
				{Line: 12, Message: "duplicate link reference [1.0.0] (first defined on line 11)"},
			},
		},
		"undefined references": {
			text: "## [Unreleased]\n" +
				"\n" +
				"## [Next]\n" +
				"\n" +
				"## [1.0.0] - 2024-01-01\n" +
				"- TAG: [v1.0.0][1.0.0t]\n",
			want: []Problem{
				{Line: 3, Message: "section [Next] is neither Unreleased nor a semantic version"},
				{Line: 5, Message: "no link reference defined for [1.0.0]"},
				{Line: 6, Message: "TAG line references undefined [1.0.0t]"},
			},
		},
		"duplicate section": {
			text: "## [Unreleased]\n" +
				"\n" +
				"## [1.0.0]\n" +
				"\n" +
				"## [1.0.0]\n" +
				"\n" +
				"[1.0.0]: https://github.com/acme/widget/compare/v0.9.0...v1.0.0\n",
			want: []Problem{
				{Line: 5, Message: "duplicate section [1.0.0] (first defined on line 3)"},
			},
		},
		"out of order footer": {
			text: "## [Unreleased]\n" +
				"\n" +
				"[Unreleased]: https://github.com/acme/widget/compare/v2.0.0...HEAD\n" +
				"[1.0.0]: https://github.com/acme/widget/compare/v0.9.0...v1.0.0\n" +
				"[2.0.0]: https://github.com/acme/widget/compare/v1.0.0...v2.0.0\n",
			want: []Problem{
				{Line: 5, Message: "link reference [2.0.0] is out of order (versions must descend)"},
			},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Lint(tt.text))
		})
	}
}

func TestProblem_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "line 4: bad", Problem{Line: 4, Message: "bad"}.String())
	assert.Equal(t, "bad", Problem{Message: "bad"}.String())
}
