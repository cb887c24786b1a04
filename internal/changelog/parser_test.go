package changelog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	c := Parse(sampleChangelog)

	require.Len(t, c.Sections, 2)
	assert.Equal(t, []string{"Unreleased", "1.0.0"}, c.ListVersions())

	unreleased := c.Sections[0]
	assert.True(t, unreleased.IsUnreleased())
	assert.Empty(t, unreleased.Date)
	assert.Equal(t, 4, unreleased.Start)
	assert.Equal(t, 14, unreleased.End)
	require.Len(t, unreleased.Categories, 6)
	assert.Equal(t, Category{Name: "Added", Entries: []string{"New widget API"}}, unreleased.Categories[0])
	assert.Equal(t, Category{Name: "Fixed", Entries: []string{"Crash on empty input"}}, unreleased.Categories[4])
	assert.Equal(t, 2, unreleased.Count())

	release := c.Sections[1]
	assert.Equal(t, "1.0.0", release.Label)
	assert.Equal(t, "2025-01-01", release.Date)
	assert.Equal(t, 14, release.Start)
	assert.Equal(t, 19, release.End, "section ends before the footer")
	assert.Equal(t, []string{"- TAG: [v1.0.0][1.0.0t]"}, release.Preamble)
	assert.Equal(t, []Category{{Name: "Added", Entries: []string{"Initial release"}}}, release.Categories)

	require.Len(t, c.Links, 3)
	assert.Equal(t, LinkRef{
		Key:  "Unreleased",
		URL:  "https://github.com/acme/widget/compare/v1.0.0...HEAD",
		Line: 20,
	}, c.Links[0])
	assert.Equal(t, "1.0.0t", c.Links[2].Key)
}

func TestParse_Entries(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text string
		want []Category
	}{
		"continuation lines join the previous entry": {
			text: "## [1.0.0]\n### Changed\n- Long entry\n  continued here\n- Short\n",
			want: []Category{{Name: "Changed", Entries: []string{"Long entry continued here", "Short"}}},
		},
		"asterisk bullets": {
			text: "## [1.0.0]\n### Fixed\n* one\n* two\n",
			want: []Category{{Name: "Fixed", Entries: []string{"one", "two"}}},
		},
		"text without a bullet starts an entry": {
			text: "## [1.0.0]\n### Security\nplain text\n",
			want: []Category{{Name: "Security", Entries: []string{"plain text"}}},
		},
		"empty categories kept": {
			text: "## [Unreleased]\n### Added\n### Removed\n",
			want: []Category{{Name: "Added"}, {Name: "Removed"}},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			c := Parse(tt.text)
			require.Len(t, c.Sections, 1)
			assert.Equal(t, tt.want, c.Sections[0].Categories)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	c := Parse("")
	assert.Empty(t, c.Sections)
	assert.Empty(t, c.Links)
	assert.Nil(t, c.GetUnreleased())
	assert.Nil(t, c.GetLatestRelease())
	assert.False(t, c.HasUnreleased())
}

func TestChangelog_GetVersion(t *testing.T) {
	t.Parallel()

	c := Parse(sampleChangelog)

	tests := map[string]struct {
		query     string
		wantLabel string
		wantErr   bool
	}{
		"bare version":        {query: "1.0.0", wantLabel: "1.0.0"},
		"v prefix":            {query: "v1.0.0", wantLabel: "1.0.0"},
		"unreleased any case": {query: "unreleased", wantLabel: "Unreleased"},
		"missing":             {query: "9.9.9", wantErr: true},
		"partial":             {query: "1.0", wantErr: true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s, err := c.GetVersion(tt.query)
			if tt.wantErr {
				var nf *VersionNotFoundError
				require.True(t, errors.As(err, &nf))
				assert.Equal(t, tt.query, nf.Version)
				assert.Equal(t, []string{"Unreleased", "1.0.0"}, nf.AvailableVersions)
				assert.Contains(t, err.Error(), "available: Unreleased, 1.0.0")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, s.Label)
		})
	}
}

func TestChangelog_Queries(t *testing.T) {
	t.Parallel()

	c := Parse(sampleChangelog)

	assert.True(t, c.HasUnreleased())
	require.NotNil(t, c.GetLatestRelease())
	assert.Equal(t, "1.0.0", c.GetLatestRelease().Label)
	assert.Equal(t, 3, c.GetEntryCount())

	assert.Equal(t, []Entry{
		{Text: "New widget API", Category: "Added", Version: "Unreleased"},
		{Text: "Crash on empty input", Category: "Fixed", Version: "Unreleased"},
		{Text: "Initial release", Category: "Added", Version: "1.0.0"},
	}, c.AllEntries())

	assert.Len(t, c.GetLastN(2), 2)
	assert.Len(t, c.GetLastN(10), 3)
	assert.Empty(t, c.GetLastN(0))
	assert.Empty(t, c.GetLastN(-1))
}

func TestReleaseNotes(t *testing.T) {
	t.Parallel()

	c := Parse(sampleCut)

	s, err := c.GetVersion("1.1.0")
	require.NoError(t, err)
	assert.Equal(t, "### Added\n- New widget API\n\n### Fixed\n- Crash on empty input\n", ReleaseNotes(s))

	unreleased := c.GetUnreleased()
	require.NotNil(t, unreleased)
	assert.Equal(t, "### Added\n### Changed\n### Deprecated\n### Removed\n### Fixed\n### Security\n", ReleaseNotes(unreleased))

	assert.Empty(t, ReleaseNotes(&Section{Label: "0.1.0", Body: []string{"- TAG: [v0.1.0][0.1.0t]", ""}}))
}
