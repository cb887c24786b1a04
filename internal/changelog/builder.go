package changelog

import (
	"fmt"
	"strings"
)

// Release describes the section to cut from the Unreleased changes.
type Release struct {
	// Version is the bare semantic version ("2.1.0").
	Version string
	// Date is the release date, YYYY-MM-DD.
	Date string
	// Metrics are optional free-text lines, e.g. coverage percentages. Empty
	// strings are skipped.
	Metrics []string
}

// Heading returns the "## [<version>] - <date>" line.
func (r Release) Heading() string {
	return fmt.Sprintf("## [%s] - %s", r.Version, r.Date)
}

// TagLine returns the "- TAG: [v<version>][<version>t]" line.
func (r Release) TagLine() string {
	return fmt.Sprintf("- TAG: [v%s][%s]", r.Version, TagKey(r.Version))
}

// TagKey returns the link reference key of a version's tag link.
func TagKey(version string) string {
	return version + "t"
}

// BuildRelease assembles the release section: heading, TAG line, one line per
// available metric, the filtered Unreleased content, and a single blank line
// separating it from the next section.
func BuildRelease(rel Release, filtered string) []string {
	lines := []string{rel.Heading(), rel.TagLine()}
	for _, m := range rel.Metrics {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if !strings.HasPrefix(m, "- ") {
			m = "- " + m
		}
		lines = append(lines, m)
	}
	lines = append(lines, SplitLines(filtered)...)
	return append(lines, "")
}

// UnreleasedTemplate returns an empty Unreleased section: the heading, every
// category heading with no content, and a trailing blank line.
func UnreleasedTemplate() []string {
	lines := []string{unreleasedHeadingPrefix}
	for _, c := range ValidCategories() {
		lines = append(lines, "### "+c)
	}
	return append(lines, "")
}
