package changelog

import (
	"regexp"
	"slices"
	"strings"
)

const (
	unreleasedHeadingPrefix = "## [Unreleased]"
	sectionHeadingPrefix    = "## ["
)

// sectionHeadingPattern captures the label and optional date of a
// "## [<label>] - <date>" heading.
var sectionHeadingPattern = regexp.MustCompile(`^## \[([^\]]+)\](?:\s+-\s+(\S+))?`)

// LocateUnreleased splits lines around the Unreleased section.
//
// before holds every line above the "## [Unreleased]" heading, body the lines
// between that heading and the next "## [" heading or "[Unreleased]:" footer
// line, and after the rest of the document from that line on. The heading itself is in none of them. ok is false,
// and all slices nil, when the document has no Unreleased heading.
func LocateUnreleased(lines []string) (before, body, after []string, ok bool) {
	start := -1
	for i, line := range lines {
		if strings.HasPrefix(line, unreleasedHeadingPrefix) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, nil, nil, false
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], sectionHeadingPrefix) || strings.HasPrefix(lines[i], footerBoundaryPrefix) {
			end = i
			break
		}
	}

	before = slices.Clone(lines[:start])
	body = slices.Clone(lines[start+1 : end])
	after = slices.Clone(lines[end:])
	return before, body, after, true
}

// PreviousVersion returns the version of the release heading that starts
// after, or "" when after does not begin with a "## [<semver>]" heading.
// The result is the lower bound of the compare link for the version being
// cut.
func PreviousVersion(after []string) string {
	if len(after) == 0 {
		return ""
	}
	m := sectionHeadingPattern.FindStringSubmatch(after[0])
	if m == nil || !IsVersion(m[1]) {
		return ""
	}
	return m[1]
}

// HasVersionSection reports whether any line is a "## [<version>]" heading.
func HasVersionSection(lines []string, version string) bool {
	prefix := "## [" + version + "]"
	for _, line := range lines {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
