package changelog

import (
	"regexp"
	"slices"
	"strings"

	"github.com/kettle-rb/kettle-changelog/internal/forge"
)

const (
	footerBoundaryPrefix = "[Unreleased]:"
	// historicalBaseFallback is the compare base used for a first tracked
	// release when no earlier base can be found.
	historicalBaseFallback = "HEAD^"
	// historicalBaseKey is the reference whose compare base is reused when no
	// previous version heading exists.
	historicalBaseKey = "1.0.0"
)

var (
	// linkRefPattern matches a reference definition pointing at a web URL and
	// captures its key.
	linkRefPattern = regexp.MustCompile(`^\[([^\]]+)\]:\s+http`)

	// linkRefURLPattern captures key and URL of a reference definition.
	linkRefURLPattern = regexp.MustCompile(`^\[([^\]]+)\]:\s+(\S+)`)

	legacyComparePattern = regexp.MustCompile(`https://gitlab\.com/(\S+?)/([^/\s]+)/-/compare/(\S+?)\.\.\.([^\s)>\]]+)`)
	legacyTagPattern     = regexp.MustCompile(`https://gitlab\.com/(\S+?)/([^/\s]+)/-/tags/([^\s)>\]]+)`)

	compareBasePattern = regexp.MustCompile(`/compare/(\S+?)\.\.\.`)
)

// Reconcile rewrites the footer block of link reference definitions for a
// newly cut version.
//
// Legacy GitLab compare and tag URLs anywhere in the text become GitHub URLs.
// The footer block starts at the first line beginning with "[Unreleased]:",
// or at EOF when there is none. When id is known, every Unreleased compare
// link in the footer is replaced (or one appended) to start at the new version, and compare and tag
// links for the new version are appended unless their keys already exist.
// Finally every reference in the footer is deduplicated by key, later
// definitions winning, and the block is rebuilt: Unreleased first, then each
// version newest first with its compare link followed by its tag link. Keys
// that are not versions follow in first-seen order. Lines above the footer
// are never modified.
func Reconcile(text string, id *forge.Identity, prevVersion, newVersion string) string {
	text = MigrateLegacyLinks(text, id)
	lines := SplitLines(text)
	boundary := footerBoundary(lines)

	if id != nil && newVersion != "" {
		unreleased := unreleasedRef(id, newVersion)
		if boundary >= 0 {
			for i := boundary; i < len(lines); i++ {
				if strings.HasPrefix(lines[i], footerBoundaryPrefix) {
					lines[i] = unreleased
				}
			}
		} else {
			lines = appendFooterLine(lines, unreleased)
			boundary = len(lines) - 1
		}

		from := HistoricalBase(lines)
		if prevVersion != "" {
			from = "v" + prevVersion
		}
		if !hasRefKey(lines[boundary:], newVersion) {
			lines = append(lines, refLine(newVersion, id.GitHubCompareURL(from, "v"+newVersion)))
		}
		if tagKey := TagKey(newVersion); !hasRefKey(lines[boundary:], tagKey) {
			lines = append(lines, refLine(tagKey, id.GitHubTagURL("v"+newVersion)))
		}
	}

	if boundary < 0 {
		return Normalize(JoinLines(lines))
	}

	out := slices.Clone(lines[:boundary])
	out = append(out, canonicalFooter(lines[boundary:])...)
	return Normalize(JoinLines(out))
}

// MigrateLegacyLinks rewrites GitLab compare URLs
// (https://gitlab.com/<owner>/<repo>/-/compare/<from>...<to>) and tag URLs
// (.../-/tags/<tag>) into their GitHub equivalents. Owner and repo come from
// id when it is known, otherwise from the URL itself.
func MigrateLegacyLinks(text string, id *forge.Identity) string {
	text = legacyComparePattern.ReplaceAllStringFunc(text, func(match string) string {
		m := legacyComparePattern.FindStringSubmatch(match)
		target := legacyTarget(id, m[1], m[2])
		return target.GitHubCompareURL(m[3], m[4])
	})
	return legacyTagPattern.ReplaceAllStringFunc(text, func(match string) string {
		m := legacyTagPattern.FindStringSubmatch(match)
		target := legacyTarget(id, m[1], m[2])
		return target.GitHubTagURL(m[3])
	})
}

// HasLegacyLinks reports whether text still contains GitLab compare or tag URLs.
func HasLegacyLinks(text string) bool {
	return legacyComparePattern.MatchString(text) || legacyTagPattern.MatchString(text)
}

// HistoricalBase returns the compare base of an existing "[1.0.0]:" compare
// link, which may be a commit SHA for projects whose first release predates
// tagging. When there is none it returns "HEAD^".
func HistoricalBase(lines []string) string {
	for _, line := range lines {
		m := linkRefURLPattern.FindStringSubmatch(line)
		if m == nil || m[1] != historicalBaseKey {
			continue
		}
		if base := compareBasePattern.FindStringSubmatch(m[2]); base != nil {
			return base[1]
		}
	}
	return historicalBaseFallback
}

func legacyTarget(id *forge.Identity, owner, repo string) *forge.Identity {
	if id != nil {
		return id
	}
	return &forge.Identity{Provider: forge.ProviderGitHub, Host: forge.GitHubHost, Owner: owner, Repo: repo}
}

// footerBoundary returns the index of the first "[Unreleased]:" line, or -1.
func footerBoundary(lines []string) int {
	for i, line := range lines {
		if strings.HasPrefix(line, footerBoundaryPrefix) {
			return i
		}
	}
	return -1
}

func unreleasedRef(id *forge.Identity, newVersion string) string {
	return refLine(UnreleasedLabel, id.GitHubCompareURL("v"+newVersion, "HEAD"))
}

func refLine(key, url string) string {
	return "[" + key + "]: " + url
}

func refKey(line string) (string, bool) {
	m := linkRefPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func hasRefKey(lines []string, key string) bool {
	for _, line := range lines {
		if k, ok := refKey(line); ok && k == key {
			return true
		}
	}
	return false
}

// appendFooterLine appends line, separated from preceding content by a blank
// line.
func appendFooterLine(lines []string, line string) []string {
	lines = trimTrailingBlank(lines)
	if len(lines) > 0 {
		lines = append(lines, "")
	}
	return append(lines, line)
}

// canonicalFooter deduplicates and orders the reference definitions of the
// footer block. Lines that are not web link references are dropped.
func canonicalFooter(footer []string) []string {
	refs := make(map[string]string)
	var order []string
	for _, line := range footer {
		key, ok := refKey(line)
		if !ok {
			continue
		}
		if _, seen := refs[key]; !seen {
			order = append(order, key)
		}
		refs[key] = line
	}

	seenVersion := make(map[string]bool)
	var versions, others []string
	for _, key := range order {
		if key == UnreleasedLabel {
			continue
		}
		version, ok := versionOfKey(key)
		if !ok {
			others = append(others, key)
			continue
		}
		if !seenVersion[version] {
			seenVersion[version] = true
			versions = append(versions, version)
		}
	}
	sortVersionsDesc(versions)

	out := make([]string, 0, len(refs))
	if line, ok := refs[UnreleasedLabel]; ok {
		out = append(out, line)
	}
	for _, v := range versions {
		if line, ok := refs[v]; ok {
			out = append(out, line)
		}
		if line, ok := refs[TagKey(v)]; ok {
			out = append(out, line)
		}
	}
	for _, key := range others {
		out = append(out, refs[key])
	}
	return out
}

// versionOfKey maps a compare key ("1.0.0") or tag key ("1.0.0t") to its
// version. A trailing "t" is read as a tag suffix whenever the rest is a
// version.
func versionOfKey(key string) (string, bool) {
	if base, found := strings.CutSuffix(key, "t"); found && IsVersion(base) {
		return base, true
	}
	if IsVersion(key) {
		return key, true
	}
	return "", false
}
