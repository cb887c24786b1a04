package changelog

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// rubygemsPrerelease matches RubyGems style prereleases such as "1.0.0.pre1",
// which are not valid semver but are common in gem changelogs.
var rubygemsPrerelease = regexp.MustCompile(`^(\d+\.\d+\.\d+)\.([0-9A-Za-z][0-9A-Za-z.]*)$`)

// strictCore requires all three numeric components, so labels such as "1" or
// "2.1" are not treated as release versions.
var strictCore = regexp.MustCompile(`^v?\d+\.\d+\.\d+`)

// NormalizeVersion removes a leading "v" or "V" and surrounding whitespace.
// This allows accepting both "v0.6.0" and "0.6.0" as input.
func NormalizeVersion(version string) string {
	v := strings.TrimSpace(version)
	if len(v) > 1 && (v[0] == 'v' || v[0] == 'V') && v[1] >= '0' && v[1] <= '9' {
		return v[1:]
	}
	return v
}

// parseVersion parses a release label as a semantic version.
func parseVersion(s string) (*semver.Version, bool) {
	if !strictCore.MatchString(s) {
		return nil, false
	}
	if v, err := semver.NewVersion(s); err == nil {
		return v, true
	}
	if m := rubygemsPrerelease.FindStringSubmatch(s); m != nil {
		if v, err := semver.NewVersion(m[1] + "-" + m[2]); err == nil {
			return v, true
		}
	}
	return nil, false
}

// IsVersion reports whether s is a semantic version with major, minor and
// patch components.
func IsVersion(s string) bool {
	_, ok := parseVersion(s)
	return ok
}

// CompareVersions compares two version labels by semantic-version precedence.
// Labels that do not parse sort below every version and compare as strings
// among themselves.
func CompareVersions(a, b string) int {
	va, okA := parseVersion(a)
	vb, okB := parseVersion(b)
	switch {
	case okA && okB:
		if c := va.Compare(vb); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	case okA:
		return 1
	case okB:
		return -1
	default:
		return strings.Compare(a, b)
	}
}

// sortVersionsDesc sorts version labels newest first.
func sortVersionsDesc(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		return CompareVersions(versions[i], versions[j]) > 0
	})
}
