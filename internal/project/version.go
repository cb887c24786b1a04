// Package project gathers the release inputs that live in the project tree
// rather than in the changelog: the gem version, the release date and the
// coverage and documentation metrics written into the release section.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultVersionGlob matches the conventional gem version file.
const DefaultVersionGlob = "lib/**/version.rb"

// versionPattern captures the value of a VERSION constant assignment.
var versionPattern = regexp.MustCompile(`(?m)^\s*VERSION\s*=\s*["']([^"']+)["']`)

// DetectVersion finds the version constant in the files under root matching
// pattern (DefaultVersionGlob when empty). It fails when no file declares a
// version or when the matching files disagree.
func DetectVersion(root, pattern string) (string, error) {
	if pattern == "" {
		pattern = DefaultVersionGlob
	}

	matches, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		return "", fmt.Errorf("matching version files %q: %w", pattern, err)
	}
	sort.Strings(matches)

	found := make(map[string][]string)
	var order []string
	for _, rel := range matches {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return "", fmt.Errorf("reading version file: %w", err)
		}
		m := versionPattern.FindSubmatch(data)
		if m == nil {
			continue
		}
		v := string(m[1])
		if _, ok := found[v]; !ok {
			order = append(order, v)
		}
		found[v] = append(found[v], rel)
	}

	switch len(order) {
	case 0:
		return "", fmt.Errorf("no VERSION constant found in files matching %q under %s", pattern, root)
	case 1:
		return order[0], nil
	}

	var parts []string
	for _, v := range order {
		parts = append(parts, fmt.Sprintf("%s (%s)", v, strings.Join(found[v], ", ")))
	}
	return "", fmt.Errorf("ambiguous version: files matching %q declare %s", pattern, strings.Join(parts, ", "))
}

// Today formats the current date as YYYY-MM-DD. A nil now uses time.Now.
func Today(now func() time.Time) string {
	if now == nil {
		now = time.Now
	}
	return now().Format(time.DateOnly)
}
