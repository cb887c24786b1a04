package changelog

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// tagLinePattern captures the tag reference key of a "- TAG: [v1.0.0][1.0.0t]" line.
var tagLinePattern = regexp.MustCompile(`^- TAG: \[v[^\]]+\]\[([^\]]+)\]`)

// Problem is a single lint finding.
type Problem struct {
	// Line is 1-indexed; 0 means the problem concerns the whole document.
	Line    int
	Message string
}

func (p Problem) String() string {
	if p.Line == 0 {
		return p.Message
	}
	return fmt.Sprintf("line %d: %s", p.Line, p.Message)
}

// heading is a level-two heading found by the Markdown parser.
type heading struct {
	label string
	line  int
}

// Lint checks a CHANGELOG.md document and returns its problems ordered by
// line. A nil result means the document is clean.
//
// Headings and link reference definitions are taken from a real Markdown
// parse, so a reference that a renderer would not pick up (for example one
// swallowed by the preceding paragraph) is reported as undefined.
func Lint(src string) []Problem {
	source := []byte(src)
	pc := parser.NewContext()
	doc := goldmark.New().Parser().Parse(text.NewReader(source), parser.WithContext(pc))

	defined := make(map[string]bool)
	for _, ref := range pc.References() {
		defined[strings.ToLower(string(ref.Label()))] = true
	}

	headings := collectHeadings(doc, source)
	lines := SplitLines(src)

	var problems []Problem
	problems = append(problems, lintHeadings(headings, defined)...)
	problems = append(problems, lintTagLines(lines, defined)...)
	problems = append(problems, lintFooter(lines)...)

	sort.SliceStable(problems, func(i, j int) bool {
		return problems[i].Line < problems[j].Line
	})
	return problems
}

// collectHeadings returns the labels of "## [<label>]" headings.
func collectHeadings(doc ast.Node, source []byte) []heading {
	var headings []heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level != 2 || h.Lines().Len() == 0 {
			return ast.WalkSkipChildren, nil
		}

		seg := h.Lines().At(0)
		m := sectionHeadingPattern.FindStringSubmatch("## " + string(seg.Value(source)))
		if m != nil {
			headings = append(headings, heading{
				label: m[1],
				line:  bytes.Count(source[:seg.Start], []byte("\n")) + 1,
			})
		}
		return ast.WalkSkipChildren, nil
	})
	return headings
}

func lintHeadings(headings []heading, defined map[string]bool) []Problem {
	var problems []Problem
	seen := make(map[string]int)
	hasUnreleased := false
	var prev *heading

	for i := range headings {
		h := headings[i]
		if first, dup := seen[h.label]; dup {
			problems = append(problems, Problem{
				Line:    h.line,
				Message: fmt.Sprintf("duplicate section [%s] (first defined on line %d)", h.label, first),
			})
			continue
		}
		seen[h.label] = h.line

		if strings.EqualFold(h.label, UnreleasedLabel) {
			hasUnreleased = true
			continue
		}
		if !IsVersion(h.label) {
			problems = append(problems, Problem{
				Line:    h.line,
				Message: fmt.Sprintf("section [%s] is neither Unreleased nor a semantic version", h.label),
			})
			continue
		}

		if !defined[strings.ToLower(h.label)] {
			problems = append(problems, Problem{
				Line:    h.line,
				Message: fmt.Sprintf("no link reference defined for [%s]", h.label),
			})
		}
		if prev != nil && CompareVersions(prev.label, h.label) <= 0 {
			problems = append(problems, Problem{
				Line:    h.line,
				Message: fmt.Sprintf("section [%s] should come before [%s] (versions must descend)", h.label, prev.label),
			})
		}
		prev = &headings[i]
	}

	if !hasUnreleased {
		problems = append(problems, Problem{Message: "missing '## [Unreleased]' section"})
	}
	return problems
}

func lintTagLines(lines []string, defined map[string]bool) []Problem {
	var problems []Problem
	for i, line := range lines {
		m := tagLinePattern.FindStringSubmatch(line)
		if m == nil || defined[strings.ToLower(m[1])] {
			continue
		}
		problems = append(problems, Problem{
			Line:    i + 1,
			Message: fmt.Sprintf("TAG line references undefined [%s]", m[1]),
		})
	}
	return problems
}

// lintFooter checks reference keys for duplicates and version order, and
// reports legacy GitLab links.
func lintFooter(lines []string) []Problem {
	var problems []Problem
	seen := make(map[string]int)
	lastVersion := ""

	for i, line := range lines {
		if legacyComparePattern.MatchString(line) || legacyTagPattern.MatchString(line) {
			problems = append(problems, Problem{
				Line:    i + 1,
				Message: "legacy GitLab link (the next cut rewrites it to GitHub)",
			})
		}

		key, ok := refKey(line)
		if !ok {
			continue
		}
		if first, dup := seen[key]; dup {
			problems = append(problems, Problem{
				Line:    i + 1,
				Message: fmt.Sprintf("duplicate link reference [%s] (first defined on line %d)", key, first),
			})
			continue
		}
		seen[key] = i + 1

		version, ok := versionOfKey(key)
		if !ok {
			continue
		}
		if lastVersion != "" && CompareVersions(version, lastVersion) > 0 {
			problems = append(problems, Problem{
				Line:    i + 1,
				Message: fmt.Sprintf("link reference [%s] is out of order (versions must descend)", key),
			})
		}
		lastVersion = version
	}
	return problems
}
