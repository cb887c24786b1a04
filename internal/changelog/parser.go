package changelog

import (
	"slices"
	"strings"
)

// Parse splits a CHANGELOG.md document into its sections and link references.
// Parsing never fails: lines that fit no structure are kept in Lines and in
// the body of the section they fall in.
func Parse(text string) *Changelog {
	lines := SplitLines(text)
	c := &Changelog{
		Lines: lines,
		Links: parseLinks(lines),
	}

	footer := footerStart(lines)
	var starts []int
	for i, line := range lines[:footer] {
		if sectionHeadingPattern.MatchString(line) {
			starts = append(starts, i)
		}
	}

	for n, start := range starts {
		end := footer
		if n+1 < len(starts) {
			end = starts[n+1]
		}
		m := sectionHeadingPattern.FindStringSubmatch(lines[start])
		s := Section{
			Label: m[1],
			Date:  m[2],
			Start: start,
			End:   end,
			Body:  slices.Clone(lines[start+1 : end]),
		}
		s.Preamble, s.Categories = parseBody(s.Body)
		c.Sections = append(c.Sections, s)
	}

	return c
}

// parseBody separates the lines before the first category heading from the
// categories and their bullet entries. Indented or unbulleted lines continue
// the previous entry.
func parseBody(body []string) (preamble []string, categories []Category) {
	current := -1
	for _, line := range body {
		if isCategoryHeading(line) {
			name := strings.TrimSpace(strings.TrimPrefix(line, "###"))
			categories = append(categories, Category{Name: name})
			current = len(categories) - 1
			continue
		}
		if isBlank(line) {
			continue
		}
		if current < 0 {
			preamble = append(preamble, line)
			continue
		}

		cat := &categories[current]
		if text, ok := bulletText(line); ok {
			cat.Entries = append(cat.Entries, text)
			continue
		}
		if n := len(cat.Entries); n > 0 {
			cat.Entries[n-1] += " " + strings.TrimSpace(line)
		} else {
			cat.Entries = append(cat.Entries, strings.TrimSpace(line))
		}
	}
	return preamble, categories
}

// bulletText returns the text of an unindented "- " or "* " list item.
func bulletText(line string) (string, bool) {
	for _, marker := range []string{"- ", "* "} {
		if rest, ok := strings.CutPrefix(line, marker); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

// footerStart returns the index of the first line of the trailing block of
// link reference definitions, or len(lines) when the document does not end
// with one. Blank lines inside the block are allowed.
func footerStart(lines []string) int {
	start := len(lines)
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		if isBlank(line) {
			continue
		}
		if !linkRefURLPattern.MatchString(line) {
			break
		}
		start = i
	}
	return start
}

func parseLinks(lines []string) []LinkRef {
	var links []LinkRef
	for i, line := range lines {
		m := linkRefURLPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		links = append(links, LinkRef{Key: m[1], URL: m[2], Line: i + 1})
	}
	return links
}
