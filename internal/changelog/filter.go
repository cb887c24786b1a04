package changelog

import "strings"

// FilterUnreleased returns the category subsections of an Unreleased body
// that have content.
//
// Each "### <Name>" subsection runs until the next "###" or "##" heading. A
// subsection is kept only when at least one of its lines is non-blank; kept
// subsections lose their trailing blank lines and are separated from each
// other by a single blank line. Lines outside any subsection, such as text
// directly under the Unreleased heading, are dropped. The result is "" when
// nothing is kept, and otherwise ends with a single newline.
func FilterUnreleased(body []string) string {
	var blocks [][]string
	var current []string

	flush := func() {
		if current == nil {
			return
		}
		if block := trimTrailingBlank(current); hasContent(block[1:]) {
			blocks = append(blocks, block)
		}
		current = nil
	}

	for _, line := range body {
		switch {
		case isCategoryHeading(line):
			flush()
			current = []string{line}
		case isSectionHeading(line):
			flush()
		case current != nil:
			current = append(current, line)
		}
	}
	flush()

	var b strings.Builder
	for i, block := range blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, line := range block {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// isCategoryHeading matches "### <Name>" but not deeper headings.
func isCategoryHeading(line string) bool {
	return line == "###" || strings.HasPrefix(line, "### ")
}

// isSectionHeading matches any level-two heading.
func isSectionHeading(line string) bool {
	return line == "##" || strings.HasPrefix(line, "## ")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func hasContent(lines []string) bool {
	for _, line := range lines {
		if !isBlank(line) {
			return true
		}
	}
	return false
}

func trimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && isBlank(lines[end-1]) {
		end--
	}
	return lines[:end]
}
