package changelog

import "strings"

// Keep a Changelog category names.
// https://keepachangelog.com/en/1.1.0/
const (
	CategoryAdded      = "Added"
	CategoryChanged    = "Changed"
	CategoryDeprecated = "Deprecated"
	CategoryRemoved    = "Removed"
	CategoryFixed      = "Fixed"
	CategorySecurity   = "Security"
)

// UnreleasedLabel is the label of the section collecting pending changes.
const UnreleasedLabel = "Unreleased"

// ValidCategories returns the Keep a Changelog categories in their canonical
// rendering order. The Unreleased reset template is generated from this list.
func ValidCategories() []string {
	return []string{
		CategoryAdded,
		CategoryChanged,
		CategoryDeprecated,
		CategoryRemoved,
		CategoryFixed,
		CategorySecurity,
	}
}

// IsKnownCategory reports whether name is one of the six standard categories.
// The comparison is case-insensitive.
func IsKnownCategory(name string) bool {
	for _, c := range ValidCategories() {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// Changelog is a parsed CHANGELOG.md document.
// Sections appear in document order, which for a well-formed changelog is
// Unreleased first and then releases newest first.
type Changelog struct {
	Lines    []string
	Sections []Section
	Links    []LinkRef
}

// Section is a "## [<label>]" heading and the lines up to the next such
// heading, the footer link block, or EOF.
type Section struct {
	Label string
	Date  string
	// Start is the index of the heading line; End is exclusive.
	Start int
	End   int
	// Preamble holds body lines before the first category heading, such as
	// the "- TAG:" line and metric lines of a cut release.
	Preamble   []string
	Body       []string
	Categories []Category
}

// Category is one "### <Name>" subsection of a section.
type Category struct {
	Name    string
	Entries []string
}

// LinkRef is a Markdown link reference definition such as
// "[1.0.0]: https://github.com/acme/widget/compare/v0.9.0...v1.0.0".
type LinkRef struct {
	Key  string
	URL  string
	Line int // 1-indexed
}

// Entry is a flattened view of a single changelog bullet, used for querying
// and display where the version and category context is needed.
type Entry struct {
	Text     string
	Category string
	Version  string
}

// IsUnreleased returns true if this section collects unreleased changes.
func (s Section) IsUnreleased() bool {
	return strings.EqualFold(s.Label, UnreleasedLabel)
}

// Count returns the number of entries across all categories.
func (s Section) Count() int {
	n := 0
	for _, c := range s.Categories {
		n += len(c.Entries)
	}
	return n
}

// IsEmpty returns true if no category holds an entry.
func (s Section) IsEmpty() bool {
	return s.Count() == 0
}

// Entries returns every entry in the section, in category order as written.
func (s Section) Entries() []Entry {
	entries := make([]Entry, 0, s.Count())
	for _, c := range s.Categories {
		for _, text := range c.Entries {
			entries = append(entries, Entry{Text: text, Category: c.Name, Version: s.Label})
		}
	}
	return entries
}
