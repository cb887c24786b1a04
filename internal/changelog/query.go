package changelog

import "strings"

// GetVersion retrieves a section by label.
// Accepts both "v0.6.0" and "0.6.0" formats, and "unreleased" in any case.
// Returns VersionNotFoundError if the version doesn't exist.
func (c *Changelog) GetVersion(version string) (*Section, error) {
	normalized := NormalizeVersion(version)

	for i := range c.Sections {
		if matchesLabel(c.Sections[i].Label, normalized) {
			return &c.Sections[i], nil
		}
	}

	return nil, &VersionNotFoundError{
		Version:           version,
		AvailableVersions: c.ListVersions(),
	}
}

// matchesLabel compares versions exactly and "Unreleased" case-insensitively.
func matchesLabel(label, query string) bool {
	if strings.EqualFold(label, UnreleasedLabel) {
		return strings.EqualFold(query, UnreleasedLabel)
	}
	return label == query
}

// GetUnreleased retrieves the Unreleased section.
// Returns nil if the changelog has none.
func (c *Changelog) GetUnreleased() *Section {
	for i := range c.Sections {
		if c.Sections[i].IsUnreleased() {
			return &c.Sections[i]
		}
	}
	return nil
}

// HasUnreleased returns true if the changelog has an Unreleased section.
func (c *Changelog) HasUnreleased() bool {
	return c.GetUnreleased() != nil
}

// ListVersions returns every section label in document order.
func (c *Changelog) ListVersions() []string {
	versions := make([]string, len(c.Sections))
	for i, s := range c.Sections {
		versions[i] = s.Label
	}
	return versions
}

// GetLatestRelease returns the first released section.
// Returns nil if there are no released versions.
func (c *Changelog) GetLatestRelease() *Section {
	for i := range c.Sections {
		if !c.Sections[i].IsUnreleased() {
			return &c.Sections[i]
		}
	}
	return nil
}

// AllEntries returns all entries from all sections, in document order.
func (c *Changelog) AllEntries() []Entry {
	var entries []Entry
	for _, s := range c.Sections {
		entries = append(entries, s.Entries()...)
	}
	return entries
}

// GetLastN retrieves the N most recent entries across all sections.
// If N is greater than the total number of entries, all entries are returned.
func (c *Changelog) GetLastN(n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}

	entries := c.AllEntries()
	if len(entries) <= n {
		return entries
	}
	return entries[:n]
}

// GetEntryCount returns the total number of entries across all sections.
func (c *Changelog) GetEntryCount() int {
	count := 0
	for _, s := range c.Sections {
		count += s.Count()
	}
	return count
}

// ReleaseNotes returns the category subsections of a section as written,
// without the TAG and metric lines, for use as a forge release body.
// Trailing blank lines are removed; the result is "" for a section with no
// categories.
func ReleaseNotes(s *Section) string {
	first := -1
	for i, line := range s.Body {
		if isCategoryHeading(line) {
			first = i
			break
		}
	}
	if first < 0 {
		return ""
	}
	return JoinLines(trimTrailingBlank(s.Body[first:]))
}
