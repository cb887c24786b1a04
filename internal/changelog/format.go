package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/kettle-rb/kettle-changelog/internal/output"
)

// CategoryStyle is the color and icon a category is drawn with.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

var (
	categoryStyles = map[string]CategoryStyle{
		"added":      {Color: color.New(color.FgGreen), Icon: "✓"},
		"changed":    {Color: color.New(color.FgBlue), Icon: "~"},
		"deprecated": {Color: color.New(color.FgRed), Icon: "⚠"},
		"removed":    {Color: color.New(color.FgRed), Icon: "✗"},
		"fixed":      {Color: color.New(color.FgYellow), Icon: "⚡"},
		"security":   {Color: color.New(color.FgMagenta), Icon: "🔒"},
	}
	otherStyle = CategoryStyle{Color: color.New(color.FgWhite), Icon: "•"}
	boldText   = color.New(color.Bold).SprintFunc()
)

func styleFor(category string) CategoryStyle {
	if style, ok := categoryStyles[strings.ToLower(category)]; ok {
		return style
	}
	return otherStyle
}

// FormatOptions controls terminal rendering.
type FormatOptions struct {
	// Plain drops colors, icons and wrapping and prints Markdown-like headings.
	Plain bool
	// MaxWidth wraps entries at this column; 0 uses the terminal width.
	MaxWidth int
}

const entryPrefix = "  - "

// formatter writes sections to w and remembers the first write error so
// callers can check once at the end.
type formatter struct {
	w     io.Writer
	plain bool
	width int
	err   error
}

func newFormatter(w io.Writer, opts FormatOptions) *formatter {
	width := opts.MaxWidth
	if width <= 0 {
		width = output.TerminalWidth()
	}
	return &formatter{w: w, plain: opts.Plain, width: width}
}

func (f *formatter) printf(format string, args ...any) {
	if f.err == nil {
		_, f.err = fmt.Fprintf(f.w, format, args...)
	}
}

func (f *formatter) header(label, date string) {
	title := "v" + label
	if strings.EqualFold(label, UnreleasedLabel) {
		title = UnreleasedLabel
	} else if date != "" {
		title += " (" + date + ")"
	}
	if !f.plain {
		title = boldText(title)
	}
	f.printf("## %s\n", title)
}

func (f *formatter) category(name string, entries []string) {
	style := styleFor(name)
	paint := style.Color.SprintFunc()

	if f.plain {
		f.printf("\n### %s\n", name)
	} else {
		f.printf("\n%s %s\n", paint(style.Icon), paint(name))
	}

	for _, text := range entries {
		if f.plain {
			f.printf("%s%s\n", entryPrefix, text)
			continue
		}
		f.printf("%s%s\n", entryPrefix, paint(wrapText(text, f.width-len(entryPrefix), "    ")))
	}
}

// FormatTerminal writes entries grouped by version, in the order given,
// with one block per category.
func FormatTerminal(entries []Entry, w io.Writer, opts FormatOptions) error {
	f := newFormatter(w, opts)
	for i, group := range groupEntriesByVersion(entries) {
		if i > 0 {
			f.printf("\n")
		}
		f.header(group.version, "")
		for _, cat := range groupByCategory(group.entries) {
			f.category(cat.Name, cat.Entries)
		}
		if f.err != nil {
			return fmt.Errorf("formatting version %s: %w", group.version, f.err)
		}
	}
	return nil
}

// FormatVersion writes one section, skipping empty categories.
func FormatVersion(s *Section, w io.Writer, opts FormatOptions) error {
	f := newFormatter(w, opts)
	f.header(s.Label, s.Date)
	if s.IsEmpty() {
		f.printf("  (no entries)\n")
		return f.err
	}
	for _, cat := range s.Categories {
		if len(cat.Entries) > 0 {
			f.category(cat.Name, cat.Entries)
		}
	}
	return f.err
}

type versionGroup struct {
	version string
	entries []Entry
}

// groupEntriesByVersion groups runs of entries that share a version.
func groupEntriesByVersion(entries []Entry) []versionGroup {
	var groups []versionGroup
	for _, e := range entries {
		if n := len(groups); n > 0 && groups[n-1].version == e.Version {
			groups[n-1].entries = append(groups[n-1].entries, e)
			continue
		}
		groups = append(groups, versionGroup{version: e.Version, entries: []Entry{e}})
	}
	return groups
}

// groupByCategory regroups entries into categories in first-seen order.
func groupByCategory(entries []Entry) []Category {
	var cats []Category
	index := make(map[string]int)
	for _, e := range entries {
		i, ok := index[e.Category]
		if !ok {
			i = len(cats)
			index[e.Category] = i
			cats = append(cats, Category{Name: e.Category})
		}
		cats[i].Entries = append(cats[i].Entries, e.Text)
	}
	return cats
}

// wrapText breaks text at the last space before maxWidth, or hard at
// maxWidth when a word is longer, and indents continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 {
		return text
	}
	var lines []string
	for len(text) > maxWidth {
		cut := strings.LastIndexByte(text[:maxWidth], ' ')
		if cut <= 0 {
			cut = maxWidth
		}
		lines = append(lines, text[:cut])
		text = strings.TrimLeft(text[cut:], " ")
	}
	if text != "" {
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n"+indent)
}

// FormatEntrySummary renders entry on one line, truncated to 60 bytes.
func FormatEntrySummary(entry Entry, opts FormatOptions) string {
	text := entry.Text
	if len(text) > 60 {
		text = text[:57] + "..."
	}
	if opts.Plain {
		return fmt.Sprintf("[%s] %s", strings.ToLower(entry.Category), text)
	}
	style := styleFor(entry.Category)
	return style.Color.Sprint(style.Icon) + " " + text
}
