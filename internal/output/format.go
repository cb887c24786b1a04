// Package output provides terminal output helpers shared by the changelog
// formatter and the CLI commands.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// DefaultWidth is used when stdout is not a terminal.
const DefaultWidth = 80

// TerminalWidth returns the width of the terminal attached to stdout,
// defaulting to DefaultWidth if unavailable.
func TerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return DefaultWidth
}

// PrintSuccess prints a green checkmark followed by message.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}

// PrintCutSummary reports a release cut: "Cut 1.1.0 (2025-02-01) in CHANGELOG.md",
// followed by the previous release when there is one.
func PrintCutSummary(out io.Writer, version, date, path, previous string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s (%s) in %s\n", green("Cut"), version, date, path)
	if previous != "" {
		fmt.Fprintf(out, "  previous release: %s\n", previous)
	}
}
