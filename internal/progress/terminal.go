// Package progress renders a spinner on interactive terminals while the CLI
// waits on slower steps such as repository inspection.
package progress

import (
	"io"
	"os"

	"golang.org/x/term"
)

// asciiEnv forces ASCII symbols when set to "1".
const asciiEnv = "KETTLE_CHANGELOG_ASCII"

// TerminalCapabilities describes what the output stream can render.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
}

// ProgressSymbols is the symbol set chosen for a terminal. SpinnerSet
// indexes spinner.CharSets.
type ProgressSymbols struct {
	Checkmark  string
	Failure    string
	SpinnerSet int
}

var (
	unicodeSymbols = ProgressSymbols{Checkmark: "✓", Failure: "✗", SpinnerSet: 14}
	asciiSymbols   = ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9}
)

// DetectTerminalCapabilities inspects w. Only an *os.File attached to a
// terminal counts as interactive. NO_COLOR turns color off and
// KETTLE_CHANGELOG_ASCII=1 turns Unicode off.
func DetectTerminalCapabilities(w io.Writer) TerminalCapabilities {
	var caps TerminalCapabilities
	if f, ok := w.(*os.File); ok {
		caps.IsTTY = term.IsTerminal(int(f.Fd()))
	}
	if caps.IsTTY {
		caps.SupportsColor = os.Getenv("NO_COLOR") == ""
		caps.SupportsUnicode = os.Getenv(asciiEnv) != "1"
	}
	return caps
}

// SelectSymbols returns the symbol set for caps.
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return unicodeSymbols
	}
	return asciiSymbols
}
