package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// palette styles the parts of a formatted error.
type palette struct {
	label, category, message func(a ...any) string
	usageLabel, usage        func(a ...any) string
	fixLabel, bullet         func(a ...any) string
}

// colorPalette falls back to plain text when color output is disabled.
var colorPalette = palette{
	label:      color.New(color.FgRed, color.Bold).SprintFunc(),
	category:   color.New(color.FgYellow).SprintFunc(),
	message:    color.New(color.FgRed).SprintFunc(),
	usageLabel: color.New(color.FgCyan, color.Bold).SprintFunc(),
	usage:      color.New(color.FgCyan).SprintFunc(),
	fixLabel:   color.New(color.FgGreen, color.Bold).SprintFunc(),
	bullet:     color.New(color.FgGreen).SprintFunc(),
}

var plainPalette = palette{
	label:      fmt.Sprint,
	category:   fmt.Sprint,
	message:    fmt.Sprint,
	usageLabel: fmt.Sprint,
	usage:      fmt.Sprint,
	fixLabel:   fmt.Sprint,
	bullet:     fmt.Sprint,
}

var warningLabel = color.New(color.FgYellow, color.Bold).SprintFunc()

// FormatError renders err for the terminal:
//
//	Error [Argument Error]: invalid release: ...
//
//	Usage: kettle-changelog cut ...
//
//	To fix this:
//	  • step
func FormatError(err *CLIError) string {
	return formatError(err, colorPalette)
}

// FormatErrorPlain renders err without colors.
func FormatErrorPlain(err *CLIError) string {
	return formatError(err, plainPalette)
}

func formatError(err *CLIError, p palette) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category), p.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s%s\n", p.usageLabel("Usage: "), p.usage(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fixLabel("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}
	return sb.String()
}

// FprintError writes the formatted err to w.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}

// FprintWarning writes a one-line "Warning:" message to w.
func FprintWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", warningLabel("Warning:"), fmt.Sprintf(format, args...))
}
