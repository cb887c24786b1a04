package changelog

import (
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/atomic"
)

// defaultFileMode is applied when WriteFile creates a new changelog.
const defaultFileMode os.FileMode = 0o644

// SplitLines splits text into lines without their newline characters.
// CRLF line endings are normalized to LF. A final newline does not produce a
// trailing empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// JoinLines joins lines with "\n" and terminates the result with a newline.
func JoinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// Normalize removes trailing whitespace at the end of the document and
// terminates it with exactly one newline.
func Normalize(text string) string {
	return strings.TrimRight(text, " \t\r\n") + "\n"
}

// ReadFile reads the changelog at path.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading changelog %s: %w", path, err)
	}
	return string(data), nil
}

// WriteFile replaces the changelog at path with text in a single atomic
// rename. The file is either fully rewritten or left untouched. The existing
// file mode is kept; new files get 0644.
func WriteFile(path, text string) error {
	mode := defaultFileMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	if err := atomic.WriteFile(path, strings.NewReader(text)); err != nil {
		return fmt.Errorf("writing changelog %s: %w", path, err)
	}

	if err := os.Chmod(path, mode); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	return nil
}
