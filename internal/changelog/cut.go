package changelog

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/kettle-rb/kettle-changelog/internal/forge"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// WarningCode identifies a non-fatal condition met while cutting a release.
type WarningCode string

const (
	// WarnEmptyUnreleased means the Unreleased section had no content, so the
	// release section only carries its heading and metadata lines.
	WarnEmptyUnreleased WarningCode = "empty-unreleased"
	// WarnNoIdentity means the repository owner/repo is unknown and no
	// Unreleased or version links were written.
	WarnNoIdentity WarningCode = "no-identity"
	// WarnNoFooter means the document had no "[Unreleased]:" reference, so the
	// footer block starts fresh at EOF.
	WarnNoFooter WarningCode = "no-footer"
	// WarnMissingMetric means a metric source was unavailable and its line was
	// omitted. Callers gathering metrics report it.
	WarnMissingMetric WarningCode = "missing-metric"
)

// Warning is a non-fatal condition reported alongside a successful cut.
type Warning struct {
	Code    WarningCode
	Message string
}

func (w Warning) String() string {
	return w.Message
}

// CutInput holds everything a release cut needs beyond the document text.
type CutInput struct {
	Release Release
	// Identity is the GitHub owner/repo used for link references. Nil skips
	// the Unreleased and new-version link upserts.
	Identity *forge.Identity
}

// CutResult is the outcome of a successful cut.
type CutResult struct {
	Text            string
	Version         string
	PreviousVersion string
	Warnings        []Warning
}

// Cut moves the Unreleased changes of text into a new release section.
//
// The Unreleased section is replaced by an empty category skeleton, followed
// by the new release section and the rest of the document. The footer link
// references are then reconciled for the new version. Cut fails without
// producing text when the Unreleased heading is missing, the version already
// has a section, or the version or date are malformed.
func Cut(text string, in CutInput) (*CutResult, error) {
	rel := in.Release
	rel.Version = NormalizeVersion(rel.Version)
	if err := validateRelease(rel); err != nil {
		return nil, err
	}

	lines := SplitLines(text)
	if HasVersionSection(lines, rel.Version) {
		return nil, &DuplicateVersionError{Version: rel.Version}
	}

	before, body, after, ok := LocateUnreleased(lines)
	if !ok {
		return nil, ErrUnreleasedNotFound
	}

	result := &CutResult{
		Version:         rel.Version,
		PreviousVersion: PreviousVersion(after),
	}

	filtered := FilterUnreleased(body)
	if filtered == "" {
		result.warn(WarnEmptyUnreleased, fmt.Sprintf("the Unreleased section is empty; cutting %s with no changes listed", rel.Version))
	}

	out := slices.Clone(before)
	out = append(out, UnreleasedTemplate()...)
	out = append(out, BuildRelease(rel, filtered)...)
	out = append(out, after...)

	if in.Identity == nil {
		result.warn(WarnNoIdentity, "could not determine the GitHub owner/repo; skipping Unreleased and version link references")
	}
	if footerBoundary(out) < 0 {
		result.warn(WarnNoFooter, "no '[Unreleased]:' link reference found; starting the reference block at the end of the file")
	}

	result.Text = Reconcile(JoinLines(out), in.Identity, result.PreviousVersion, rel.Version)
	return result, nil
}

// CutFile applies Cut to the changelog at path and writes the result back in
// a single atomic write. The file is not modified when Cut fails.
func CutFile(path string, in CutInput) (*CutResult, error) {
	text, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	result, err := Cut(text, in)
	if err != nil {
		return nil, err
	}

	if err := WriteFile(path, result.Text); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *CutResult) warn(code WarningCode, msg string) {
	r.Warnings = append(r.Warnings, Warning{Code: code, Message: msg})
}

// validateRelease checks the version and date of a release.
func validateRelease(rel Release) error {
	if rel.Version == "" {
		return &ValidationError{Field: "version", Message: "required field is empty"}
	}
	if !IsVersion(rel.Version) {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("invalid semver format %q (expected: X.Y.Z)", rel.Version),
		}
	}
	if !datePattern.MatchString(rel.Date) {
		return &ValidationError{
			Field:   "date",
			Message: fmt.Sprintf("invalid date format %q (expected: YYYY-MM-DD)", rel.Date),
		}
	}
	return nil
}
