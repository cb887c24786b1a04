package changelog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnreleasedNotFound is returned when the document has no
// "## [Unreleased]" heading to cut a release from.
var ErrUnreleasedNotFound = errors.New("no '## [Unreleased]' section found")

// DuplicateVersionError is returned when a section for the version being cut
// already exists.
type DuplicateVersionError struct {
	Version string
}

func (e *DuplicateVersionError) Error() string {
	return fmt.Sprintf("a section for version %s already exists ('## [%s]')", e.Version, e.Version)
}

// ValidationError reports an invalid release input with the field at fault.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsDuplicateVersion returns true if the error is a DuplicateVersionError.
func IsDuplicateVersion(err error) bool {
	var de *DuplicateVersionError
	return errors.As(err, &de)
}

// VersionNotFoundError is returned when a requested version doesn't exist.
type VersionNotFoundError struct {
	Version           string
	AvailableVersions []string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, joinOrNone(e.AvailableVersions))
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
