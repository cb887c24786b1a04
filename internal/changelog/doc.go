// Package changelog reads and rewrites Keep a Changelog formatted CHANGELOG.md
// files.
//
// This package implements:
//   - Locating the "## [Unreleased]" section and splitting a document around it
//   - Filtering empty "### <Category>" subsections out of the Unreleased body
//   - Cutting a release: building the versioned section, resetting Unreleased
//     to an empty category skeleton
//   - Reconciling the footer block of link reference definitions (compare and
//     tag links), including migration of legacy GitLab links
//   - Parsing sections for querying, release-note extraction and terminal display
//   - Linting a document for structural and link-reference problems
//
// All transformations work on in-memory text. Files are read once and written
// once, atomically, by ReadFile and WriteFile.
package changelog
