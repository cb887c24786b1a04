package project

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
)

// Metrics holds the formatted metric lines for a release section. Empty
// fields were unavailable.
type Metrics struct {
	Line          string
	Branch        string
	Documentation string
}

// Lines returns the available metrics in release-section order.
func (m Metrics) Lines() []string {
	var out []string
	for _, s := range []string{m.Line, m.Branch, m.Documentation} {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// coverageReport is the subset of a SimpleCov JSON report (coverage.json)
// that the metric lines use.
type coverageReport struct {
	Metrics struct {
		CoveredPercent       *float64 `json:"covered_percent"`
		CoveredLines         int      `json:"covered_lines"`
		TotalLines           int      `json:"total_lines"`
		BranchCoveredPercent *float64 `json:"branch_covered_percent"`
		CoveredBranches      int      `json:"covered_branches"`
		TotalBranches        int      `json:"total_branches"`
	} `json:"metrics"`
	Files []json.RawMessage `json:"files"`
}

// ReadCoverage reads a SimpleCov JSON report and returns the line and branch
// coverage lines, for example
//
//	COVERAGE: 96.55% -- 1234/1278 lines in 42 files
//
// A metric missing from the report comes back as "".
func ReadCoverage(path string) (line, branch string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading coverage report: %w", err)
	}

	var report coverageReport
	if err := json.Unmarshal(data, &report); err != nil {
		return "", "", fmt.Errorf("parsing coverage report %s: %w", path, err)
	}

	m := report.Metrics
	files := len(report.Files)
	if m.CoveredPercent != nil && m.TotalLines > 0 {
		line = fmt.Sprintf("COVERAGE: %.2f%% -- %d/%d lines in %d files",
			*m.CoveredPercent, m.CoveredLines, m.TotalLines, files)
	}
	if m.BranchCoveredPercent != nil && m.TotalBranches > 0 {
		branch = fmt.Sprintf("BRANCH COVERAGE: %.2f%% -- %d/%d branches in %d files",
			*m.BranchCoveredPercent, m.CoveredBranches, m.TotalBranches, files)
	}
	return line, branch, nil
}

// documentedPattern matches the summary line of "yard stats".
var documentedPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)%\s+documented`)

// ReadDocumentation reads saved "yard stats" output and returns the
// documentation line, for example "93.10% documented".
func ReadDocumentation(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading documentation stats: %w", err)
	}

	m := documentedPattern.FindSubmatch(data)
	if m == nil {
		return "", fmt.Errorf("no documentation percentage in %s", path)
	}
	pct, err := strconv.ParseFloat(string(m[1]), 64)
	if err != nil {
		return "", fmt.Errorf("parsing documentation percentage: %w", err)
	}
	return fmt.Sprintf("%.2f%% documented", pct), nil
}
