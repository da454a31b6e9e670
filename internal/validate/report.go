// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package validate

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
)

// summaryCategories get a sample section in the text summary.
var summaryCategories = []Category{
	CategoryDefiniteMismatch,
	CategoryMissingProof,
	CategoryHeuristicUncertain,
}

// WriteSummary renders a human-readable report. maxOutput caps every
// sample list; the remainder is reported as "... and N more".
func WriteSummary(w io.Writer, r *Report, proofsPath string, maxOutput int) error {
	var b strings.Builder
	if r.Path != "" {
		fmt.Fprintf(&b, "Checked: %s\n", r.Path)
	}
	fmt.Fprintf(&b, "Errors: %d\n", len(r.Errors))
	fmt.Fprintf(&b, "Warnings: %d\n", len(r.Warnings))
	if r.Strict {
		fmt.Fprintf(&b, "Compatibility proofs: %s\n", proofsPath)
	}

	if counts := r.CategoryCounts(); len(counts) > 0 {
		b.WriteString("\nIssue categories:\n")
		for _, c := range counts {
			fmt.Fprintf(&b, "- %s: %d (errors=%d, warnings=%d)\n", c.Category, c.Total(), c.Errors, c.Warnings)
		}
	}
	for _, c := range summaryCategories {
		if samples := r.Samples(c); len(samples) > 0 {
			fmt.Fprintf(&b, "\nTop %s issues:\n", c)
			writeIssues(&b, samples, maxOutput, "")
		}
	}

	if len(r.Errors) > 0 {
		b.WriteString("\nTop errors:\n")
		writeIssues(&b, r.Errors, maxOutput, " errors")
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\nTop warnings:\n")
		writeIssues(&b, r.Warnings, maxOutput, " warnings")
	}

	if r.Failed() {
		b.WriteString("\nValidation failed.\n")
	} else {
		b.WriteString("\nValidation passed (no blocking issues).\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeIssues(b *strings.Builder, issues []Issue, maxOutput int, noun string) {
	if maxOutput < 0 {
		maxOutput = 0
	}
	for i, is := range issues {
		if i >= maxOutput {
			fmt.Fprintf(b, "... and %d more%s\n", len(issues)-maxOutput, noun)
			return
		}
		fmt.Fprintf(b, "- %s\n", is.Message)
	}
}

// WriteJSON renders the report with its category counts.
func WriteJSON(w io.Writer, r *Report) error {
	payload := struct {
		*Report
		Passed     bool            `json:"passed"`
		Categories []CategoryCount `json:"categories"`
	}{
		Report:     r,
		Passed:     !r.Failed(),
		Categories: r.CategoryCounts(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

// WriteFixSummary renders an autofix result.
func WriteFixSummary(w io.Writer, res *FixResult, maxOutput int) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Scanned rows: %d\n", res.Scanned)
	fmt.Fprintf(&b, "Definite mismatches fixed: %d\n", len(res.Fixes))
	fmt.Fprintf(&b, "Definite mismatches unresolved: %d\n", len(res.Unresolved))

	if len(res.Fixes) > 0 {
		b.WriteString("\nTop replacements:\n")
		for i, f := range res.Fixes {
			if i >= maxOutput {
				fmt.Fprintf(&b, "... and %d more replacements\n", len(res.Fixes)-maxOutput)
				break
			}
			fmt.Fprintf(&b, "- Row %d: '%s' -> '%s' replaced with '%s'\n", f.Row, f.Source, f.Old, f.New)
		}
	}
	if len(res.Unresolved) > 0 {
		b.WriteString("\nTop unresolved rows:\n")
		for i, u := range res.Unresolved {
			if i >= maxOutput {
				fmt.Fprintf(&b, "... and %d more unresolved rows\n", len(res.Unresolved)-maxOutput)
				break
			}
			fmt.Fprintf(&b, "- Row %d: '%s' -> '%s'\n", u.Row, u.Source, u.Rec)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
