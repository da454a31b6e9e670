// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package validate

import "strings"

// Severity separates failing issues from informational ones.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Category groups issues for reporting.
type Category string

const (
	CategoryDefiniteMismatch   Category = "definite mismatch"
	CategoryMissingProof       Category = "missing proof"
	CategoryHeuristicUncertain Category = "heuristic uncertain"
	CategoryOther              Category = "other"
)

// Categories lists every category in report order.
var Categories = []Category{
	CategoryDefiniteMismatch,
	CategoryMissingProof,
	CategoryHeuristicUncertain,
	CategoryOther,
}

// Categorize derives the category of an issue from its message.
func Categorize(message string) Category {
	text := strings.ToLower(message)
	switch {
	case strings.Contains(text, "helmet brand mismatch"):
		return CategoryDefiniteMismatch
	case strings.Contains(text, "missing verified compatibility source"):
		return CategoryMissingProof
	case strings.Contains(text, "no source proof entry, but heuristic fit looks plausible"):
		return CategoryHeuristicUncertain
	case strings.Contains(text, "no helmet model match was found"):
		return CategoryHeuristicUncertain
	default:
		return CategoryOther
	}
}

// Issue is one validation finding. Row is 0 for file-level issues.
type Issue struct {
	Row      int      `json:"row,omitempty"`
	Severity Severity `json:"severity"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
}

// CategoryCount is the per-category tally of a report.
type CategoryCount struct {
	Category Category `json:"category"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
}

// Total is Errors plus Warnings.
func (c CategoryCount) Total() int {
	return c.Errors + c.Warnings
}

// Report is the ordered result of one validation run.
type Report struct {
	Path     string  `json:"path,omitempty"`
	Rows     int     `json:"rows"`
	Strict   bool    `json:"strict"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{Errors: []Issue{}, Warnings: []Issue{}}
}

func (r *Report) add(row int, sev Severity, msg string) {
	issue := Issue{Row: row, Severity: sev, Category: Categorize(msg), Message: msg}
	if sev == SeverityError {
		r.Errors = append(r.Errors, issue)
		return
	}
	r.Warnings = append(r.Warnings, issue)
}

// AddError records a failing issue.
func (r *Report) AddError(row int, msg string) {
	r.add(row, SeverityError, msg)
}

// AddWarning records an informational issue.
func (r *Report) AddWarning(row int, msg string) {
	r.add(row, SeverityWarning, msg)
}

// Failed reports whether any error was found.
func (r *Report) Failed() bool {
	return len(r.Errors) > 0
}

// CategoryCounts tallies issues per category in report order, omitting
// empty categories.
func (r *Report) CategoryCounts() []CategoryCount {
	counts := make(map[Category]*CategoryCount, len(Categories))
	for _, c := range Categories {
		counts[c] = &CategoryCount{Category: c}
	}
	for _, is := range r.Errors {
		counts[is.Category].Errors++
	}
	for _, is := range r.Warnings {
		counts[is.Category].Warnings++
	}
	out := make([]CategoryCount, 0, len(Categories))
	for _, c := range Categories {
		if counts[c].Total() > 0 {
			out = append(out, *counts[c])
		}
	}
	return out
}

// Samples returns the issues of one category, errors before warnings.
func (r *Report) Samples(c Category) []Issue {
	var out []Issue
	for _, is := range r.Errors {
		if is.Category == c {
			out = append(out, is)
		}
	}
	for _, is := range r.Warnings {
		if is.Category == c {
			out = append(out, is)
		}
	}
	return out
}

// Tally counts issues by severity and then category, the shape
// metrics.RecordValidation expects.
func (r *Report) Tally() map[string]map[string]int {
	out := map[string]map[string]int{
		string(SeverityError):   {},
		string(SeverityWarning): {},
	}
	for _, c := range r.CategoryCounts() {
		if c.Errors > 0 {
			out[string(SeverityError)][string(c.Category)] = c.Errors
		}
		if c.Warnings > 0 {
			out[string(SeverityWarning)][string(c.Category)] = c.Warnings
		}
	}
	return out
}
