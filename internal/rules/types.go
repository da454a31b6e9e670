// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package rules

import "strings"

// Column names of the rule table.
const (
	ColProductID   = "Product ID"
	ColRecommended = "Recommended Product ID"
	ColLabel       = "Label"
	ColType        = "Type"
	ColPriority    = "Priority"
)

// Priority is the authoring priority of a recommendation.
type Priority string

// Known priorities. The zero value means unset.
const (
	PriorityNone      Priority = ""
	PriorityPrimary   Priority = "Primary"
	PrioritySecondary Priority = "Secondary"
	PriorityTertiary  Priority = "Tertiary"
)

// UnsetRank is the rank of an unset or unknown priority.
const UnsetRank = 99

// Rank orders priorities for tie-breaks: Primary 0, Secondary 1, Tertiary 2,
// anything else 99.
func (p Priority) Rank() int {
	switch p {
	case PriorityPrimary:
		return 0
	case PrioritySecondary:
		return 1
	case PriorityTertiary:
		return 2
	default:
		return UnsetRank
	}
}

// ParsePriority maps a cell value to a known priority, case-insensitively.
// Unknown values are treated as unset.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "primary":
		return PriorityPrimary
	case "secondary":
		return PrioritySecondary
	case "tertiary":
		return PriorityTertiary
	default:
		return PriorityNone
	}
}

// Entry is one recommendation: the recommended id with an optional label
// and priority.
type Entry struct {
	ID       string
	Label    string
	Priority Priority
}

// RowKind tags a parsed row as an explicit or a category rule.
type RowKind int

const (
	KindExplicit RowKind = iota
	KindCategory
)

func (k RowKind) String() string {
	if k == KindCategory {
		return "category"
	}
	return "explicit"
}

// Row is one data row of the rule table.
type Row struct {
	// Number is the 1-based record number with the header as row 1.
	Number int
	// Kind comes from the Type column alone.
	Kind RowKind
	// CategorySyntax is set when the Product ID uses the bracket form,
	// whatever the Type column says. The authoring checks skip such rows.
	CategorySyntax bool
	// Source is the trimmed Product ID cell.
	Source string
	// Keywords holds the lowercased bracket keywords of a category row.
	Keywords []string
	Entry    Entry
	// Fields is the raw record, aligned with Table.Header.
	Fields []string
}

// Valid reports whether the row has both ids.
func (r Row) Valid() bool {
	return r.Source != "" && r.Entry.ID != ""
}

// ExplicitRule maps one source product to its ordered recommendations.
type ExplicitRule struct {
	Source  string
	Entries []Entry
}

// CategoryRule maps a keyword set to ordered recommendations. It matches a
// product whose lowercased id contains any keyword.
type CategoryRule struct {
	Keywords []string
	Entries  []Entry
}

// Key renders the keyword set the way it is authored, "[a | b]".
func (c CategoryRule) Key() string {
	return "[" + strings.Join(c.Keywords, " | ") + "]"
}

// Counts summarizes a table for reload and health reporting.
type Counts struct {
	ExplicitProducts int `json:"explicit_products"`
	ExplicitRows     int `json:"explicit_rows"`
	CategoryRules    int `json:"category_rules"`
	CategoryRows     int `json:"category_rows"`
}
