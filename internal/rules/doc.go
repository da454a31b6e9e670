// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

// Package rules parses the recommendation rule table and the compatibility
// proofs table.
//
// Rule table CSV columns:
//
//	Product ID, Recommended Product ID, Label, Type, Priority
//
// Type defaults to "Explicit". Only a row whose Type is "Category" (any
// case) is a category fallback rule, keyed by the bracketed keywords of its
// Product ID ("[kw1 | kw2] free text"). A bracket-syntax Product ID with any
// other Type stays an ordinary explicit entry. Both facts are decided once,
// at parse time, and recorded in Row.Kind and Row.CategorySyntax.
//
// Rows missing either id are kept in Table.Rows (the validator reports them)
// but never reach the explicit map or the category rule list.
package rules
