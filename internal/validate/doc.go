// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

// Package validate checks a rule table at authoring time and repairs the
// rows it can repair with confidence.
//
// The Validator walks every row and reports errors (which fail validation)
// and warnings (which never do):
//
//   - structural: missing ids, self-recommendation, duplicate pairs
//   - type pairing: same-type core gear (error), unusual pairs (warning)
//   - helmet fit: fit-sensitive accessories must match the helmet's brand,
//     and in strict mode need a verified compatibility proof
//
// Each issue is categorized from its message text alone, so the category
// counts of a report are reproducible from the same table, proofs and
// options.
//
// The Fixer replaces only definite mismatches (a fit-sensitive accessory
// whose brand conflicts with the helmet) and leaves rows without a
// positive-scoring replacement untouched and reported.
package validate
