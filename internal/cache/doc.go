// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

// Package cache provides the small data structures the recommendation service
// keeps in memory between requests.
//
//   - KeywordIndex: an Aho-Corasick automaton over ordered keyword groups that
//     answers "which is the first group with any keyword inside this text" in
//     a single pass. Product type tables and category fallback rules are both
//     ordered first-match-wins tables, so they share this index.
//   - LRU: a thread-safe generic least-recently-used cache with TTL, used for
//     aggregated FBT responses. It is cleared whenever a new rules snapshot
//     is published.
//   - GenerateKey: stable hashed cache keys built from JSON-encoded parameters.
package cache
