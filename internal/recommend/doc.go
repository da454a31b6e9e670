// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

// Package recommend resolves "frequently bought together" recommendations
// from a rule table.
//
// # Resolution
//
// A product resolves against the table in two steps:
//
//   - Explicit: the exact Product ID has authored rows.
//   - Category: the first category rule (in table order) with a keyword
//     contained in the lowercased product id.
//
// The raw entries then pass through the constraint engine, which yields at
// most three recommendations:
//
//   - candidates are stably ordered by priority rank
//   - apparel sources (jackets, pants) never get apparel or gloves of a
//     different brand
//   - at most one item per product type, never the source itself
//   - empty slots are backfilled from the global pool, first with the
//     product types that usually follow the source, then with any type
//
// # Snapshots
//
// A Snapshot bundles an immutable rule table with the derived global pool
// and category index. Resolution always runs against a single snapshot, so a
// reload that swaps the Store never exposes a half-built table:
//
//	store := recommend.NewStore()
//	store.Publish(recommend.NewSnapshot(table, recommend.RuntimeClassifier(), "local"))
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	result := engine.Aggregate(store.Current(), []string{"shoei-rf-1400-helmet"})
//
// # Classification
//
// Two classifiers share the keyword machinery. RuntimeClassifier is the
// small apparel-focused table used while serving; AuthoringClassifier is the
// wider table used by the offline validator and autofixer. The two tables
// differ and must not be merged.
package recommend
