// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package recommend

import "github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/rules"

// ProductType is a coarse product kind derived from keywords in an id.
type ProductType string

// Product types known to either classifier.
const (
	TypeUnknown         ProductType = "unknown"
	TypeHelmetAccessory ProductType = "helmet_accessory"
	TypeHelmet          ProductType = "helmet"
	TypeJacket          ProductType = "jacket"
	TypePants           ProductType = "pants"
	TypeGloves          ProductType = "gloves"
	TypeBoots           ProductType = "boots"
	TypeBackpack        ProductType = "backpack"
	TypeCommunication   ProductType = "communication"
	TypeTire            ProductType = "tire"
	TypeAirFilter       ProductType = "air_filter"
	TypeOil             ProductType = "oil"
	TypeBrake           ProductType = "brake"
	TypeChain           ProductType = "chain"
	TypeProtection      ProductType = "protection"
)

// Known reports whether t is anything but TypeUnknown.
func (t ProductType) Known() bool {
	return t != TypeUnknown && t != ""
}

// MatchType tells which rule kind answered a lookup.
type MatchType string

const (
	MatchExplicit MatchType = "explicit"
	MatchCategory MatchType = "category"
	MatchNone     MatchType = "none"
)

// Recommendation is one constrained recommendation. Backfilled entries carry
// the configured backfill label and priority.
type Recommendation struct {
	rules.Entry
	Backfilled bool
}

// DebugResult explains how a single product resolved.
type DebugResult struct {
	ProductID string
	MatchType MatchType
	// MatchedSource is set for explicit matches.
	MatchedSource string
	// MatchedKeywords is set for category matches.
	MatchedKeywords []string
	Recommendations []Recommendation
}

// AggregateItem is one merged cart recommendation.
type AggregateItem struct {
	ID       string
	Label    string
	Priority rules.Priority
	// Support is the number of distinct cart items that recommended ID.
	Support int
}

// AggregateResult is the merged recommendation list for a cart.
type AggregateResult struct {
	Recommendations []AggregateItem
	CartProducts    []string
	// Message is set when the cart is empty.
	Message string
	Matches map[MatchType]int
}
