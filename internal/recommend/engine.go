// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package recommend

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/rules"
)

// Engine resolves and constrains recommendations against a Snapshot.
// It holds no table state of its own and is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	lookups    atomic.Int64
	explicit   atomic.Int64
	category   atomic.Int64
	unmatched  atomic.Int64
	backfilled atomic.Int64
	carts      atomic.Int64
}

// Stats is a point-in-time copy of the engine counters.
type Stats struct {
	Lookups         int64 `json:"lookups"`
	ExplicitMatches int64 `json:"explicit_matches"`
	CategoryMatches int64 `json:"category_matches"`
	Unmatched       int64 `json:"unmatched"`
	Backfilled      int64 `json:"backfilled"`
	Carts           int64 `json:"carts"`
}

// NewEngine creates an engine. A nil config means DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Stats returns the current counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Lookups:         e.lookups.Load(),
		ExplicitMatches: e.explicit.Load(),
		CategoryMatches: e.category.Load(),
		Unmatched:       e.unmatched.Load(),
		Backfilled:      e.backfilled.Load(),
		Carts:           e.carts.Load(),
	}
}

// Resolve returns the constrained recommendations for one product.
func (e *Engine) Resolve(snap *Snapshot, productID string) []Recommendation {
	return e.ResolveDebug(snap, productID).Recommendations
}

// ResolveDebug resolves one product and reports which rule answered. An
// exact explicit match wins over category rules; a product matching neither
// gets no recommendations.
func (e *Engine) ResolveDebug(snap *Snapshot, productID string) DebugResult {
	if snap == nil {
		snap = EmptySnapshot()
	}
	pid := strings.TrimSpace(productID)
	e.lookups.Add(1)

	result := DebugResult{ProductID: pid, MatchType: MatchNone, Recommendations: []Recommendation{}}
	if entries, ok := snap.Table.Explicit(pid); ok {
		e.explicit.Add(1)
		result.MatchType = MatchExplicit
		result.MatchedSource = pid
		result.Recommendations = e.ApplyConstraints(snap, pid, entries)
		return result
	}
	if rule, ok := snap.MatchCategory(pid); ok {
		e.category.Add(1)
		result.MatchType = MatchCategory
		result.MatchedKeywords = rule.Keywords
		result.Recommendations = e.ApplyConstraints(snap, pid, rule.Entries)
		return result
	}
	e.unmatched.Add(1)
	return result
}

// ApplyConstraints turns the raw entries of a matched rule into at most
// Limit recommendations:
//
//  1. stable sort by priority rank
//  2. drop empty ids, the source itself, and apparel of another brand
//  3. keep the first entry of each product type
//  4. backfill the source type's desired next types from the pool
//  5. backfill any remaining pooled type
//
// Every apparel or glove recommendation for a jacket or pants source shares
// the source's brand token, with one exception: a backfilled glove of
// Config.GloveFallbackBrand when no same-brand glove is pooled.
func (e *Engine) ApplyConstraints(snap *Snapshot, sourceID string, raw []rules.Entry) []Recommendation {
	if snap == nil {
		snap = EmptySnapshot()
	}
	cls := snap.Classifier()
	sourceID = strings.TrimSpace(sourceID)
	c := constraint{
		sourceType:  cls.Classify(sourceID),
		sourceBrand: BrandToken(sourceID),
		taken:       map[string]bool{sourceID: true},
		usedTypes:   make(map[ProductType]bool),
	}
	limit := e.config.Limit

	ordered := make([]rules.Entry, len(raw))
	copy(ordered, raw)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority.Rank() < ordered[j].Priority.Rank()
	})

	out := make([]Recommendation, 0, limit)
	for _, entry := range ordered {
		if len(out) >= limit {
			break
		}
		id := strings.TrimSpace(entry.ID)
		if id == "" || c.taken[id] {
			continue
		}
		t := cls.Classify(id)
		if c.usedTypes[t] || apparelBrandConflict(c.sourceType, c.sourceBrand, t, id) {
			continue
		}
		c.take(id, t)
		entry.ID = id
		out = append(out, Recommendation{Entry: entry})
	}

	for _, want := range DesiredNextTypes(c.sourceType) {
		if len(out) >= limit {
			break
		}
		if c.usedTypes[want] {
			continue
		}
		if id, ok := c.pickOfType(snap.Pool, want, e.config.GloveFallbackBrand); ok {
			c.take(id, want)
			out = append(out, e.backfill(id))
		}
	}

	for len(out) < limit {
		id, t, ok := c.pickAny(snap.Pool)
		if !ok {
			break
		}
		c.take(id, t)
		out = append(out, e.backfill(id))
	}
	return out
}

func (e *Engine) backfill(id string) Recommendation {
	e.backfilled.Add(1)
	return Recommendation{
		Entry: rules.Entry{
			ID:       id,
			Label:    e.config.BackfillLabel,
			Priority: e.config.BackfillPriority,
		},
		Backfilled: true,
	}
}

// constraint carries the per-source selection state.
type constraint struct {
	sourceType  ProductType
	sourceBrand string
	taken       map[string]bool
	usedTypes   map[ProductType]bool
}

func (c *constraint) take(id string, t ProductType) {
	c.taken[id] = true
	c.usedTypes[t] = true
}

func (c *constraint) allowed(id string, t ProductType) bool {
	return !c.taken[id] && !apparelBrandConflict(c.sourceType, c.sourceBrand, t, id)
}

// pickOfType returns the first pooled id of type want that passes the brand
// filter. Gloves for an apparel source prefer the source's brand; failing
// that, a glove of fallbackBrand is taken even though its brand differs.
func (c *constraint) pickOfType(pool *Pool, want ProductType, fallbackBrand string) (string, bool) {
	candidates := pool.Candidates(want)
	if apparelSources[c.sourceType] && want == TypeGloves {
		if c.sourceBrand != "" {
			for _, id := range candidates {
				if !c.taken[id] && BrandToken(id) == c.sourceBrand {
					return id, true
				}
			}
		}
		if fallbackBrand != "" {
			for _, id := range candidates {
				if !c.taken[id] && BrandToken(id) == fallbackBrand {
					return id, true
				}
			}
		}
	}
	for _, id := range candidates {
		if c.allowed(id, want) {
			return id, true
		}
	}
	return "", false
}

// pickAny returns the first pooled id of a type not yet used, walking types
// in pool order.
func (c *constraint) pickAny(pool *Pool) (string, ProductType, bool) {
	for _, t := range pool.Types() {
		if c.usedTypes[t] {
			continue
		}
		for _, id := range pool.Candidates(t) {
			if c.allowed(id, t) {
				return id, t, true
			}
		}
	}
	return "", "", false
}

// ParseCart splits a comma-separated id list, trimming entries and dropping
// empty ones.
func ParseCart(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Aggregate merges the recommendations of every cart item. Items already in
// the cart are never recommended. Each id keeps its first non-empty label
// and best priority; the list is ordered by support (descending), then
// priority rank, then first appearance. Duplicate cart ids count once.
func (e *Engine) Aggregate(snap *Snapshot, cart []string) AggregateResult {
	e.carts.Add(1)

	products := make([]string, 0, len(cart))
	for _, id := range cart {
		if id = strings.TrimSpace(id); id != "" {
			products = append(products, id)
		}
	}
	result := AggregateResult{
		Recommendations: []AggregateItem{},
		CartProducts:    products,
		Matches:         make(map[MatchType]int),
	}
	if len(products) == 0 {
		result.Message = e.config.EmptyCartMessage
		return result
	}

	inCart := make(map[string]bool, len(products))
	for _, id := range products {
		inCart[id] = true
	}

	pos := make(map[string]int)
	visited := make(map[string]bool, len(products))
	for _, pid := range products {
		if visited[pid] {
			continue
		}
		visited[pid] = true

		res := e.ResolveDebug(snap, pid)
		result.Matches[res.MatchType]++
		for _, rec := range res.Recommendations {
			if inCart[rec.ID] {
				continue
			}
			i, ok := pos[rec.ID]
			if !ok {
				pos[rec.ID] = len(result.Recommendations)
				result.Recommendations = append(result.Recommendations, AggregateItem{
					ID:       rec.ID,
					Label:    rec.Label,
					Priority: rec.Priority,
					Support:  1,
				})
				continue
			}
			item := &result.Recommendations[i]
			item.Support++
			if item.Label == "" {
				item.Label = rec.Label
			}
			if rec.Priority.Rank() < item.Priority.Rank() {
				item.Priority = rec.Priority
			}
		}
	}

	sort.SliceStable(result.Recommendations, func(i, j int) bool {
		a, b := result.Recommendations[i], result.Recommendations[j]
		if a.Support != b.Support {
			return a.Support > b.Support
		}
		return a.Priority.Rank() < b.Priority.Rank()
	})

	e.logger.Debug().
		Int("cart_size", len(products)).
		Int("recommendations", len(result.Recommendations)).
		Msg("aggregated cart")
	return result
}
