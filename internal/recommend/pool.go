// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package recommend

import "github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/rules"

// Pool holds every product id the table mentions, grouped by type, used to
// backfill short recommendation lists. A Pool is immutable once built.
type Pool struct {
	types  []ProductType
	byType map[ProductType][]string
}

// BuildPool collects candidate ids from explicit recommendations, then the
// explicit source ids, then category recommendations. Ids of unknown type
// are skipped and each type keeps first-seen order without duplicates.
func BuildPool(table *rules.Table, classifier *Classifier) *Pool {
	p := &Pool{byType: make(map[ProductType][]string)}
	seen := make(map[ProductType]map[string]bool)

	add := func(id string) {
		if id == "" {
			return
		}
		t := classifier.Classify(id)
		if !t.Known() {
			return
		}
		ids, ok := seen[t]
		if !ok {
			ids = make(map[string]bool)
			seen[t] = ids
			p.types = append(p.types, t)
		}
		if ids[id] {
			return
		}
		ids[id] = true
		p.byType[t] = append(p.byType[t], id)
	}

	if table == nil {
		return p
	}
	explicit := table.ExplicitRules()
	for _, rule := range explicit {
		for _, e := range rule.Entries {
			add(e.ID)
		}
	}
	for _, rule := range explicit {
		add(rule.Source)
	}
	for _, cat := range table.CategoryRules() {
		for _, e := range cat.Entries {
			add(e.ID)
		}
	}
	return p
}

// Types returns the pool's types in first-seen order.
func (p *Pool) Types() []ProductType {
	return p.types
}

// Candidates returns the ids of one type in first-seen order.
func (p *Pool) Candidates(t ProductType) []string {
	return p.byType[t]
}

// Size returns the total number of pooled ids.
func (p *Pool) Size() int {
	n := 0
	for _, ids := range p.byType {
		n += len(ids)
	}
	return n
}
