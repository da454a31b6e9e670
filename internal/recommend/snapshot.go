// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package recommend

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/cache"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/rules"
)

// Snapshot is an immutable, fully derived view of one loaded rule table.
type Snapshot struct {
	Table *rules.Table
	Pool  *Pool
	// Source names where the table came from, e.g. "local" or "remote".
	Source   string
	LoadedAt time.Time
	// Version is assigned by Store.Publish and increases with every publish.
	Version uint64

	classifier *Classifier
	categories *cache.KeywordIndex
}

// NewSnapshot derives the pool and category index for table.
func NewSnapshot(table *rules.Table, classifier *Classifier, source string) *Snapshot {
	if table == nil {
		table = rules.NewTable(nil, nil)
	}
	if classifier == nil {
		classifier = RuntimeClassifier()
	}
	cats := table.CategoryRules()
	groups := make([][]string, len(cats))
	for i, c := range cats {
		groups[i] = c.Keywords
	}
	return &Snapshot{
		Table:      table,
		Pool:       BuildPool(table, classifier),
		Source:     source,
		LoadedAt:   time.Now(),
		classifier: classifier,
		categories: cache.NewKeywordIndex(groups),
	}
}

// EmptySnapshot is a snapshot without rules.
func EmptySnapshot() *Snapshot {
	return NewSnapshot(nil, nil, "")
}

// Classifier returns the classifier the pool was built with.
func (s *Snapshot) Classifier() *Classifier {
	return s.classifier
}

// MatchCategory returns the first category rule, in table order, with a
// keyword contained in the lowercased product id.
func (s *Snapshot) MatchCategory(productID string) (rules.CategoryRule, bool) {
	i, ok := s.categories.FirstGroup(strings.ToLower(productID))
	if !ok {
		return rules.CategoryRule{}, false
	}
	return s.Table.CategoryRules()[i], true
}

// Store publishes snapshots to concurrent readers. Readers never block and
// always see a complete snapshot.
type Store struct {
	current atomic.Pointer[Snapshot]
	mu      sync.Mutex
	version uint64
}

// NewStore returns a store holding an empty snapshot.
func NewStore() *Store {
	s := &Store{}
	s.current.Store(EmptySnapshot())
	return s
}

// Current returns the latest published snapshot.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Publish stamps snap with the next version and makes it current. The
// snapshot must not be published twice.
func (s *Store) Publish(snap *Snapshot) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++
	snap.Version = s.version
	s.current.Store(snap)
	return snap
}
