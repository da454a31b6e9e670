// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package cache

import "math"

const noGroup = math.MaxInt

// KeywordIndex is an immutable Aho-Corasick automaton over ordered keyword
// groups. FirstGroup returns the lowest group index with at least one keyword
// occurring as a substring of the text, which is exactly the result of
// scanning the groups in order with strings.Contains.
//
// Matching is byte-wise and case-sensitive; callers normalize both keywords
// and text. Empty keywords are ignored.
//
// A built index is never mutated and is safe for concurrent use.
//
//	idx := NewKeywordIndex([][]string{{"visor", "shield"}, {"helmet"}})
//	idx.FirstGroup("shoei-x15-face-shield") // 0, true
type KeywordIndex struct {
	root     *acNode
	groups   int
	patterns int
}

type acNode struct {
	children map[byte]*acNode
	failure  *acNode
	// best is the smallest group index of any keyword that ends here,
	// including keywords reachable through failure links.
	best int
}

func newACNode() *acNode {
	return &acNode{children: make(map[byte]*acNode), best: noGroup}
}

// NewKeywordIndex builds the automaton for the given ordered groups.
func NewKeywordIndex(groups [][]string) *KeywordIndex {
	idx := &KeywordIndex{root: newACNode(), groups: len(groups)}
	for g, keywords := range groups {
		for _, kw := range keywords {
			if kw == "" {
				continue
			}
			idx.insert(kw, g)
			idx.patterns++
		}
	}
	idx.buildFailureLinks()
	return idx
}

func (idx *KeywordIndex) insert(keyword string, group int) {
	node := idx.root
	for i := 0; i < len(keyword); i++ {
		ch := keyword[i]
		next := node.children[ch]
		if next == nil {
			next = newACNode()
			node.children[ch] = next
		}
		node = next
	}
	if group < node.best {
		node.best = group
	}
}

// buildFailureLinks wires failure links breadth-first. A node's failure
// target is always shallower, so its best value is final before it is
// merged into the deeper node.
func (idx *KeywordIndex) buildFailureLinks() {
	queue := make([]*acNode, 0, len(idx.root.children))
	for _, child := range idx.root.children {
		child.failure = idx.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}
			if fail == nil {
				child.failure = idx.root
			} else {
				child.failure = fail.children[ch]
			}
			if child.failure.best < child.best {
				child.best = child.failure.best
			}
		}
	}
}

// FirstGroup returns the lowest matching group index.
func (idx *KeywordIndex) FirstGroup(text string) (int, bool) {
	if idx == nil || idx.patterns == 0 {
		return 0, false
	}

	best := noGroup
	node := idx.root
	for i := 0; i < len(text); i++ {
		ch := text[i]
		for node != idx.root && node.children[ch] == nil {
			node = node.failure
		}
		if next := node.children[ch]; next != nil {
			node = next
		}
		if node.best < best {
			best = node.best
			if best == 0 {
				break
			}
		}
	}

	if best == noGroup {
		return 0, false
	}
	return best, true
}

// Contains reports whether any keyword of any group occurs in text.
func (idx *KeywordIndex) Contains(text string) bool {
	_, ok := idx.FirstGroup(text)
	return ok
}

// Groups returns the number of groups the index was built with.
func (idx *KeywordIndex) Groups() int {
	return idx.groups
}

// PatternCount returns the number of non-empty keywords indexed.
func (idx *KeywordIndex) PatternCount() int {
	return idx.patterns
}
