// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package cache

import (
	"strings"
	"sync"
	"testing"
)

func TestKeywordIndex_FirstGroup(t *testing.T) {
	t.Parallel()

	idx := NewKeywordIndex([][]string{
		{"visor", "face-shield", "shield", "pinlock"},
		{"helmet"},
		{"jacket", "coat"},
		{"boot", "shoe"},
	})

	tests := []struct {
		text      string
		wantGroup int
		wantOK    bool
	}{
		{"pinlock-ready-shield-for-rf1400-helmet", 0, true},
		{"shoei-rf1400-helmet", 1, true},
		{"alpinestars-gp-plus-r-v4-jacket", 2, true},
		{"alpinestars-tech-10-boots-2025", 3, true},
		{"raincoat", 2, true},
		{"chain-lube", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			got, ok := idx.FirstGroup(tt.text)
			if ok != tt.wantOK || (ok && got != tt.wantGroup) {
				t.Errorf("FirstGroup(%q) = (%d, %v), want (%d, %v)", tt.text, got, ok, tt.wantGroup, tt.wantOK)
			}
		})
	}
}

func TestKeywordIndex_LowerGroupWinsRegardlessOfPosition(t *testing.T) {
	t.Parallel()

	// "helmet" appears before "shield" in the text, but group 0 still wins.
	idx := NewKeywordIndex([][]string{{"shield"}, {"helmet"}})
	got, ok := idx.FirstGroup("helmet-shield")
	if !ok || got != 0 {
		t.Fatalf("FirstGroup = (%d, %v), want (0, true)", got, ok)
	}
}

func TestKeywordIndex_OverlappingPatterns(t *testing.T) {
	t.Parallel()

	// "she" and "he" overlap inside "ushers"; only failure links find "he"
	// once the "she" branch is followed.
	idx := NewKeywordIndex([][]string{{"hers"}, {"his"}, {"he"}, {"she"}})
	got, ok := idx.FirstGroup("ushers")
	if !ok || got != 0 {
		t.Fatalf("FirstGroup(ushers) = (%d, %v), want (0, true)", got, ok)
	}

	idx = NewKeywordIndex([][]string{{"xyz"}, {"he"}, {"she"}})
	got, ok = idx.FirstGroup("ushe")
	if !ok || got != 1 {
		t.Fatalf("FirstGroup(ushe) = (%d, %v), want (1, true)", got, ok)
	}
}

func TestKeywordIndex_MatchesLinearScan(t *testing.T) {
	t.Parallel()

	groups := [][]string{
		{"air filter", "air-filter", "filter"},
		{"oil", "lube"},
		{"chain", "sprocket", "chain lube"},
		{"brake", "rotor"},
		{"tire", "tyre", "wheel"},
	}
	idx := NewKeywordIndex(groups)

	linear := func(text string) (int, bool) {
		for i, g := range groups {
			for _, kw := range g {
				if strings.Contains(text, kw) {
					return i, true
				}
			}
		}
		return 0, false
	}

	texts := []string{
		"motorex chain lube", "k&n air-filter", "ebc brake rotor",
		"michelin road 6 tyre", "fork oil 10w", "sprocket kit", "nothing here",
		"oilfilter", "wheel bearing oil",
	}
	for _, text := range texts {
		wantG, wantOK := linear(text)
		gotG, gotOK := idx.FirstGroup(text)
		if wantOK != gotOK || wantG != gotG {
			t.Errorf("FirstGroup(%q) = (%d, %v), linear scan = (%d, %v)", text, gotG, gotOK, wantG, wantOK)
		}
	}
}

func TestKeywordIndex_EmptyKeywordsIgnored(t *testing.T) {
	t.Parallel()

	idx := NewKeywordIndex([][]string{{""}, {"boot"}})
	if idx.PatternCount() != 1 {
		t.Errorf("PatternCount = %d, want 1", idx.PatternCount())
	}
	if idx.Groups() != 2 {
		t.Errorf("Groups = %d, want 2", idx.Groups())
	}
	if _, ok := idx.FirstGroup("anything"); ok {
		t.Error("empty keyword must not match")
	}

	var nilIdx *KeywordIndex
	if nilIdx.Contains("boot") {
		t.Error("nil index must not match")
	}
}

func TestKeywordIndex_ConcurrentReads(t *testing.T) {
	t.Parallel()

	idx := NewKeywordIndex([][]string{{"glove", "gauntlet"}, {"boot"}})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if g, ok := idx.FirstGroup("alpinestars-sp-8-gloves"); !ok || g != 0 {
					t.Errorf("unexpected result (%d, %v)", g, ok)
					return
				}
			}
		}()
	}
	wg.Wait()
}
