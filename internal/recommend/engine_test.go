// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package recommend

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/rules"
)

const tableHeader = "Product ID,Recommended Product ID,Label,Type,Priority\n"

func mustSnapshot(t *testing.T, rows ...string) *Snapshot {
	t.Helper()
	table, err := rules.Parse(strings.NewReader(tableHeader + strings.Join(rows, "\n") + "\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return NewSnapshot(table, RuntimeClassifier(), "test")
}

func newTestEngine(t *testing.T, cfg *Config) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func recIDs(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func backfilled(id string) Recommendation {
	return Recommendation{
		Entry:      rules.Entry{ID: id, Label: "Recommended item", Priority: rules.PriorityTertiary},
		Backfilled: true,
	}
}

func TestResolve_SingleExplicitEntry(t *testing.T) {
	t.Parallel()

	snap := mustSnapshot(t, "alpinestars-supertech-r10-helmet,pinlock-earplug-set-w-case,,Explicit,")
	e := newTestEngine(t, nil)

	got := e.Resolve(snap, "alpinestars-supertech-r10-helmet")
	want := []Recommendation{{Entry: rules.Entry{ID: "pinlock-earplug-set-w-case"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}

	agg := e.Aggregate(snap, []string{"alpinestars-supertech-r10-helmet"})
	wantAgg := []AggregateItem{{ID: "pinlock-earplug-set-w-case", Support: 1}}
	if diff := cmp.Diff(wantAgg, agg.Recommendations); diff != "" {
		t.Errorf("Aggregate mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyConstraints_PriorityAndTypeDiversity(t *testing.T) {
	t.Parallel()

	snap := mustSnapshot(t,
		"shoei-rf-1400-helmet,shoei-cwr-f2-clear-visor,Clear visor,,Secondary",
		"shoei-rf-1400-helmet,shoei-cwr-f2-dark-visor,Dark visor,,Primary",
		"shoei-rf-1400-helmet,alpinestars-smx-gloves,Gloves,,Tertiary",
		"shoei-rf-1400-helmet,dainese-jacket,,,",
		"shoei-rf-1400-helmet,sidi-boots,Boots,,Primary",
	)
	e := newTestEngine(t, nil)

	got := e.Resolve(snap, "shoei-rf-1400-helmet")
	want := []Recommendation{
		{Entry: rules.Entry{ID: "shoei-cwr-f2-dark-visor", Label: "Dark visor", Priority: rules.PriorityPrimary}},
		{Entry: rules.Entry{ID: "sidi-boots", Label: "Boots", Priority: rules.PriorityPrimary}},
		{Entry: rules.Entry{ID: "alpinestars-smx-gloves", Label: "Gloves", Priority: rules.PriorityTertiary}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyConstraints_BackfillDesiredTypes(t *testing.T) {
	t.Parallel()

	snap := mustSnapshot(t,
		"icon-airflite-helmet,icon-airflite-visor,Visor,,",
		"alpinestars-gp-jacket,alpinestars-sp-8-gloves,,,",
		"alpinestars-gp-jacket,tcx-boots,,,",
	)
	e := newTestEngine(t, nil)

	got := e.Resolve(snap, "icon-airflite-helmet")
	want := []Recommendation{
		{Entry: rules.Entry{ID: "icon-airflite-visor", Label: "Visor"}},
		backfilled("alpinestars-sp-8-gloves"),
		backfilled("alpinestars-gp-jacket"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyConstraints_AnyTypeBackfillFollowsPoolOrder(t *testing.T) {
	t.Parallel()

	snap := mustSnapshot(t,
		"kriega-r20-backpack,sena-50s-headset,,,",
		"shoei-gt-air-helmet,shoei-cns-1-shield,,,",
	)
	e := newTestEngine(t, nil)

	got := recIDs(e.Resolve(snap, "kriega-r20-backpack"))
	want := []string{"sena-50s-headset", "shoei-cns-1-shield", "shoei-gt-air-helmet"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyConstraints_UnknownIsOneType(t *testing.T) {
	t.Parallel()

	snap := mustSnapshot(t,
		"foo-widget,bar-gadget,,,",
		"foo-widget,baz-gizmo,,,",
	)
	e := newTestEngine(t, nil)

	got := recIDs(e.Resolve(snap, "foo-widget"))
	if diff := cmp.Diff([]string{"bar-gadget"}, got); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyConstraints_NeverReturnsSource(t *testing.T) {
	t.Parallel()

	snap := mustSnapshot(t,
		"shoei-gt-air-helmet,shoei-gt-air-helmet,,,Primary",
		"shoei-gt-air-helmet,,,,",
		"arai-regent-x-helmet,shoei-gt-air-helmet,,,",
	)
	e := newTestEngine(t, nil)

	for _, rec := range e.Resolve(snap, "shoei-gt-air-helmet") {
		if rec.ID == "shoei-gt-air-helmet" {
			t.Fatalf("source returned as its own recommendation")
		}
	}
}

func TestApplyConstraints_ApparelBrandFilter(t *testing.T) {
	t.Parallel()

	snap := mustSnapshot(t,
		"dainese-super-speed-jacket,alpinestars-missile-pants,,,Primary",
		"dainese-super-speed-jacket,dainese-delta-4-pants,Matching pants,,Secondary",
		"dainese-delta-4-pants,alpinestars-sp-8-gloves,,,",
		"dainese-delta-4-pants,dainese-carbon-4-gloves,,,",
	)
	e := newTestEngine(t, nil)

	got := e.Resolve(snap, "dainese-super-speed-jacket")
	want := []Recommendation{
		{Entry: rules.Entry{ID: "dainese-delta-4-pants", Label: "Matching pants", Priority: rules.PrioritySecondary}},
		backfilled("dainese-carbon-4-gloves"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyConstraints_GloveFallbackBrand(t *testing.T) {
	t.Parallel()

	rows := []string{
		"revit-tornado-4-jacket,revit-tornado-4-pants,,,",
		"dainese-delta-4-pants,dainese-carbon-4-gloves,,,",
		"dainese-delta-4-pants,alpinestars-sp-8-gloves,,,",
	}

	tests := []struct {
		name     string
		fallback string
		want     []string
	}{
		{"default fallback", "alpinestars", []string{"revit-tornado-4-pants", "alpinestars-sp-8-gloves"}},
		{"fallback disabled", "", []string{"revit-tornado-4-pants"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			cfg.GloveFallbackBrand = tt.fallback
			e := newTestEngine(t, cfg)
			got := recIDs(e.Resolve(mustSnapshot(t, rows...), "revit-tornado-4-jacket"))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyConstraints_Invariants(t *testing.T) {
	t.Parallel()

	snap := mustSnapshot(t,
		"dainese-super-speed-jacket,alpinestars-missile-pants,,,Primary",
		"dainese-super-speed-jacket,dainese-delta-4-pants,,,Secondary",
		"dainese-super-speed-jacket,dainese-super-speed-jacket,,,Primary",
		"dainese-delta-4-pants,alpinestars-sp-8-gloves,,,",
		"dainese-delta-4-pants,revit-sand-4-jacket,,,",
		"revit-sand-4-jacket,revit-sand-4-pants,,,",
		"revit-sand-4-jacket,held-gauntlet,,,",
		"shoei-rf-1400-helmet,shoei-cwr-f2-visor,,,",
		"shoei-rf-1400-helmet,shoei-cwr-f2-dark-visor,,,",
		"shoei-rf-1400-helmet,sidi-boots,,,",
		"sidi-boots,alpinestars-missile-pants,,,",
		"[boot | shoe] (any),bel-ray-chain-lube,,Category,",
	)
	cfg := DefaultConfig()
	cfg.GloveFallbackBrand = ""
	e := newTestEngine(t, cfg)
	cls := snap.Classifier()

	probes := append([]string{"tcx-street-3-shoe", "mystery"}, snap.Table.Sources()...)
	for _, src := range probes {
		recs := e.Resolve(snap, src)
		if len(recs) > MaxPerProduct {
			t.Errorf("%s: %d recommendations", src, len(recs))
		}
		srcType := cls.Classify(src)
		ids := make(map[string]bool)
		types := make(map[ProductType]bool)
		for _, r := range recs {
			rt := cls.Classify(r.ID)
			if r.ID == src {
				t.Errorf("%s: recommends itself", src)
			}
			if ids[r.ID] {
				t.Errorf("%s: duplicate id %s", src, r.ID)
			}
			if types[rt] {
				t.Errorf("%s: duplicate type %s", src, rt)
			}
			ids[r.ID] = true
			types[rt] = true
			if apparelSources[srcType] && apparelTargets[rt] && BrandToken(r.ID) != BrandToken(src) {
				t.Errorf("%s: %s breaks brand consistency", src, r.ID)
			}
		}
	}
}

func TestResolveDebug_MatchTypes(t *testing.T) {
	t.Parallel()

	snap := mustSnapshot(t,
		"[boot | shoe] (any product containing),bel-ray-chain-lube,Chain lube,Category,",
		"[boot | shoe] (any product containing),motul-chain-paste,,Category,",
		"sidi-boots,alpinestars-missile-pants,,,",
	)
	e := newTestEngine(t, nil)

	cat := e.ResolveDebug(snap, "alpinestars-tech-10-boots-2025")
	if cat.MatchType != MatchCategory {
		t.Fatalf("MatchType = %q, want category", cat.MatchType)
	}
	if diff := cmp.Diff([]string{"boot", "shoe"}, cat.MatchedKeywords); diff != "" {
		t.Errorf("MatchedKeywords mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"bel-ray-chain-lube", "alpinestars-missile-pants", "sidi-boots"}, recIDs(cat.Recommendations)); diff != "" {
		t.Errorf("category recommendations mismatch (-want +got):\n%s", diff)
	}

	exp := e.ResolveDebug(snap, " sidi-boots ")
	if exp.MatchType != MatchExplicit || exp.MatchedSource != "sidi-boots" {
		t.Errorf("explicit match = %q/%q", exp.MatchType, exp.MatchedSource)
	}

	none := e.ResolveDebug(snap, "mystery")
	if none.MatchType != MatchNone {
		t.Errorf("MatchType = %q, want none", none.MatchType)
	}
	if none.Recommendations == nil || len(none.Recommendations) != 0 {
		t.Errorf("unmatched recommendations = %#v, want empty slice", none.Recommendations)
	}

	stats := e.Stats()
	if stats.Lookups != 3 || stats.ExplicitMatches != 1 || stats.CategoryMatches != 1 || stats.Unmatched != 1 {
		t.Errorf("Stats = %+v", stats)
	}
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	snap := mustSnapshot(t,
		"shoei-rf-1400-helmet,alpinestars-sp-8-gloves,,,",
		"shoei-rf-1400-helmet,sidi-boots,Boots,,Primary",
		"arai-signet-x-helmet,alpinestars-sp-8-gloves,Gloves,,Secondary",
	)
	e := newTestEngine(t, nil)

	t.Run("support ranks first", func(t *testing.T) {
		t.Parallel()
		got := e.Aggregate(snap, []string{"shoei-rf-1400-helmet", "arai-signet-x-helmet"})
		want := []AggregateItem{
			{ID: "sidi-boots", Label: "Boots", Priority: rules.PriorityPrimary, Support: 2},
			{ID: "alpinestars-sp-8-gloves", Label: "Gloves", Priority: rules.PrioritySecondary, Support: 2},
		}
		if diff := cmp.Diff(want, got.Recommendations); diff != "" {
			t.Errorf("Aggregate mismatch (-want +got):\n%s", diff)
		}
		if got.Matches[MatchExplicit] != 2 {
			t.Errorf("explicit matches = %d, want 2", got.Matches[MatchExplicit])
		}
	})

	t.Run("duplicate cart ids count once", func(t *testing.T) {
		t.Parallel()
		got := e.Aggregate(snap, []string{"shoei-rf-1400-helmet", " shoei-rf-1400-helmet"})
		want := []AggregateItem{
			{ID: "sidi-boots", Label: "Boots", Priority: rules.PriorityPrimary, Support: 1},
			{ID: "arai-signet-x-helmet", Label: "Recommended item", Priority: rules.PriorityTertiary, Support: 1},
			{ID: "alpinestars-sp-8-gloves", Support: 1},
		}
		if diff := cmp.Diff(want, got.Recommendations); diff != "" {
			t.Errorf("Aggregate mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"shoei-rf-1400-helmet", "shoei-rf-1400-helmet"}, got.CartProducts); diff != "" {
			t.Errorf("CartProducts mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ties order the same on every run", func(t *testing.T) {
		t.Parallel()
		tied := mustSnapshot(t,
			"shoei-rf-1400-helmet,sidi-boots,,,",
			"shoei-rf-1400-helmet,alpinestars-gp-jacket,,,",
			"arai-signet-x-helmet,dainese-carbon-gloves,,,",
			"arai-signet-x-helmet,alpinestars-gp-jacket,,,",
			"bell-race-star-helmet,dainese-carbon-gloves,,,",
		)
		cart := []string{"shoei-rf-1400-helmet", "arai-signet-x-helmet", "bell-race-star-helmet"}
		first := e.Aggregate(tied, cart).Recommendations
		if len(first) < 3 {
			t.Fatalf("Aggregate returned %d items, want at least 3", len(first))
		}
		for i := 1; i < len(first); i++ {
			if first[i].Support > first[i-1].Support {
				t.Errorf("support not descending at %d: %+v", i, first)
			}
		}
		for run := 0; run < 25; run++ {
			got := e.Aggregate(tied, cart).Recommendations
			if diff := cmp.Diff(first, got); diff != "" {
				t.Fatalf("run %d order changed (-first +got):\n%s", run, diff)
			}
		}
	})

	t.Run("empty cart", func(t *testing.T) {
		t.Parallel()
		got := e.Aggregate(snap, []string{" ", ""})
		if got.Message != "No products in cart" {
			t.Errorf("Message = %q", got.Message)
		}
		if len(got.Recommendations) != 0 || len(got.CartProducts) != 0 {
			t.Errorf("expected empty result, got %+v", got)
		}
	})
}

func TestResolveDebug_BracketRowNeedsCategoryType(t *testing.T) {
	t.Parallel()

	snap := mustSnapshot(t,
		"[boot] note,bel-ray-super-clean-chain-lube,,Explicit,",
	)
	if n := len(snap.Table.CategoryRules()); n != 0 {
		t.Fatalf("len(CategoryRules) = %d, want 0", n)
	}
	e := newTestEngine(t, nil)

	if got := e.ResolveDebug(snap, "sidi-boots"); got.MatchType != MatchNone {
		t.Errorf("sidi-boots MatchType = %q, want none", got.MatchType)
	}
	if got := e.ResolveDebug(snap, "[boot] note"); got.MatchType != MatchExplicit {
		t.Errorf("bracket source MatchType = %q, want explicit", got.MatchType)
	}
}

func TestParseCart(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff([]string{"a", "b"}, ParseCart(" a, ,b ,,")); diff != "" {
		t.Errorf("ParseCart mismatch (-want +got):\n%s", diff)
	}
	if got := ParseCart(""); len(got) != 0 {
		t.Errorf("ParseCart(\"\") = %v, want empty", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"limit zero", func(c *Config) { c.Limit = 0 }, true},
		{"limit above cap", func(c *Config) { c.Limit = 4 }, true},
		{"limit one", func(c *Config) { c.Limit = 1 }, false},
		{"empty label", func(c *Config) { c.BackfillLabel = "" }, true},
		{"bad priority", func(c *Config) { c.BackfillPriority = "Urgent" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if _, err := NewEngine(&Config{}, zerolog.Nop()); err == nil {
		t.Error("NewEngine accepted an invalid config")
	}
}

func TestStore_PublishIsAtomic(t *testing.T) {
	t.Parallel()

	store := NewStore()
	if store.Current() == nil || store.Current().Version != 0 {
		t.Fatal("new store should hold an empty snapshot at version 0")
	}

	e := newTestEngine(t, nil)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				snap := store.Current()
				_ = e.Resolve(snap, "shoei-rf-1400-helmet")
			}
		}()
	}
	for i := 0; i < 10; i++ {
		store.Publish(mustSnapshot(t, "shoei-rf-1400-helmet,sidi-boots,,,"))
	}
	wg.Wait()

	if got := store.Current().Version; got != 10 {
		t.Errorf("Version = %d, want 10", got)
	}
}
