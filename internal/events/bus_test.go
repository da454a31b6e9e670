// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package events

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/recommend"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/rules"
)

func testSnapshot(t *testing.T) *recommend.Snapshot {
	t.Helper()
	csv := "Product ID,Recommended Product ID,Label,Type,Priority\n" +
		"shoei-rf-1400-helmet,shoei-cwr-f2-visor,,,\n" +
		"[boot | shoe],sidi-socks,,Category,\n"
	table, err := rules.Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	store := recommend.NewStore()
	return store.Publish(recommend.NewSnapshot(table, nil, "remote"))
}

func TestNewRulesReloaded(t *testing.T) {
	t.Parallel()

	snap := testSnapshot(t)
	ev := NewRulesReloaded(snap)
	if ev.EventID == "" || ev.Version != 1 || ev.Source != "remote" {
		t.Errorf("event = %+v", ev)
	}
	want := rules.Counts{ExplicitProducts: 1, ExplicitRows: 1, CategoryRules: 1, CategoryRows: 1}
	if ev.Counts != want {
		t.Errorf("counts = %+v, want %+v", ev.Counts, want)
	}
}

func TestBus_DeliversRulesReloaded(t *testing.T) {
	t.Parallel()

	bus, err := NewBus(zerolog.Nop())
	if err != nil {
		t.Fatalf("NewBus: %v", err)
	}
	got := make(chan RulesReloaded, 1)
	bus.OnRulesReloaded("test-consumer", func(_ context.Context, ev RulesReloaded) error {
		got <- ev
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- bus.Serve(ctx) }()

	select {
	case <-bus.Running():
	case <-time.After(5 * time.Second):
		t.Fatal("router did not start")
	}

	snap := testSnapshot(t)
	if err := bus.PublishRulesReloaded(snap); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case ev := <-got:
		if ev.Version != snap.Version || ev.Source != "remote" || ev.PoolSize != snap.Pool.Size() {
			t.Errorf("received %+v", ev)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("event not delivered")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	_ = bus.Close()
}

func TestBus_String(t *testing.T) {
	t.Parallel()

	bus, err := NewBus(zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if bus.String() != "event-bus" {
		t.Errorf("String() = %q", bus.String())
	}
	_ = bus.Close()
}
