// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/recommend"
)

// DefaultStatsInterval is used when StatsService is given no interval.
const DefaultStatsInterval = 5 * time.Minute

// StatsSource exposes engine counters and the published snapshot.
type StatsSource interface {
	Stats() recommend.Stats
}

// SnapshotSource returns the snapshot currently served.
type SnapshotSource interface {
	Current() *recommend.Snapshot
}

// StatsService periodically logs engine counters together with the
// version of the snapshot being served. Nothing is logged for an idle
// interval.
type StatsService struct {
	engine   StatsSource
	store    SnapshotSource
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewStatsService creates a stats reporter.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStatsService(engine StatsSource, store SnapshotSource, interval time.Duration, logger zerolog.Logger) *StatsService {
	if interval <= 0 {
		interval = DefaultStatsInterval
	}
	return &StatsService{
		engine:   engine,
		store:    store,
		interval: interval,
		logger:   logger.With().Str("service", "stats").Logger(),
		name:     "stats-reporter",
	}
}

// Serve implements suture.Service.
func (s *StatsService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	last := s.engine.Stats()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			last = s.report(last)
		}
	}
}

// report logs the counters accumulated since prev and returns the new
// baseline.
func (s *StatsService) report(prev recommend.Stats) recommend.Stats {
	cur := s.engine.Stats()
	if cur == prev {
		return cur
	}
	ev := s.logger.Info().
		Int64("lookups", cur.Lookups-prev.Lookups).
		Int64("explicit", cur.ExplicitMatches-prev.ExplicitMatches).
		Int64("category", cur.CategoryMatches-prev.CategoryMatches).
		Int64("unmatched", cur.Unmatched-prev.Unmatched).
		Int64("backfilled", cur.Backfilled-prev.Backfilled).
		Int64("carts", cur.Carts-prev.Carts)
	if snap := s.store.Current(); snap != nil {
		ev = ev.Uint64("rules_version", snap.Version).Str("rules_source", snap.Source)
	}
	ev.Dur("interval", s.interval).Msg("recommendation activity")
	return cur
}

// String returns the service name for logging.
func (s *StatsService) String() string {
	return s.name
}
