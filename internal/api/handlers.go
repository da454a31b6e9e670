// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package api

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/cache"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/events"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/metrics"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/recommend"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/source"
)

// RulesSource supplies rule snapshots. *source.Refresher implements it.
type RulesSource interface {
	Current(ctx context.Context) *recommend.Snapshot
	Reload(ctx context.Context) (*recommend.Snapshot, error)
	Health() source.Health
	Config() source.Config
}

// Storefront builds product page URLs for the catalog endpoint.
type Storefront struct {
	BaseURL            string
	ProductPathPattern string
}

// CacheOptions sizes the cart response cache. A disabled cache is never
// consulted.
type CacheOptions struct {
	Enabled  bool
	Capacity int
	TTL      time.Duration
}

// HandlerDeps groups the dependencies of NewHandler.
type HandlerDeps struct {
	Engine     *recommend.Engine
	Rules      RulesSource
	Storefront Storefront
	Cache      CacheOptions
	Logger     zerolog.Logger
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, cache management (this file)
//   - handlers_helpers.go: shared response and parsing helpers
//   - handlers_fbt.go: storefront endpoints (fbt, debug, catalog)
//   - handlers_health.go: health, reload and stats
type Handler struct {
	engine     *recommend.Engine
	rules      RulesSource
	storefront Storefront
	cache      *cache.LRU[[]byte]
	logger     zerolog.Logger
	startTime  time.Time
}

// NewHandler creates a new API handler.
//
//nolint:gocritic // deps passed by value, built once at startup
func NewHandler(deps HandlerDeps) (*Handler, error) {
	if deps.Engine == nil {
		return nil, fmt.Errorf("%w: engine", ErrNilDependency)
	}
	if deps.Rules == nil {
		return nil, fmt.Errorf("%w: rules source", ErrNilDependency)
	}
	if deps.Storefront.ProductPathPattern == "" {
		deps.Storefront.ProductPathPattern = DefaultProductPathPattern
	}

	h := &Handler{
		engine:     deps.Engine,
		rules:      deps.Rules,
		storefront: deps.Storefront,
		logger:     deps.Logger.With().Str("component", "api").Logger(),
		startTime:  time.Now(),
	}
	if deps.Cache.Enabled {
		h.cache = cache.NewLRU[[]byte](deps.Cache.Capacity, deps.Cache.TTL)
	}
	return h, nil
}

// ClearCache drops every cached cart response.
//
// Thread Safety: Safe for concurrent access.
func (h *Handler) ClearCache() int {
	if h.cache == nil {
		return 0
	}
	n := h.cache.Clear()
	metrics.CacheInvalidations.Inc()
	h.logger.Debug().Int("entries", n).Msg("response cache cleared")
	return n
}

// SubscribeInvalidation clears the response cache whenever the bus
// announces a new rules snapshot. It must be called before the bus serves.
func (h *Handler) SubscribeInvalidation(bus *events.Bus) {
	bus.OnRulesReloaded("api-cache-invalidation", func(_ context.Context, ev events.RulesReloaded) error {
		n := h.ClearCache()
		h.logger.Info().
			Uint64("version", ev.Version).
			Str("source", ev.Source).
			Int("dropped", n).
			Msg("rules reloaded, response cache invalidated")
		return nil
	})
}

// cachedResponse returns the encoded body for key, if cached.
func (h *Handler) cachedResponse(key string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}
	body, ok := h.cache.Get(key)
	if ok {
		metrics.CacheHits.Inc()
	} else {
		metrics.CacheMisses.Inc()
	}
	return body, ok
}

func (h *Handler) storeResponse(key string, body []byte) {
	if h.cache != nil {
		h.cache.Add(key, body)
	}
}
