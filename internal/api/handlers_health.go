// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package api

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/recommend"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/rules"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/source"
)

type reloadResponse struct {
	Status  string  `json:"status"`
	CSVPath string  `json:"csv_path"`
	CSVURL  *string `json:"csv_url"`
	rules.Counts
	Source    string  `json:"source"`
	Version   uint64  `json:"rules_version"`
	LastError *string `json:"last_error"`
}

type cacheStats struct {
	Enabled bool  `json:"enabled"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Size    int   `json:"size"`
}

type statsResponse struct {
	Engine        recommend.Stats `json:"engine"`
	Cache         cacheStats      `json:"cache"`
	RulesVersion  uint64          `json:"rules_version"`
	PoolSize      int             `json:"pool_size"`
	UptimeSeconds float64         `json:"uptime_seconds"`
}

// Health handles GET /api/health
// Reports the rule source state. It never triggers a fetch.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.rules.Health())
}

// Reload handles POST /api/reload
// Forces a rule refresh and reports the resulting counts.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	snap, err := h.rules.Reload(r.Context())
	if errors.Is(err, source.ErrReloadThrottled) {
		interval := h.rules.Config().ReloadInterval
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(interval.Seconds()))))
		respondError(w, http.StatusTooManyRequests, CodeRateLimited, "Reload requested too frequently, retry later", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, CodeInternal, "Failed to reload rules", err)
		return
	}

	health := h.rules.Health()
	h.logger.Info().
		Str("source", snap.Source).
		Uint64("version", snap.Version).
		Msg("rules reload requested")

	respondJSON(w, http.StatusOK, &reloadResponse{
		Status:    "ok",
		CSVPath:   health.CSVPath,
		CSVURL:    health.CSVURL,
		Counts:    snap.Table.Counts(),
		Source:    snap.Source,
		Version:   snap.Version,
		LastError: health.LastError,
	})
}

// Stats handles GET /api/stats
// Returns engine counters and response cache statistics.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	snap := h.rules.Current(r.Context())
	resp := &statsResponse{
		Engine:        h.engine.Stats(),
		RulesVersion:  snap.Version,
		PoolSize:      snap.Pool.Size(),
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}
	if h.cache != nil {
		hits, misses, size := h.cache.Stats()
		resp.Cache = cacheStats{Enabled: true, Hits: hits, Misses: misses, Size: size}
	}
	respondJSON(w, http.StatusOK, resp)
}
