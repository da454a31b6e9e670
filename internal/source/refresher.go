// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/metrics"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/recommend"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/rules"
)

// Source labels reported on snapshots and by the health endpoint.
const (
	SourceLocal         = "local"
	SourceRemote        = "remote"
	SourceLocalFallback = "local-fallback"
)

// ErrReloadThrottled is returned by Reload when forced reloads arrive
// faster than the configured rate.
var ErrReloadThrottled = errors.New("rules reload throttled")

// Config configures where rules come from and how often they refresh.
type Config struct {
	// Path of the local CSV, used alone or as the remote fallback.
	Path string
	// URL of the remote CSV. Empty selects local-only mode.
	URL string
	// Refresh is how long a remote snapshot stays fresh.
	Refresh time.Duration
	// Timeout bounds one remote fetch.
	Timeout time.Duration
	// ReloadInterval and ReloadBurst throttle forced reloads.
	ReloadInterval time.Duration
	ReloadBurst    int
	Breaker        BreakerSettings
}

// DefaultConfig returns a local-only configuration.
func DefaultConfig() Config {
	return Config{
		Path:           "product_recommendations.csv",
		Refresh:        30 * time.Second,
		Timeout:        8 * time.Second,
		ReloadInterval: 2 * time.Second,
		ReloadBurst:    3,
		Breaker:        DefaultBreakerSettings(),
	}
}

// Health is the refresh state reported by /api/health.
type Health struct {
	Status           string  `json:"status"`
	CSVPath          string  `json:"csv_path"`
	CSVURL           *string `json:"csv_url"`
	ActiveSource     string  `json:"active_source"`
	LastRefreshEpoch float64 `json:"last_refresh_epoch"`
	RefreshSeconds   int     `json:"refresh_seconds"`
	LastError        *string `json:"last_error"`
	BreakerState     string  `json:"breaker_state,omitempty"`
	RulesVersion     uint64  `json:"rules_version"`
}

// Refresher loads rule tables and publishes them to a store.
type Refresher struct {
	cfg        Config
	store      *recommend.Store
	classifier *recommend.Classifier
	remote     *RemoteFetcher
	limiter    *rate.Limiter
	group      singleflight.Group
	logger     zerolog.Logger
	now        func() time.Time

	mu        sync.Mutex
	fetchedAt time.Time
	lastError string
	stamp     fileStamp
	loaded    bool
	listeners []func(*recommend.Snapshot)
}

// NewRefresher validates cfg and creates a refresher publishing into store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRefresher(cfg Config, store *recommend.Store, logger zerolog.Logger) (*Refresher, error) {
	if store == nil {
		return nil, errors.New("source: store is required")
	}
	def := DefaultConfig()
	if cfg.Refresh <= 0 {
		cfg.Refresh = def.Refresh
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.ReloadInterval <= 0 {
		cfg.ReloadInterval = def.ReloadInterval
	}
	if cfg.ReloadBurst <= 0 {
		cfg.ReloadBurst = def.ReloadBurst
	}
	if cfg.Breaker == (BreakerSettings{}) {
		cfg.Breaker = def.Breaker
	}

	r := &Refresher{
		cfg:        cfg,
		store:      store,
		classifier: recommend.RuntimeClassifier(),
		limiter:    rate.NewLimiter(rate.Every(cfg.ReloadInterval), cfg.ReloadBurst),
		logger:     logger.With().Str("component", "source").Logger(),
		now:        time.Now,
	}
	if cfg.URL != "" {
		u, err := url.Parse(cfg.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("source: invalid rules URL %q", cfg.URL)
		}
		r.remote = NewRemoteFetcher(cfg.URL, cfg.Timeout, cfg.Breaker, logger)
	}
	return r, nil
}

// OnPublish registers fn to run after every published snapshot.
func (r *Refresher) OnPublish(fn func(*recommend.Snapshot)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Remote reports whether a rules URL is configured.
func (r *Refresher) Remote() bool {
	return r.remote != nil
}

// Config returns the effective configuration.
func (r *Refresher) Config() Config {
	return r.cfg
}

// Current returns a snapshot that honours the refresh policy: in local mode
// the file is rechecked, in remote mode a stale snapshot triggers a fetch.
func (r *Refresher) Current(ctx context.Context) *recommend.Snapshot {
	if r.remote == nil {
		return r.refresh(ctx, false)
	}
	r.mu.Lock()
	fresh := r.loaded && r.now().Sub(r.fetchedAt) < r.cfg.Refresh
	r.mu.Unlock()
	if cur := r.store.Current(); fresh && hasRules(cur) {
		return cur
	}
	return r.refresh(ctx, false)
}

// Reload forces a refresh regardless of freshness.
func (r *Refresher) Reload(ctx context.Context) (*recommend.Snapshot, error) {
	if !r.limiter.Allow() {
		return nil, ErrReloadThrottled
	}
	return r.refresh(ctx, true), nil
}

// Health reports the refresh state.
func (r *Refresher) Health() Health {
	snap := r.store.Current()
	r.mu.Lock()
	defer r.mu.Unlock()

	h := Health{
		Status:         "ok",
		CSVPath:        r.cfg.Path,
		ActiveSource:   snap.Source,
		RefreshSeconds: int(r.cfg.Refresh / time.Second),
		RulesVersion:   snap.Version,
	}
	if h.ActiveSource == "" {
		h.ActiveSource = SourceLocal
	}
	if !r.fetchedAt.IsZero() {
		h.LastRefreshEpoch = float64(r.fetchedAt.UnixNano()) / float64(time.Second)
	}
	if r.remote != nil {
		u := r.cfg.URL
		h.CSVURL = &u
		h.BreakerState = r.remote.State()
	}
	if r.lastError != "" {
		msg := r.lastError
		h.LastError = &msg
	}
	return h
}

func (r *Refresher) refresh(ctx context.Context, force bool) *recommend.Snapshot {
	key := "rules"
	if force {
		key = "rules-forced"
	}
	v, _, _ := r.group.Do(key, func() (any, error) {
		if r.remote == nil {
			return r.refreshLocal(force), nil
		}
		return r.refreshRemote(ctx), nil
	})
	return v.(*recommend.Snapshot)
}

func (r *Refresher) refreshLocal(force bool) *recommend.Snapshot {
	stamp := statFile(r.cfg.Path)

	r.mu.Lock()
	r.fetchedAt = r.now()
	unchanged := r.loaded && stamp.same(r.stamp)
	r.mu.Unlock()
	if unchanged && !force {
		return r.store.Current()
	}

	table, err := LoadLocal(r.cfg.Path)
	metrics.RecordRulesReload(SourceLocal, err)

	r.mu.Lock()
	r.stamp = stamp
	r.loaded = true
	r.lastError = ""
	if err != nil {
		r.lastError = err.Error()
	}
	r.mu.Unlock()

	if err != nil {
		// Not retried until the file changes again.
		r.logger.Error().Err(err).Str("path", r.cfg.Path).Msg("local rules unreadable, keeping previous snapshot")
		return r.store.Current()
	}
	return r.publish(table, SourceLocal)
}

func (r *Refresher) refreshRemote(ctx context.Context) *recommend.Snapshot {
	table, err := r.remote.Fetch(ctx)
	metrics.RecordRulesReload(SourceRemote, err)
	if err == nil {
		r.mu.Lock()
		r.fetchedAt = r.now()
		r.loaded = true
		r.lastError = ""
		r.mu.Unlock()
		return r.publish(table, SourceRemote)
	}

	r.setError(err)
	if cur := r.store.Current(); hasRules(cur) {
		r.logger.Warn().Err(err).Str("active_source", cur.Source).Msg("remote rules fetch failed, serving stale snapshot")
		return cur
	}

	r.logger.Warn().Err(err).Str("path", r.cfg.Path).Msg("remote rules fetch failed, falling back to local file")
	table, lerr := LoadLocal(r.cfg.Path)
	metrics.RecordRulesReload(SourceLocalFallback, lerr)
	if lerr != nil {
		r.logger.Error().Err(lerr).Str("path", r.cfg.Path).Msg("local fallback unreadable")
		return r.store.Current()
	}
	r.mu.Lock()
	r.fetchedAt = r.now()
	r.loaded = true
	r.mu.Unlock()
	return r.publish(table, SourceLocalFallback)
}

func (r *Refresher) setError(err error) {
	r.mu.Lock()
	r.lastError = err.Error()
	r.mu.Unlock()
}

func (r *Refresher) publish(table *rules.Table, source string) *recommend.Snapshot {
	snap := r.store.Publish(recommend.NewSnapshot(table, r.classifier, source))
	counts := table.Counts()
	metrics.SetRulesSnapshot(snap.Version, map[string]int{
		"explicit_products": counts.ExplicitProducts,
		"explicit_rows":     counts.ExplicitRows,
		"category_rules":    counts.CategoryRules,
		"category_rows":     counts.CategoryRows,
		"pool":              snap.Pool.Size(),
	})
	r.logger.Info().
		Uint64("version", snap.Version).
		Str("source", source).
		Int("explicit_products", counts.ExplicitProducts).
		Int("category_rules", counts.CategoryRules).
		Int("skipped_rows", table.Skipped()).
		Msg("rules published")

	r.mu.Lock()
	listeners := append([]func(*recommend.Snapshot){}, r.listeners...)
	r.mu.Unlock()
	for _, fn := range listeners {
		fn(snap)
	}
	return snap
}

// Serve implements suture.Service. It loads rules immediately and then
// refreshes on every interval until ctx is canceled.
func (r *Refresher) Serve(ctx context.Context) error {
	r.logger.Info().
		Bool("remote", r.remote != nil).
		Dur("refresh", r.cfg.Refresh).
		Msg("rules refresher starting")
	r.Current(ctx)

	ticker := time.NewTicker(r.cfg.Refresh)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.Current(ctx)
		}
	}
}

// String implements fmt.Stringer for supervisor logging.
func (r *Refresher) String() string {
	return "rules-refresher"
}

func hasRules(snap *recommend.Snapshot) bool {
	c := snap.Table.Counts()
	return c.ExplicitProducts > 0 || c.CategoryRules > 0
}
