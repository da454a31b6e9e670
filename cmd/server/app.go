// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"runtime"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/api"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/config"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/events"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/logging"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/metrics"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/recommend"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/source"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/supervisor"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app holds the wired server components.
type app struct {
	cfg       *config.Config
	store     *recommend.Store
	refresher *source.Refresher
	engine    *recommend.Engine
	bus       *events.Bus
	handler   *api.Handler
	server    *http.Server
	tree      *supervisor.SupervisorTree
	logger    zerolog.Logger
}

// newApp wires every component from cfg. Nothing is started.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func newApp(cfg *config.Config, logger zerolog.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger, store: recommend.NewStore()}

	var err error
	a.refresher, err = source.NewRefresher(cfg.SourceConfig(), a.store, logger)
	if err != nil {
		return nil, fmt.Errorf("rules refresher: %w", err)
	}
	a.engine, err = recommend.NewEngine(cfg.EngineConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	a.bus, err = events.NewBus(logger)
	if err != nil {
		return nil, fmt.Errorf("event bus: %w", err)
	}

	a.handler, err = api.NewHandler(api.HandlerDeps{
		Engine: a.engine,
		Rules:  a.refresher,
		Storefront: api.Storefront{
			BaseURL:            cfg.Storefront.BaseURL,
			ProductPathPattern: cfg.Storefront.ProductPathPattern,
		},
		Cache: api.CacheOptions{
			Enabled:  cfg.Cache.Enabled,
			Capacity: cfg.Cache.Capacity,
			TTL:      cfg.Cache.TTL,
		},
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("api handler: %w", err)
	}

	// Subscribers must be registered before the bus serves.
	a.handler.SubscribeInvalidation(a.bus)
	reloadLog := logger.With().Str("component", "rules").Logger()
	a.bus.OnRulesReloaded("reload-log", func(_ context.Context, ev events.RulesReloaded) error {
		reloadLog.Info().
			Str("event_id", ev.EventID).
			Uint64("version", ev.Version).
			Str("source", ev.Source).
			Int("explicit_products", ev.Counts.ExplicitProducts).
			Int("category_rules", ev.Counts.CategoryRules).
			Int("pool_size", ev.PoolSize).
			Msg("rules snapshot published")
		return nil
	})
	a.refresher.OnPublish(func(snap *recommend.Snapshot) {
		if err := a.bus.PublishRulesReloaded(snap); err != nil {
			reloadLog.Warn().Err(err).Msg("failed to announce rules reload")
		}
	})

	router := api.NewRouter(a.handler, api.NewChiMiddleware(chiConfig(cfg)), logger)
	a.server = &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       2 * cfg.Server.WriteTimeout,
	}

	// The slog adapter bridges zerolog for sutureslog.
	a.tree, err = supervisor.NewSupervisorTree(logging.NewSlogLoggerWith(logger), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("supervisor tree: %w", err)
	}
	a.tree.AddRulesService(a.refresher)
	a.tree.AddMessagingService(services.NewFinalService(a.bus, logger))
	a.tree.AddAPIService(services.NewHTTPServerService(a.server, a.server.Addr, cfg.Server.ShutdownTimeout, logger))
	a.tree.AddAPIService(services.NewStatsService(a.engine, a.store, services.DefaultStatsInterval, logger))

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
	return a, nil
}

// run serves the supervisor tree until ctx is canceled, then reports
// services that did not stop in time.
func (a *app) run(ctx context.Context) error {
	a.logger.Info().Str("addr", a.server.Addr).Msg("Starting supervisor tree")
	err := a.tree.Serve(ctx)

	unstopped, reportErr := a.tree.UnstoppedServiceReport()
	if reportErr == nil && len(unstopped) > 0 {
		a.logger.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			a.logger.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}
	if closeErr := a.bus.Close(); closeErr != nil {
		a.logger.Debug().Err(closeErr).Msg("event bus close")
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// chiConfig maps the security settings onto the router middleware.
func chiConfig(cfg *config.Config) *api.ChiMiddlewareConfig {
	mw := api.DefaultChiMiddlewareConfig()
	if len(cfg.Security.CORSOrigins) > 0 {
		mw.CORSAllowedOrigins = cfg.Security.CORSOrigins
	}
	mw.RateLimitRequests = cfg.Security.RateLimitReqs
	mw.RateLimitWindow = cfg.Security.RateLimitWindow
	mw.RateLimitDisabled = cfg.Security.RateLimitDisabled
	return mw
}
