// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/config"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(cfg.LogConfig())

	logging.Info().
		Str("rules_path", cfg.Rules.Path).
		Bool("rules_remote", cfg.Rules.URL != "").
		Int("port", cfg.Server.Port).
		Msg("Starting FBT server with supervisor tree")
	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin; set CORS_ORIGINS to the storefront domains")
	}

	a, err := newApp(cfg, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
		stop()
		os.Exit(1)
	}
	logging.Info().Msg("Application stopped gracefully")
}
