// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/config"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/logging"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/validate"
)

// globals is shared by every subcommand once the root pre-run finished.
type globals struct {
	csvPath    string
	proofsPath string
	logLevel   string

	weights validate.ScoreWeights
	logger  zerolog.Logger
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   "fbtctl",
		Short: "Maintain the frequently-bought-together rule table",
		Long: `fbtctl works on the CSV rule table served by the FBT server.

Paths default to the server configuration (RECOMMENDATIONS_CSV and
PROOFS_CSV, or the YAML file named by CONFIG_PATH) and can be overridden
with --csv and --proofs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&g.csvPath, "csv", "", "Path to recommendations CSV (default from config: product_recommendations.csv)")
	cmd.PersistentFlags().StringVar(&g.proofsPath, "proofs", "", "Path to compatibility proofs CSV (default from config: compatibility_proofs.csv)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newValidateCmd(g),
		newAutofixCmd(g),
		newProofsTemplateCmd(g),
		newWatchCmd(g),
	)
	return cmd
}

// init resolves paths and weights from the configuration layers unless
// the matching flag was given.
func (g *globals) init(cmd *cobra.Command) error {
	if !logging.ValidLevel(g.logLevel) {
		return fmt.Errorf("invalid --log-level %q", g.logLevel)
	}
	lvl := strings.ToLower(strings.TrimSpace(g.logLevel))
	if lvl == "warning" {
		lvl = "warn"
	}
	level, err := zerolog.ParseLevel(lvl)
	if err != nil {
		return err
	}
	g.logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		Level(level).
		With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if !cmd.Flags().Changed("csv") {
		g.csvPath = cfg.Rules.Path
	}
	if !cmd.Flags().Changed("proofs") {
		g.proofsPath = cfg.Validation.ProofsPath
	}
	g.weights = cfg.Validation.Weights
	return nil
}
