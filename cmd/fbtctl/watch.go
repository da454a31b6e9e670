// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/metrics"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/validate"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/watch"
)

type watchFlags struct {
	opts        validate.Options
	settle      time.Duration
	minInterval time.Duration
	maxOutput   int
}

func newWatchCmd(g *globals) *cobra.Command {
	f := &watchFlags{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Revalidate the rule table whenever it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd.Context(), cmd.OutOrStdout(), g, f)
		},
	}
	cmd.Flags().BoolVar(&f.opts.Strict, "strict", false, "Require source-backed proof for fit-sensitive helmet accessories")
	cmd.Flags().BoolVar(&f.opts.AllowHeuristicFit, "allow-heuristic-fit", false, "In strict mode, treat brand/model overlap as a warning when proof is missing")
	cmd.Flags().DurationVar(&f.settle, "settle", 750*time.Millisecond, "Wait this long after the last change before validating")
	cmd.Flags().DurationVar(&f.minInterval, "min-interval", time.Second, "Minimum time between two validations")
	cmd.Flags().IntVar(&f.maxOutput, "max-output", 20, "Max errors/warnings to print per section")
	return cmd
}

func clock() string {
	return time.Now().Format("15:04:05")
}

func runWatch(ctx context.Context, out io.Writer, g *globals, f *watchFlags) error {
	w, err := watch.New(watch.Config{
		Paths:       []string{g.csvPath, g.proofsPath},
		Settle:      f.settle,
		MinInterval: f.minInterval,
	}, func(context.Context) {
		if _, err := os.Stat(g.csvPath); err != nil {
			fmt.Fprintf(out, "[%s] Change detected but CSV is missing: %s\n", clock(), g.csvPath)
			return
		}
		fmt.Fprintf(out, "[%s] Change detected, running validation...\n", clock())
		watchValidation(out, g, f)
	}, g.logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "[%s] Watching for updates: %s\n", clock(), g.csvPath)
	fmt.Fprintf(out, "[%s] Press Ctrl+C to stop.\n", clock())
	if _, err := os.Stat(g.csvPath); err == nil {
		watchValidation(out, g, f)
	} else {
		fmt.Fprintf(out, "[%s] CSV not found yet: %s\n", clock(), g.csvPath)
	}

	if err := w.Run(ctx); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n[%s] Watch stopped.\n", clock())
	return nil
}

// watchValidation prints the compact timestamped report and returns the
// exit code validate would have used.
func watchValidation(out io.Writer, g *globals, f *watchFlags) int {
	report, err := validate.NewValidator(g.logger).ValidateFile(g.csvPath, g.proofsPath, f.opts)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(out, "[%s] Change detected but CSV is missing: %s\n", clock(), g.csvPath)
		metrics.RecordValidation("missing", nil)
		return exitNotFound
	}
	if err != nil {
		fmt.Fprintf(out, "[%s] ERROR: %v\n", clock(), err)
		return exitFailed
	}

	fmt.Fprintf(out, "\n[%s] Checked: %s\n", clock(), g.csvPath)
	fmt.Fprintf(out, "[%s] Errors: %d | Warnings: %d\n", clock(), len(report.Errors), len(report.Warnings))
	printIssues(out, "Top errors", report.Errors, f.maxOutput, "errors")
	printIssues(out, "Top warnings", report.Warnings, f.maxOutput, "warnings")

	if report.Failed() {
		metrics.RecordValidation("failed", report.Tally())
		fmt.Fprintf(out, "[%s] Validation failed.\n", clock())
		return exitFailed
	}
	metrics.RecordValidation("passed", report.Tally())
	fmt.Fprintf(out, "[%s] Validation passed.\n", clock())
	return 0
}

func printIssues(out io.Writer, title string, issues []validate.Issue, maxOutput int, noun string) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintf(out, "[%s] %s:\n", clock(), title)
	for i, is := range issues {
		if i >= maxOutput {
			fmt.Fprintf(out, "... and %d more %s\n", len(issues)-maxOutput, noun)
			return
		}
		fmt.Fprintf(out, "- %s\n", is.Message)
	}
}
