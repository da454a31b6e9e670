// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/metrics"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/validate"
)

type validateFlags struct {
	opts      validate.Options
	asJSON    bool
	maxOutput int
}

func newValidateCmd(g *globals) *cobra.Command {
	f := &validateFlags{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate recommendation CSV quality and compatibility",
		Long: `Validate checks every row of the rule table.

Exit codes: 0 when there are no errors, 1 when errors were found and
2 when the CSV does not exist.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			code := runValidate(cmd.OutOrStdout(), g, f)
			if code != 0 {
				return &exitError{code: code}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&f.opts.Strict, "strict", false, "Require verified source-backed compatibility for fit-sensitive helmet accessories")
	cmd.Flags().BoolVar(&f.opts.AllowHeuristicFit, "allow-heuristic-fit", false, "In strict mode, downgrade a missing proof to a warning when brand/model tokens overlap")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Print the report as JSON")
	cmd.Flags().IntVar(&f.maxOutput, "max-output", 50, "Max errors/warnings to print per section")
	return cmd
}

// runValidate validates once and returns the exit code.
func runValidate(out io.Writer, g *globals, f *validateFlags) int {
	report, err := validate.NewValidator(g.logger).ValidateFile(g.csvPath, g.proofsPath, f.opts)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(out, "ERROR: CSV not found: %s\n", g.csvPath)
		metrics.RecordValidation("missing", nil)
		return exitNotFound
	}
	if err != nil {
		fmt.Fprintf(out, "ERROR: %v\n", err)
		return exitFailed
	}

	result := "passed"
	if report.Failed() {
		result = "failed"
	}
	metrics.RecordValidation(result, report.Tally())

	if f.asJSON {
		err = validate.WriteJSON(out, report)
	} else {
		err = validate.WriteSummary(out, report, g.proofsPath, f.maxOutput)
	}
	if err != nil {
		g.logger.Error().Err(err).Msg("failed to write report")
		return exitFailed
	}
	if report.Failed() {
		return exitFailed
	}
	return 0
}
