// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/rules"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/validate"
)

// backupLayout is the timestamp appended to in-place backups.
const backupLayout = "20060102-150405"

type autofixFlags struct {
	out       string
	inPlace   bool
	dryRun    bool
	maxOutput int
}

func newAutofixCmd(g *globals) *cobra.Command {
	f := &autofixFlags{}
	cmd := &cobra.Command{
		Use:   "autofix",
		Short: "Replace definite-mismatch recommendations",
		Long: `Autofix rewrites rows whose helmet accessory names a different helmet
brand than the source product. Replacements prefer verified compatibility
proofs; rows without a safe candidate are reported and left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			code := runAutofix(cmd.OutOrStdout(), g, f, time.Now())
			if code != 0 {
				return &exitError{code: code}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&f.out, "out", "product_recommendations.autofixed.csv", "Output CSV path for the fixed table")
	cmd.Flags().BoolVar(&f.inPlace, "in-place", false, "Overwrite the input CSV and keep a timestamped .bak backup")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Only print what would change")
	cmd.Flags().IntVar(&f.maxOutput, "max-output", 20, "Max changed/unresolved examples to print")
	return cmd
}

func runAutofix(out io.Writer, g *globals, f *autofixFlags, now time.Time) int {
	raw, err := os.ReadFile(g.csvPath)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(out, "ERROR: CSV not found: %s\n", g.csvPath)
		return exitNotFound
	}
	if err != nil {
		fmt.Fprintf(out, "ERROR: %v\n", err)
		return exitFailed
	}
	table, err := rules.Parse(bytes.NewReader(raw))
	if err != nil {
		fmt.Fprintf(out, "ERROR: %v\n", err)
		return exitNotFound
	}
	proofs, _, err := rules.LoadProofs(g.proofsPath)
	if err != nil {
		fmt.Fprintf(out, "ERROR: %v\n", err)
		return exitFailed
	}

	res := validate.NewFixer(g.weights, g.logger).Fix(table, proofs)
	if err := validate.WriteFixSummary(out, res, f.maxOutput); err != nil {
		return exitFailed
	}

	if f.dryRun {
		fmt.Fprintln(out, "\nDry run complete. No files written.")
		return 0
	}

	var buf bytes.Buffer
	if err := rules.Write(&buf, res.Table); err != nil {
		fmt.Fprintf(out, "ERROR: %v\n", err)
		return exitFailed
	}

	if f.inPlace {
		backup := g.csvPath + "." + now.Format(backupLayout) + ".bak"
		if err := os.WriteFile(backup, raw, 0o644); err != nil { //nolint:gosec // CSV is shared with spreadsheet tooling
			fmt.Fprintf(out, "ERROR: write backup: %v\n", err)
			return exitFailed
		}
		if err := os.WriteFile(g.csvPath, buf.Bytes(), 0o644); err != nil { //nolint:gosec // CSV is shared with spreadsheet tooling
			fmt.Fprintf(out, "ERROR: %v\n", err)
			return exitFailed
		}
		fmt.Fprintf(out, "\nWrote in-place updates to: %s\n", g.csvPath)
		fmt.Fprintf(out, "Backup created: %s\n", backup)
		return 0
	}

	if err := os.WriteFile(f.out, buf.Bytes(), 0o644); err != nil { //nolint:gosec // CSV is shared with spreadsheet tooling
		fmt.Fprintf(out, "ERROR: %v\n", err)
		return exitFailed
	}
	fmt.Fprintf(out, "\nWrote fixed CSV to: %s\n", f.out)
	return 0
}
