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
	"os"

	"github.com/spf13/cobra"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/rules"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/validate"
)

func newProofsTemplateCmd(g *globals) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "proofs-template",
		Short: "Build the compatibility proofs template CSV",
		Long: `Proofs-template lists every helmet and fit-sensitive accessory pair in
the rule table with an empty verification form and a search link. The
output defaults to the configured proofs path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("out") {
				out = g.proofsPath
			}
			code := runProofsTemplate(cmd.OutOrStdout(), g.csvPath, out)
			if code != 0 {
				return &exitError{code: code}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Output compatibility proofs CSV (default: --proofs)")
	return cmd
}

func runProofsTemplate(w io.Writer, csvPath, outPath string) int {
	table, err := rules.ParseFile(csvPath)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(w, "ERROR: recommendations CSV not found: %s\n", csvPath)
		return exitNotFound
	}
	if err != nil {
		fmt.Fprintf(w, "ERROR: %v\n", err)
		return exitFailed
	}

	rows := validate.BuildProofTemplate(table)
	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(w, "ERROR: %v\n", err)
		return exitFailed
	}
	if err := validate.WriteProofTemplate(f, rows); err != nil {
		_ = f.Close()
		fmt.Fprintf(w, "ERROR: %v\n", err)
		return exitFailed
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(w, "ERROR: %v\n", err)
		return exitFailed
	}

	fmt.Fprintf(w, "Wrote %d proof rows to %s\n", len(rows), outPath)
	fmt.Fprintln(w, "Fill Compatibility Verified + Compatibility Source for rows you confirm.")
	return 0
}
