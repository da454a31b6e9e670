// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package validate

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/recommend"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/rules"
)

// Options controls the compatibility checks.
type Options struct {
	// Strict requires a verified, source-backed proof for every helmet to
	// fit-sensitive accessory pair.
	Strict bool `json:"strict"`

	// AllowHeuristicFit downgrades a missing proof to a warning in strict
	// mode when brand or model tokens overlap.
	AllowHeuristicFit bool `json:"allow_heuristic_fit"`
}

// Validator checks rule tables with the authoring classifier.
type Validator struct {
	classifier *recommend.Classifier
	logger     zerolog.Logger
}

// NewValidator creates a validator.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewValidator(logger zerolog.Logger) *Validator {
	return &Validator{
		classifier: recommend.AuthoringClassifier(),
		logger:     logger.With().Str("component", "validate").Logger(),
	}
}

// Classifier returns the classifier used for type checks.
func (v *Validator) Classifier() *recommend.Classifier {
	return v.classifier
}

// Validate checks every row of table. proofIssues (from loading the proofs
// file) lead the report as errors in strict mode and warnings otherwise.
func (v *Validator) Validate(table *rules.Table, proofs rules.ProofSet, proofIssues []string, opts Options) *Report {
	report := NewReport()
	report.Strict = opts.Strict
	for _, msg := range proofIssues {
		if opts.Strict {
			report.AddError(0, msg)
		} else {
			report.AddWarning(0, msg)
		}
	}
	if table == nil {
		return report
	}
	report.Rows = len(table.Rows)

	seen := make(map[rules.Pair]bool)
	for _, row := range table.Rows {
		v.checkRow(report, row, proofs, opts, seen)
	}

	v.logger.Debug().
		Int("rows", report.Rows).
		Int("errors", len(report.Errors)).
		Int("warnings", len(report.Warnings)).
		Bool("strict", opts.Strict).
		Msg("validated rule table")
	return report
}

func (v *Validator) checkRow(report *Report, row rules.Row, proofs rules.ProofSet, opts Options, seen map[rules.Pair]bool) {
	n := row.Number
	pid, rid := row.Source, row.Entry.ID
	if !row.Valid() {
		report.AddError(n, fmt.Sprintf("Row %d: missing Product ID or Recommended Product ID", n))
		return
	}
	if pid == rid {
		report.AddError(n, fmt.Sprintf("Row %d: self-recommendation is not allowed (%s)", n, pid))
	}
	pair := rules.Pair{Source: pid, Rec: rid}
	if seen[pair] {
		report.AddError(n, fmt.Sprintf("Row %d: duplicate recommendation for '%s' -> '%s'", n, pid, rid))
	}
	seen[pair] = true

	if row.CategorySyntax {
		return
	}

	st := v.classifier.Classify(pid)
	rt := v.classifier.Classify(rid)
	if st.Known() && rt.Known() {
		if st == rt && recommend.IsCoreType(st) {
			report.AddError(n, fmt.Sprintf("Row %d: non-complementary recommendation (%s -> %s) for '%s' -> '%s'", n, st, rt, pid, rid))
		}
		if recommend.IsCoreType(st) && len(recommend.ComplementaryTypes(st)) > 0 && !recommend.IsComplementary(st, rt) {
			report.AddWarning(n, fmt.Sprintf("Row %d: unusual pair (%s -> %s) for '%s' -> '%s'", n, st, rt, pid, rid))
		}
	}

	if st != recommend.TypeHelmet || !recommend.IsFitSensitive(rid) {
		return
	}
	src := recommend.ExtractIdentity(pid)
	rec := recommend.ExtractIdentity(rid)
	if src.BrandConflict(rec) {
		report.AddError(n, fmt.Sprintf("Row %d: helmet brand mismatch for fit-sensitive accessory ('%s' -> '%s')", n, pid, rid))
	}
	heuristicFit := src.Overlaps(rec)
	if recommend.HasForMarker(rid) && !heuristicFit {
		report.AddWarning(n, fmt.Sprintf("Row %d: accessory appears model-specific but no helmet model match was found ('%s' -> '%s')", n, pid, rid))
	}
	if !opts.Strict || proofs.Verified(pid, rid) {
		return
	}
	if opts.AllowHeuristicFit && heuristicFit {
		report.AddWarning(n, fmt.Sprintf("Row %d: no source proof entry, but heuristic fit looks plausible ('%s' -> '%s')", n, pid, rid))
		return
	}
	report.AddError(n, fmt.Sprintf("Row %d: missing verified compatibility source for fit-sensitive accessory ('%s' -> '%s')", n, pid, rid))
}

// ValidateFile loads the rule table at path and the proofs at proofsPath
// (empty for none) and validates them. A table without the required
// columns yields a failing report rather than an error; a missing table
// returns an error wrapping fs.ErrNotExist.
func (v *Validator) ValidateFile(path, proofsPath string, opts Options) (*Report, error) {
	proofs, proofIssues, err := rules.LoadProofs(proofsPath)
	if err != nil {
		return nil, err
	}

	table, err := rules.ParseFile(path)
	var missing *rules.MissingColumnsError
	switch {
	case errors.As(err, &missing):
		report := v.Validate(nil, proofs, proofIssues, opts)
		report.Path = path
		report.AddError(0, missing.Error())
		return report, nil
	case err != nil:
		return nil, err
	}

	report := v.Validate(table, proofs, proofIssues, opts)
	report.Path = path
	return report, nil
}
