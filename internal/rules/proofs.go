// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package rules

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// Column names of the compatibility proofs table.
const (
	ColVerified     = "Compatibility Verified"
	ColProofSource  = "Compatibility Source"
	ColProofNotes   = "Compatibility Notes"
	ColSearchURL    = "Suggested Search URL"
	proofsRowPrefix = "Proofs row"
)

// ProofHeader is the column order written by the proofs template.
var ProofHeader = []string{ColProductID, ColRecommended, ColVerified, ColProofSource, ColProofNotes, ColSearchURL}

// Pair identifies a (source, recommendation) combination.
type Pair struct {
	Source string
	Rec    string
}

// Proof records external evidence that a recommendation fits its source.
type Proof struct {
	Verified bool
	Origin   string
	Notes    string
}

// SourceBacked reports whether the proof is verified and names a source.
func (p Proof) SourceBacked() bool {
	return p.Verified && strings.TrimSpace(p.Origin) != ""
}

// ProofSet holds proofs keyed by pair. A nil ProofSet is empty.
type ProofSet map[Pair]Proof

// Verified reports whether the pair has a verified, source-backed proof.
func (ps ProofSet) Verified(source, rec string) bool {
	p, ok := ps[Pair{Source: source, Rec: rec}]
	return ok && p.SourceBacked()
}

// VerifiedFor returns the source-backed recommendation ids for source,
// sorted for deterministic iteration.
func (ps ProofSet) VerifiedFor(source string) []string {
	var out []string
	for pair, p := range ps {
		if pair.Source == source && p.SourceBacked() {
			out = append(out, pair.Rec)
		}
	}
	sort.Strings(out)
	return out
}

// ParseBool reports whether a Compatibility Verified cell is truthy:
// true, yes, y, 1 or verified, in any case.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "verified":
		return true
	}
	return false
}

// ParseProofs reads a proofs table. Problems that should surface in a
// validation report (missing columns, rows without ids) are returned as
// issue messages; only unreadable CSV is an error.
func ParseProofs(r io.Reader) (ProofSet, []string, error) {
	header, records, err := readCSV(r)
	if errors.Is(err, ErrNoHeader) {
		header = nil
	} else if err != nil {
		return nil, nil, err
	}

	cols := columnIndex(header)
	if err := requireColumns(cols, ColProductID, ColRecommended, ColVerified, ColProofSource); err != nil {
		var mc *MissingColumnsError
		errors.As(err, &mc)
		return ProofSet{}, []string{
			"Compatibility proofs file missing required columns: " + strings.Join(mc.Columns, ", "),
		}, nil
	}

	proofs := make(ProofSet, len(records))
	var issues []string
	for i, rec := range records {
		source := cell(cols, rec, ColProductID)
		recID := cell(cols, rec, ColRecommended)
		if source == "" || recID == "" {
			issues = append(issues, fmt.Sprintf("%s %d: missing Product ID or Recommended Product ID", proofsRowPrefix, i+2))
			continue
		}
		proofs[Pair{Source: source, Rec: recID}] = Proof{
			Verified: ParseBool(cell(cols, rec, ColVerified)),
			Origin:   cell(cols, rec, ColProofSource),
			Notes:    cell(cols, rec, ColProofNotes),
		}
	}
	return proofs, issues, nil
}

// LoadProofs reads a proofs file. An empty path means no proofs were
// requested; a missing file is reported as an issue, not an error.
func LoadProofs(path string) (ProofSet, []string, error) {
	if path == "" {
		return ProofSet{}, nil, nil
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ProofSet{}, []string{"Compatibility proofs file not found: " + path}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	proofs, issues, err := ParseProofs(f)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return proofs, issues, nil
}
