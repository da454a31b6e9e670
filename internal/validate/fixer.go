// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package validate

import (
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/recommend"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/rules"
)

// Rejection scores. Any of them disqualifies a candidate.
const (
	scoreIsSource      = -10000
	scoreAlreadyListed = -9000
	scoreOwnMismatch   = -8000
	scoreNotComplement = -7000
)

// ScoreWeights are the bonuses of the replacement rubric. Only their
// relative order is meaningful.
type ScoreWeights struct {
	TypeMatch       int `json:"type_match" koanf:"type_match"`
	HelmetAccessory int `json:"helmet_accessory" koanf:"helmet_accessory"`
	BrandOverlap    int `json:"brand_overlap" koanf:"brand_overlap"`
	ModelOverlap    int `json:"model_overlap" koanf:"model_overlap"`
	FitSensitive    int `json:"fit_sensitive" koanf:"fit_sensitive"`
	ForMarker       int `json:"for_marker" koanf:"for_marker"`
}

// DefaultScoreWeights returns the production rubric.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		TypeMatch:       80,
		HelmetAccessory: 30,
		BrandOverlap:    70,
		ModelOverlap:    60,
		FitSensitive:    10,
		ForMarker:       10,
	}
}

// Fix is one replaced recommendation.
type Fix struct {
	Row    int    `json:"row"`
	Source string `json:"source"`
	Old    string `json:"old"`
	New    string `json:"new"`
	// Verified is set when the replacement came from a source-backed proof.
	Verified bool `json:"verified"`
}

// Unresolved is a definite mismatch without a positive-scoring replacement.
type Unresolved struct {
	Row    int    `json:"row"`
	Source string `json:"source"`
	Rec    string `json:"rec"`
}

// FixResult is the outcome of one autofix pass.
type FixResult struct {
	// Table is the repaired copy; the input table is never modified.
	Table      *rules.Table `json:"-"`
	Scanned    int          `json:"scanned"`
	Fixes      []Fix        `json:"fixes"`
	Unresolved []Unresolved `json:"unresolved"`
}

// Fixer replaces definite mismatches with the best-scoring alternative.
type Fixer struct {
	classifier *recommend.Classifier
	weights    ScoreWeights
	logger     zerolog.Logger
}

// NewFixer creates a fixer with the given rubric.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewFixer(weights ScoreWeights, logger zerolog.Logger) *Fixer {
	return &Fixer{
		classifier: recommend.AuthoringClassifier(),
		weights:    weights,
		logger:     logger.With().Str("component", "autofix").Logger(),
	}
}

// IsDefiniteMismatch reports whether rec is a fit-sensitive accessory whose
// brand conflicts with the helmet source.
func (f *Fixer) IsDefiniteMismatch(source, rec string) bool {
	return isDefiniteMismatch(f.classifier, source, rec)
}

func isDefiniteMismatch(cls *recommend.Classifier, source, rec string) bool {
	if cls.Classify(source) != recommend.TypeHelmet || !recommend.IsFitSensitive(rec) {
		return false
	}
	return recommend.ExtractIdentity(source).BrandConflict(recommend.ExtractIdentity(rec))
}

// Score rates candidate as a replacement for original under source.
// existing holds the source's other recommendations.
func (f *Fixer) Score(source, original, candidate string, existing map[string]bool) int {
	switch {
	case candidate == source:
		return scoreIsSource
	case existing[candidate]:
		return scoreAlreadyListed
	case f.IsDefiniteMismatch(source, candidate):
		return scoreOwnMismatch
	}

	st := f.classifier.Classify(source)
	ct := f.classifier.Classify(candidate)
	if len(recommend.ComplementaryTypes(st)) > 0 && !recommend.IsComplementary(st, ct) {
		return scoreNotComplement
	}

	src := recommend.ExtractIdentity(source)
	cand := recommend.ExtractIdentity(candidate)
	brand := src.SharesBrand(cand)
	model := src.SharesModel(cand)

	w := f.weights
	score := 0
	if ct == f.classifier.Classify(original) {
		score += w.TypeMatch
	}
	if ct == recommend.TypeHelmetAccessory {
		score += w.HelmetAccessory
	}
	if brand {
		score += w.BrandOverlap
	}
	if model {
		score += w.ModelOverlap
	}
	if recommend.IsFitSensitive(candidate) {
		score += w.FitSensitive
	}
	if recommend.HasForMarker(candidate) && (brand || model) {
		score += w.ForMarker
	}
	return score
}

// pick returns the replacement for one row: the best verified candidate
// scoring above zero, else the single best global candidate above zero.
func (f *Fixer) pick(source, original string, existing map[string]bool, verified, global []string) (string, bool, bool) {
	type scored struct {
		id    string
		score int
	}
	ranked := make([]scored, 0, len(verified))
	for _, id := range verified {
		ranked = append(ranked, scored{id, f.Score(source, original, id, existing)})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > 0 && ranked[0].score > 0 {
		return ranked[0].id, true, true
	}

	best, bestScore := "", math.MinInt
	for _, id := range global {
		if s := f.Score(source, original, id, existing); s > bestScore {
			best, bestScore = id, s
		}
	}
	if best != "" && bestScore > 0 {
		return best, false, true
	}
	return "", false, false
}

// Fix repairs a copy of table. Category rows and invalid rows are never
// touched. Candidates are every recommended id in the table, in sorted
// order; a fix updates the source's recommendation set before later rows
// are scored.
func (f *Fixer) Fix(table *rules.Table, proofs rules.ProofSet) *FixResult {
	out := table.Clone()
	result := &FixResult{
		Table:      out,
		Scanned:    len(out.Rows),
		Fixes:      []Fix{},
		Unresolved: []Unresolved{},
	}

	recsBySource := make(map[string]map[string]bool)
	candidateSet := make(map[string]bool)
	for _, row := range out.Rows {
		if !row.Valid() {
			continue
		}
		if recsBySource[row.Source] == nil {
			recsBySource[row.Source] = make(map[string]bool)
		}
		recsBySource[row.Source][row.Entry.ID] = true
		candidateSet[row.Entry.ID] = true
	}
	global := make([]string, 0, len(candidateSet))
	for id := range candidateSet {
		global = append(global, id)
	}
	sort.Strings(global)

	for i := range out.Rows {
		row := out.Rows[i]
		if !row.Valid() || row.CategorySyntax {
			continue
		}
		pid, rid := row.Source, row.Entry.ID
		if !f.IsDefiniteMismatch(pid, rid) {
			continue
		}

		existing := make(map[string]bool, len(recsBySource[pid]))
		for id := range recsBySource[pid] {
			if id != rid {
				existing[id] = true
			}
		}
		replacement, verified, ok := f.pick(pid, rid, existing, proofs.VerifiedFor(pid), global)
		if !ok {
			result.Unresolved = append(result.Unresolved, Unresolved{Row: row.Number, Source: pid, Rec: rid})
			continue
		}

		out.SetRecommendation(i, replacement)
		delete(recsBySource[pid], rid)
		recsBySource[pid][replacement] = true
		result.Fixes = append(result.Fixes, Fix{Row: row.Number, Source: pid, Old: rid, New: replacement, Verified: verified})
	}

	f.logger.Debug().
		Int("scanned", result.Scanned).
		Int("fixed", len(result.Fixes)).
		Int("unresolved", len(result.Unresolved)).
		Msg("autofix pass complete")
	return result
}
