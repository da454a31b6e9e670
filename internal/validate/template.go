// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package validate

import (
	"encoding/csv"
	"io"
	"net/url"

	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/recommend"
	"github.com/josephmusso10-dev/Performance-Cycle-FBT/internal/rules"
)

// SearchURLPrefix starts the suggested search link of a template row.
const SearchURLPrefix = "https://www.google.com/search?q="

// ProofTemplateRow is one helmet and fit-sensitive accessory pair awaiting
// verification.
type ProofTemplateRow struct {
	Source    string
	Rec       string
	SearchURL string
}

// Record renders the row in rules.ProofHeader column order.
func (r ProofTemplateRow) Record() []string {
	return []string{r.Source, r.Rec, "", "", "", r.SearchURL}
}

// BuildProofTemplate lists every distinct explicit pair whose source is a
// helmet and whose recommendation is fit-sensitive, in table order.
func BuildProofTemplate(table *rules.Table) []ProofTemplateRow {
	cls := recommend.AuthoringClassifier()
	seen := make(map[rules.Pair]bool)
	var out []ProofTemplateRow
	for _, row := range table.Rows {
		if !row.Valid() || row.CategorySyntax {
			continue
		}
		pid, rid := row.Source, row.Entry.ID
		if cls.Classify(pid) != recommend.TypeHelmet || !recommend.IsFitSensitive(rid) {
			continue
		}
		pair := rules.Pair{Source: pid, Rec: rid}
		if seen[pair] {
			continue
		}
		seen[pair] = true
		out = append(out, ProofTemplateRow{
			Source:    pid,
			Rec:       rid,
			SearchURL: SearchURLPrefix + url.QueryEscape(rid+" compatible with "+pid),
		})
	}
	return out
}

// WriteProofTemplate writes the header and rows as CSV.
func WriteProofTemplate(w io.Writer, rows []ProofTemplateRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(rules.ProofHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writer.Write(r.Record()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
