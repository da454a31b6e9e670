// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package rules

import "strings"

// Table is a parsed rule table. It is built once per load and treated as
// immutable afterwards, except through SetRecommendation which the
// autofixer uses on its own copy.
type Table struct {
	Header []string
	Rows   []Row

	explicit   map[string][]Entry
	sources    []string
	categories []CategoryRule
	columns    map[string]int
	skipped    int
}

// NewTable builds the derived explicit map and category rules from rows.
// Header may be nil when the table is assembled in code.
func NewTable(header []string, rows []Row) *Table {
	if header == nil {
		header = []string{ColProductID, ColRecommended, ColLabel, ColType, ColPriority}
	}
	t := &Table{
		Header:  header,
		Rows:    rows,
		columns: columnIndex(header),
	}
	t.index()
	return t
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	return cols
}

// index rebuilds the explicit map and category list. Category rules are
// grouped by keyword tuple in first-seen order.
func (t *Table) index() {
	t.explicit = make(map[string][]Entry)
	t.sources = nil
	t.categories = nil
	t.skipped = 0

	categoryPos := make(map[string]int)
	for _, row := range t.Rows {
		if !row.Valid() {
			t.skipped++
			continue
		}
		if row.Kind == KindCategory {
			if len(row.Keywords) == 0 {
				t.skipped++
				continue
			}
			key := strings.Join(row.Keywords, "\x00")
			pos, ok := categoryPos[key]
			if !ok {
				pos = len(t.categories)
				categoryPos[key] = pos
				t.categories = append(t.categories, CategoryRule{Keywords: row.Keywords})
			}
			t.categories[pos].Entries = append(t.categories[pos].Entries, row.Entry)
			continue
		}
		if _, ok := t.explicit[row.Source]; !ok {
			t.sources = append(t.sources, row.Source)
		}
		t.explicit[row.Source] = append(t.explicit[row.Source], row.Entry)
	}
}

// Explicit returns the ordered recommendations authored for source.
func (t *Table) Explicit(source string) ([]Entry, bool) {
	entries, ok := t.explicit[source]
	return entries, ok
}

// ExplicitRules returns the explicit rules in first-seen source order.
func (t *Table) ExplicitRules() []ExplicitRule {
	out := make([]ExplicitRule, 0, len(t.sources))
	for _, src := range t.sources {
		out = append(out, ExplicitRule{Source: src, Entries: t.explicit[src]})
	}
	return out
}

// Sources returns explicit source ids in first-seen order.
func (t *Table) Sources() []string {
	return t.sources
}

// CategoryRules returns category rules in table order.
func (t *Table) CategoryRules() []CategoryRule {
	return t.categories
}

// Skipped returns how many rows were excluded from the derived structures.
func (t *Table) Skipped() int {
	return t.skipped
}

// Counts summarizes the derived structures.
func (t *Table) Counts() Counts {
	c := Counts{
		ExplicitProducts: len(t.sources),
		CategoryRules:    len(t.categories),
	}
	for _, src := range t.sources {
		c.ExplicitRows += len(t.explicit[src])
	}
	for _, cat := range t.categories {
		c.CategoryRows += len(cat.Entries)
	}
	return c
}

// Clone returns a deep copy of the table so it can be edited independently.
func (t *Table) Clone() *Table {
	rows := make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		r.Keywords = append([]string(nil), r.Keywords...)
		r.Fields = append([]string(nil), r.Fields...)
		rows[i] = r
	}
	return NewTable(append([]string(nil), t.Header...), rows)
}

// SetRecommendation replaces the recommended id of row i, keeping the raw
// record in sync, and re-derives the explicit map and category rules.
func (t *Table) SetRecommendation(i int, id string) {
	row := &t.Rows[i]
	row.Entry.ID = id
	if col, ok := t.columns[ColRecommended]; ok {
		for len(row.Fields) <= col {
			row.Fields = append(row.Fields, "")
		}
		row.Fields[col] = id
	}
	t.index()
}
