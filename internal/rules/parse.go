// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package rules

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

var (
	// ErrNoHeader is returned for an empty input.
	ErrNoHeader = errors.New("csv has no header")

	// ErrMissingColumns is matched by *MissingColumnsError.
	ErrMissingColumns = errors.New("missing required columns")
)

// MissingColumnsError lists required columns absent from a header.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "Missing required columns: " + strings.Join(e.Columns, ", ")
}

// Is makes errors.Is(err, ErrMissingColumns) hold.
func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}

const utf8BOM = "\uFEFF"

// Parse reads a rule table. It fails only on unreadable CSV or a header
// without Product ID and Recommended Product ID; malformed rows are kept in
// Table.Rows and excluded from the derived structures.
func Parse(r io.Reader) (*Table, error) {
	header, records, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	cols := columnIndex(header)
	if err := requireColumns(cols, ColProductID, ColRecommended); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		rows = append(rows, parseRow(cols, rec, i+2))
	}
	return NewTable(header, rows), nil
}

// ParseFile opens path and parses it. os.ErrNotExist is preserved for
// callers that map a missing file to an exit code.
func ParseFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return t, nil
}

func parseRow(cols map[string]int, rec []string, number int) Row {
	source := cell(cols, rec, ColProductID)
	rowType := strings.ToLower(cell(cols, rec, ColType))

	row := Row{
		Number: number,
		Kind:   KindExplicit,
		Source: source,
		Entry: Entry{
			ID:       cell(cols, rec, ColRecommended),
			Label:    cell(cols, rec, ColLabel),
			Priority: ParsePriority(cell(cols, rec, ColPriority)),
		},
		Fields: rec,
	}
	row.CategorySyntax = IsCategorySyntax(source)
	if rowType == "category" {
		row.Kind = KindCategory
		row.Keywords = ParseCategoryKeywords(source)
	}
	return row
}

// IsCategorySyntax reports whether a Product ID uses the "[kw | kw] text"
// form.
func IsCategorySyntax(productID string) bool {
	return strings.HasPrefix(productID, "[") && strings.Contains(productID, "]")
}

// ParseCategoryKeywords extracts the lowercased, trimmed keywords between
// the leading "[" and the first "]". Anything after the bracket is ignored.
func ParseCategoryKeywords(productID string) []string {
	text := strings.TrimSpace(productID)
	if !IsCategorySyntax(text) {
		return nil
	}
	inside := text[1:strings.Index(text, "]")]
	var keywords []string
	for _, part := range strings.Split(inside, "|") {
		if kw := strings.ToLower(strings.TrimSpace(part)); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

func cell(cols map[string]int, rec []string, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func requireColumns(cols map[string]int, names ...string) error {
	var missing []string
	for _, name := range names {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &MissingColumnsError{Columns: missing}
}

// readCSV reads the header and all records. Ragged rows are allowed and a
// leading UTF-8 byte order mark is dropped.
func readCSV(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrNoHeader
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read records: %w", err)
	}
	return header, records, nil
}

// Write emits the table as CSV with its original header and raw fields.
func Write(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		rec := row.Fields
		if len(rec) < len(t.Header) {
			rec = append(append([]string(nil), rec...), make([]string, len(t.Header)-len(rec))...)
		}
		if err := writer.Write(rec); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
