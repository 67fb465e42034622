// =============================================================================
// Sheetcheck - Shared Types
// =============================================================================
//
// This package contains types shared by the loaders, the evaluators and the
// reporter. Keeping them here avoids import cycles between:
//   - xlsxparser / csvparser (produce tables)
//   - forecast / validation  (consume tables)
//   - report                 (renders results)
//
// =============================================================================

package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// =============================================================================
// TABLE
// =============================================================================

// Table is an in-memory sheet: a header row plus string cells.
// Every row has exactly len(Headers) cells.
type Table struct {
	// Name is the sheet (or CSV file) name the table was read from.
	Name string

	// Headers are the normalised column names, in source order.
	Headers []string

	// Rows holds the data rows below the header.
	Rows [][]string
}

// NewTable builds a Table from a raw header row and raw data rows.
// Headers are normalised with NormalizeHeaders, short rows are padded with
// empty cells, long rows are truncated, and trailing blank rows are dropped.
func NewTable(name string, header []string, rows [][]string) *Table {
	headers := NormalizeHeaders(header)

	// Trailing blank rows are an artefact of how sheets are stored.
	end := len(rows)
	for end > 0 && isBlank(rows[end-1]) {
		end--
	}

	data := make([][]string, 0, end)
	for _, raw := range rows[:end] {
		row := make([]string, len(headers))
		copy(row, raw)
		data = append(data, row)
	}

	return &Table{Name: name, Headers: headers, Rows: data}
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table has a column with the exact name.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Column returns all values of the named column.
func (t *Table) Column(name string) ([]string, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, &ColumnNotFoundError{Table: t.Name, Column: name, Available: t.Headers}
	}

	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

// NumericColumn returns the named column coerced to numbers, with every
// value that fails coercion dropped.
func (t *Table) NumericColumn(name string) ([]float64, error) {
	values, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	return CoerceNumeric(values), nil
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// NormalizeHeaders turns a raw header row into unique column names.
//
//   - blank cells become "Unnamed: <index>"
//   - surrounding whitespace is kept (it is part of the name)
//   - a repeated name gets ".1", ".2", ... appended in order of appearance
func NormalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	used := make(map[string]bool, len(raw))
	suffix := make(map[string]int)

	for i, h := range raw {
		if strings.TrimSpace(h) == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}

		name := h
		for used[name] {
			suffix[h]++
			name = fmt.Sprintf("%s.%d", h, suffix[h])
		}
		used[name] = true
		headers[i] = name
	}

	return headers
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// NUMERIC COERCION
// =============================================================================

// ParseNumeric coerces a cell to a number.
// Surrounding whitespace is ignored. Empty cells, text, hexadecimal literals
// and NaN are reported as missing (ok == false).
func ParseNumeric(value string) (float64, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, false
	}
	if strings.ContainsAny(s, "xX_") {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// CoerceNumeric parses every value and keeps only the ones that are numeric,
// preserving order.
func CoerceNumeric(values []string) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := ParseNumeric(v); ok {
			out = append(out, f)
		}
	}
	return out
}
