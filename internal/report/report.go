// =============================================================================
// Sheetcheck - Report Module
// =============================================================================
//
// This module holds the evaluation report shared by both pipelines and knows
// how to print it and persist it.
//
// REPORT SHAPE:
//   A report is a small table (one row per forecast period or per cleaning
//   check) plus an overall PASS/FAIL verdict.
//
// OUTPUTS:
//   - Console: a bordered table followed by "FINAL STATUS: PASS|FAIL"
//   - CSV:     header row + one line per report row (always written)
//   - XLSX:    the same table on a "Report" sheet (optional)
//
// =============================================================================

package report

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Status strings.
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
)

// Report is a rendered evaluation result.
type Report struct {
	// Title is printed above the table, e.g. "FORECAST EVALUATION RESULT".
	Title string

	// Notes are printed between the title and the table.
	Notes []string

	// Columns is the header row of the persisted file.
	Columns []string

	// Rows are the table rows; each has len(Columns) cells.
	Rows [][]string

	// Passed is the overall verdict.
	Passed bool
}

// New creates an empty report with the given title and columns.
func New(title string, columns ...string) *Report {
	return &Report{
		Title:   title,
		Columns: columns,
		Rows:    make([][]string, 0),
	}
}

// AddRow appends a row.
func (r *Report) AddRow(cells ...string) {
	r.Rows = append(r.Rows, cells)
}

// AddNote appends a line printed above the table.
func (r *Report) AddNote(note string) {
	r.Notes = append(r.Notes, note)
}

// Status returns PASS or FAIL for the overall verdict.
func (r *Report) Status() string {
	return StatusOf(r.Passed)
}

// StatusOf maps a boolean verdict to PASS or FAIL.
func StatusOf(passed bool) string {
	if passed {
		return StatusPass
	}
	return StatusFail
}

// =============================================================================
// CELL FORMATTING
// =============================================================================

// Fixed formats v with exactly places decimal digits.
func Fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Bool formats a pass flag the way spreadsheet tools write booleans.
func Bool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
