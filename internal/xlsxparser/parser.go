// =============================================================================
// Sheetcheck - XLSX Workbook Reader
// =============================================================================
//
// This module reads named sheets from XLSX workbooks into types.Table values.
//
// SHEET LAYOUT:
//   A sheet may carry a preamble (titles, notes, assumptions) above its
//   header. headerRow is the number of rows to skip before the header, so
//   headerRow = 6 means the header is on row 7 and data starts on row 8.
//
//   | Row 1..6 | free-form preamble, ignored     |
//   | Row 7    | header                          |
//   | Row 8..  | data                            |
//
// CELL VALUES:
//   Cells are read raw (number formats are not applied), so a revenue cell
//   formatted as "$1,234.50" is read as "1234.5" and stays numeric.
//
// =============================================================================

package xlsxparser

import (
	"errors"
	"fmt"

	"github.com/ginjaninja78/sheetcheck/internal/types"
	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound is wrapped by Table when the workbook has no such sheet.
var ErrSheetNotFound = errors.New("sheet not found")

// =============================================================================
// WORKBOOK
// =============================================================================

// Workbook is an open XLSX file.
type Workbook struct {
	path string
	file *excelize.File
}

// Open opens an XLSX workbook for reading.
//
// PARAMETERS:
//   - path: The path to the .xlsx file.
//
// RETURNS:
//   - The open workbook; the caller must Close it.
//   - A *types.SourceError if the file cannot be opened.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &types.SourceError{Path: path, Err: fmt.Errorf("failed to open workbook: %w", err)}
	}
	return &Workbook{path: path, file: f}, nil
}

// Path returns the file the workbook was opened from.
func (w *Workbook) Path() string {
	return w.path
}

// SheetNames lists the sheets in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Table reads one sheet.
//
// PARAMETERS:
//   - sheet: The sheet name (exact match).
//   - headerRow: Rows to skip before the header row.
//
// RETURNS:
//   - The sheet as a table.
//   - A *types.SourceError if the sheet is missing or unreadable.
func (w *Workbook) Table(sheet string, headerRow int) (*types.Table, error) {
	idx, err := w.file.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, &types.SourceError{Path: w.path, Table: sheet, Err: ErrSheetNotFound}
	}

	rows, err := w.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &types.SourceError{Path: w.path, Table: sheet, Err: fmt.Errorf("failed to read rows: %w", err)}
	}

	if headerRow < 0 {
		headerRow = 0
	}
	if headerRow >= len(rows) {
		return nil, &types.SourceError{
			Path:  w.path,
			Table: sheet,
			Err:   fmt.Errorf("header row %d is past the last row (%d rows)", headerRow+1, len(rows)),
		}
	}

	return types.NewTable(sheet, rows[headerRow], rows[headerRow+1:]), nil
}

// ReadTable opens a workbook, reads one sheet and closes the workbook.
func ReadTable(path, sheet string, headerRow int) (*types.Table, error) {
	wb, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	return wb.Table(sheet, headerRow)
}
