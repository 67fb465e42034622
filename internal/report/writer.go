package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ginjaninja78/sheetcheck/internal/types"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet the XLSX report is written to.
const SheetName = "Report"

// WriteCSV writes the report columns and rows to path, replacing any
// existing file.
func WriteCSV(path string, r *Report) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer file.Close()

	buf := bufio.NewWriter(file)
	w := csv.NewWriter(buf)

	if err := w.Write(r.Columns); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}
	if err := w.WriteAll(r.Rows); err != nil {
		return fmt.Errorf("failed to write report rows: %w", err)
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}

	return file.Close()
}

// WriteXLSX writes the report to a single-sheet workbook at path. Numeric
// cells are stored as numbers.
func WriteXLSX(path string, r *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name report sheet: %w", err)
	}

	header := make([]interface{}, len(r.Columns))
	for i, c := range r.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for i, row := range r.Rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			if n, ok := types.ParseNumeric(cell); ok {
				cells[j] = n
			} else {
				cells[j] = cell
			}
		}

		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, axis, &cells); err != nil {
			return fmt.Errorf("failed to write report row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}
