// =============================================================================
// Sheetcheck - CSV Table Reader
// =============================================================================
//
// This module reads CSV exports of spreadsheet tables. A workbook exported as
// CSV becomes one file per sheet, so a table named "Cleaned_Data" is read
// from "Cleaned_Data.csv".
//
// FEATURES:
//   - Configurable delimiter (comma, pipe, tab, semicolon)
//   - Header offset (rows skipped before the header), as for XLSX sheets
//   - UTF-8 byte order mark stripped from the first header cell
//   - Ragged rows accepted; short rows are padded by types.NewTable
//
// =============================================================================

package csvparser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/sheetcheck/internal/types"
)

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// Settings controls how a CSV file is read.
type Settings struct {
	// Delimiter separates fields. Accepts a single character or one of
	// "tab", "pipe", "semicolon". Default: ","
	Delimiter string

	// HeaderRow is the number of rows skipped before the header.
	// Completely empty lines are not counted (encoding/csv skips them).
	HeaderRow int
}

// DefaultSettings returns comma-separated settings with the header on row 1.
func DefaultSettings() Settings {
	return Settings{Delimiter: ",", HeaderRow: 0}
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file into a table.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - name: The table name recorded on the result.
//   - settings: Delimiter and header offset.
//
// RETURNS:
//   - The parsed table.
//   - A *types.SourceError if the file cannot be opened or parsed.
func Parse(filePath, name string, settings Settings) (*types.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, &types.SourceError{Path: filePath, Table: name, Err: fmt.Errorf("failed to open file: %w", err)}
	}
	defer file.Close()

	table, err := ParseReader(bufio.NewReader(file), name, settings)
	if err != nil {
		return nil, &types.SourceError{Path: filePath, Table: name, Err: err}
	}
	return table, nil
}

// ParseReader reads CSV data from r into a table.
func ParseReader(r io.Reader, name string, settings Settings) (*types.Table, error) {
	csvReader := csv.NewReader(r)
	configureReader(csvReader, settings)

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(allRows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	if len(allRows[0]) > 0 {
		allRows[0][0] = string(bytes.TrimPrefix([]byte(allRows[0][0]), byteOrderMark))
	}

	headerRow := settings.HeaderRow
	if headerRow < 0 {
		headerRow = 0
	}
	if headerRow >= len(allRows) {
		return nil, fmt.Errorf("header row %d is past the last row (%d rows)", headerRow+1, len(allRows))
	}

	return types.NewTable(name, allRows[headerRow], allRows[headerRow+1:]), nil
}

// configureReader applies the settings to a csv.Reader.
func configureReader(reader *csv.Reader, settings Settings) {
	switch settings.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(settings.Delimiter) > 0 {
			reader.Comma = rune(settings.Delimiter[0])
		} else {
			reader.Comma = ','
		}
	}

	// Preamble rows above the header rarely have the header's width.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
}
