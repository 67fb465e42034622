// Package loader opens a tabular input and hands out named tables from it.
//
// Three kinds of input are supported:
//   - an XLSX workbook: tables are sheets
//   - a directory: tables are "<name>.csv" files inside it
//   - a single CSV file: every requested table is that file
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/sheetcheck/internal/csvparser"
	"github.com/ginjaninja78/sheetcheck/internal/types"
	"github.com/ginjaninja78/sheetcheck/internal/xlsxparser"
)

// ErrUnsupportedFormat is returned for files that are neither XLSX nor CSV.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Source yields tables by name.
type Source interface {
	// Table reads the named table, skipping headerRow rows before the header.
	Table(name string, headerRow int) (*types.Table, error)

	// Close releases the underlying file, if any.
	Close() error
}

// Open inspects path and returns the matching Source.
func Open(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &types.SourceError{Path: path, Err: err}
	}

	if info.IsDir() {
		return &csvDir{dir: path, settings: csvparser.DefaultSettings()}, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		wb, err := xlsxparser.Open(path)
		if err != nil {
			return nil, err
		}
		return wb, nil
	case ".csv", ".txt":
		return &csvFile{path: path, settings: csvparser.DefaultSettings()}, nil
	case ".tsv":
		return &csvFile{path: path, settings: csvparser.Settings{Delimiter: "tab"}}, nil
	default:
		return nil, &types.SourceError{Path: path, Err: fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))}
	}
}

// csvDir serves tables from "<dir>/<name>.csv".
type csvDir struct {
	dir      string
	settings csvparser.Settings
}

func (d *csvDir) Table(name string, headerRow int) (*types.Table, error) {
	s := d.settings
	s.HeaderRow = headerRow
	return csvparser.Parse(filepath.Join(d.dir, name+".csv"), name, s)
}

func (d *csvDir) Close() error { return nil }

// csvFile serves the same file for every table name.
type csvFile struct {
	path     string
	settings csvparser.Settings
}

func (f *csvFile) Table(name string, headerRow int) (*types.Table, error) {
	s := f.settings
	s.HeaderRow = headerRow
	return csvparser.Parse(f.path, name, s)
}

func (f *csvFile) Close() error { return nil }
