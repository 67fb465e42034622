// =============================================================================
// Sheetcheck - File Manager Utility
// =============================================================================
//
// This module resolves where reports are written:
//   - Output directory creation
//   - Report file naming with placeholders
//   - Deriving the XLSX companion path of a CSV report
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager resolves report paths inside an output directory.
type FileManager struct {
	// OutputDir is the directory reports are written to.
	OutputDir string

	// RunID fills the {uuid} placeholder. One id per run, so a CSV report
	// and its XLSX copy share the same name.
	RunID string

	// Now returns the time used for {timestamp}, {date} and {time}.
	Now func() time.Time
}

// NewFileManager creates a FileManager for outputDir with a fresh run id.
func NewFileManager(outputDir string) *FileManager {
	if outputDir == "" {
		outputDir = "."
	}
	return &FileManager{
		OutputDir: outputDir,
		RunID:     uuid.New().String(),
		Now:       time.Now,
	}
}

// EnsureOutputDir creates the output directory if it doesn't exist.
func (fm *FileManager) EnsureOutputDir() error {
	if err := os.MkdirAll(fm.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fm.OutputDir, err)
	}
	return nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// ReportPath expands the placeholders in format and joins the result with
// the output directory.
//
// PARAMETERS:
//   - format: The file name, optionally with placeholders:
//       {uuid}      - the run id
//       {timestamp} - YYYYMMDD_HHMMSS
//       {date}      - YYYYMMDD
//       {time}      - HHMMSS
//       {<key>}     - any key from params (e.g. {pipeline})
//   - params: Extra placeholder values.
//
// EXAMPLE:
//   format: "{pipeline}_{timestamp}.csv"
//   params: {"pipeline": "forecast"}
//   output: "<dir>/forecast_20240115_143022.csv"
func (fm *FileManager) ReportPath(format string, params map[string]string) string {
	return filepath.Join(fm.OutputDir, ExpandFileName(format, fm.RunID, fm.Now(), params))
}

// ExpandFileName replaces the file name placeholders. A name without an
// extension gets ".csv".
func ExpandFileName(format, runID string, now time.Time, params map[string]string) string {
	replacements := []string{
		"{uuid}", runID,
		"{timestamp}", now.Format("20060102_150405"),
		"{date}", now.Format("20060102"),
		"{time}", now.Format("150405"),
	}
	for key, value := range params {
		replacements = append(replacements, "{"+key+"}", value)
	}

	result := strings.NewReplacer(replacements...).Replace(format)

	if filepath.Ext(result) == "" {
		result += ".csv"
	}
	return result
}

// WithExtension swaps the extension of path, e.g. report.csv -> report.xlsx.
func WithExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
