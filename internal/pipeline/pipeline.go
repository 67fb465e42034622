// =============================================================================
// Sheetcheck - Pipeline Runner
// =============================================================================
//
// This module runs one evaluation pipeline end to end. Both pipelines have
// the same three stages:
//
//   1. Load     open the input and read the named tables
//   2. Evaluate compute expected values / rule checks and compare
//   3. Report   print the report, then write it to the output directory
//
// A fatal error in stage 1 or 2 stops the run before anything is written.
// A FAIL verdict is not an error: the report is still printed and written.
//
// =============================================================================

package pipeline

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ginjaninja78/sheetcheck/internal/config"
	"github.com/ginjaninja78/sheetcheck/internal/loader"
	"github.com/ginjaninja78/sheetcheck/internal/report"
	"github.com/ginjaninja78/sheetcheck/pkg/utils"
	"github.com/rs/zerolog"
)

// Pipeline names, also used for the {pipeline} file name placeholder.
const (
	NameForecast = "forecast"
	NameCleaning = "cleaning"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one pipeline run.
type Result struct {
	// Pipeline is NameForecast or NameCleaning.
	Pipeline string

	// InputPath is the file or directory that was evaluated.
	InputPath string

	// Report is the printed and persisted report.
	Report *report.Report

	// OutputFiles lists every report file written.
	OutputFiles []string

	// Passed is the overall verdict.
	Passed bool

	// Elapsed is the wall time of the run.
	Elapsed time.Duration
}

// =============================================================================
// RUNNER
// =============================================================================

// Options wires a Runner.
type Options struct {
	// Config is the run configuration. Required.
	Config *config.Config

	// Logger receives diagnostics. Defaults to a no-op logger.
	Logger *zerolog.Logger

	// Stdout receives the console report. Defaults to os.Stdout.
	Stdout io.Writer

	// Files resolves report paths. Defaults to the configured output dir.
	Files *utils.FileManager

	// Open opens the input. Defaults to loader.Open.
	Open func(path string) (loader.Source, error)
}

// Runner executes pipelines.
type Runner struct {
	cfg    *config.Config
	log    zerolog.Logger
	stdout io.Writer
	files  *utils.FileManager
	open   func(path string) (loader.Source, error)
}

// New creates a Runner, filling in defaults for unset options.
func New(opts Options) *Runner {
	r := &Runner{
		cfg:    opts.Config,
		log:    zerolog.Nop(),
		stdout: opts.Stdout,
		files:  opts.Files,
		open:   opts.Open,
	}
	if opts.Logger != nil {
		r.log = *opts.Logger
	}
	if r.stdout == nil {
		r.stdout = os.Stdout
	}
	if r.files == nil {
		r.files = utils.NewFileManager(r.cfg.Report.OutputDir)
	}
	if r.open == nil {
		r.open = loader.Open
	}
	return r
}

// Run executes the named pipeline.
func (r *Runner) Run(name string) (*Result, error) {
	switch name {
	case NameForecast:
		return r.RunForecast()
	case NameCleaning:
		return r.RunCleaning()
	default:
		return nil, fmt.Errorf("unknown pipeline %q", name)
	}
}

// =============================================================================
// REPORT STAGE
// =============================================================================

// finish prints the report and persists it in the configured formats.
func (r *Runner) finish(result *Result, outputFile string, start time.Time) (*Result, error) {
	log := r.log.With().Str("pipeline", result.Pipeline).Logger()

	if err := report.Render(r.stdout, result.Report); err != nil {
		return nil, fmt.Errorf("failed to print report: %w", err)
	}

	if err := r.files.EnsureOutputDir(); err != nil {
		return nil, err
	}

	path := r.files.ReportPath(outputFile, map[string]string{"pipeline": result.Pipeline})

	format := r.cfg.Report.Format
	if format == config.FormatCSV || format == config.FormatBoth {
		if err := report.WriteCSV(path, result.Report); err != nil {
			return nil, err
		}
		result.OutputFiles = append(result.OutputFiles, path)
	}
	if format == config.FormatXLSX || format == config.FormatBoth {
		xlsxPath := utils.WithExtension(path, ".xlsx")
		if err := report.WriteXLSX(xlsxPath, result.Report); err != nil {
			return nil, err
		}
		result.OutputFiles = append(result.OutputFiles, xlsxPath)
	}

	for _, f := range result.OutputFiles {
		fmt.Fprintf(r.stdout, "\nSaved: %s\n", f)
	}

	result.Elapsed = time.Since(start)
	log.Info().
		Str("status", result.Report.Status()).
		Strs("files", result.OutputFiles).
		Dur("elapsed", result.Elapsed).
		Msg("evaluation complete")

	return result, nil
}
