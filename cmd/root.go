// =============================================================================
// Sheetcheck - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every evaluation
// command is attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (sheetcheck)
//   ├── forecastCmd (sheetcheck forecast)
//   ├── cleaningCmd (sheetcheck cleaning)
//   ├── configCmd   (sheetcheck config init)
//   └── versionCmd  (sheetcheck version)
//
// The root command owns the global flags (--config, --verbose, --log-format)
// and the process exit status:
//   0  report written, verdict PASS
//   1  fatal error (bad input, missing column, undefined arithmetic, ...)
//   2  report written, verdict FAIL (report.fail_exit_code)
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/sheetcheck/internal/config"
	"github.com/ginjaninja78/sheetcheck/internal/pipeline"
	"github.com/ginjaninja78/sheetcheck/pkg/utils"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose enables debug logging.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sheetcheck",
	Short: "Sheetcheck - evaluate forecast and cleaning spreadsheets",
	Long: `Sheetcheck checks the output of spreadsheet tasks against the numbers and
rules they should satisfy, prints a report and writes it as a CSV file.

Pipelines:
  - forecast: compares a revenue forecast with a compound-growth projection
    of the historical revenue
  - cleaning: checks a cleaned table for its column set, numeric revenue,
    title-case names, ISO dates and unique order ids

Example Usage:
  sheetcheck forecast --input forecasting.xlsx
  sheetcheck cleaning --input messy_data_cleaning.xlsx --output-dir out
  sheetcheck config init`,

	SilenceErrors: true,
	SilenceUsage:  true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXIT STATUS
// =============================================================================

// verdictError reports a FAIL verdict. The report has already been printed,
// so Execute exits with code without printing anything else.
type verdictError struct {
	pipeline string
	code     int
}

func (e *verdictError) Error() string {
	return fmt.Sprintf("%s evaluation failed", e.pipeline)
}

// Execute runs the CLI and exits with the status described above.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var verdict *verdictError
		if errors.As(err, &verdict) {
			os.Exit(verdict.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to the configuration file (default is "+config.DefaultFile+")",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)

	rootCmd.PersistentFlags().String(
		"log-format",
		"console",
		"Log format: console or json",
	)
}

// =============================================================================
// SHARED COMMAND PLUMBING
// =============================================================================

// globalBindings maps configuration keys to the root command's flags.
var globalBindings = map[string]string{
	"log.format": "log-format",
}

// loadConfig reads the configuration with cmd's flags bound on top.
//
// PARAMETERS:
//   - cmd: The running command. Its parsed flag set includes the inherited
//     persistent flags.
//   - bindings: Configuration keys mapped to cmd's local flag names.
func loadConfig(cmd *cobra.Command, bindings map[string]string) (*config.Config, error) {
	all := make(map[string]string, len(globalBindings)+len(bindings))
	for k, v := range globalBindings {
		all[k] = v
	}
	for k, v := range bindings {
		all[k] = v
	}

	return config.Load(config.LoadOptions{
		Path:     cfgFile,
		Required: cfgFile != "",
		Flags:    cmd.Flags(),
		Bindings: all,
	})
}

// newLogger builds the run logger. Logs go to w (stderr in the CLI) so the
// report on stdout stays clean.
func newLogger(w io.Writer, cfg config.LogConfig, debug bool, runID string) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	if debug {
		level = zerolog.DebugLevel
	}

	out := w
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("run_id", runID).
		Logger()
}

// runPipeline loads the configuration, runs the named pipeline and converts
// a FAIL verdict into a verdictError.
func runPipeline(cmd *cobra.Command, name string, bindings map[string]string) error {
	cfg, err := loadConfig(cmd, bindings)
	if err != nil {
		return err
	}

	files := utils.NewFileManager(cfg.Report.OutputDir)
	logger := newLogger(cmd.ErrOrStderr(), cfg.Log, verbose, files.RunID)

	runner := pipeline.New(pipeline.Options{
		Config: cfg,
		Logger: &logger,
		Stdout: cmd.OutOrStdout(),
		Files:  files,
	})

	result, err := runner.Run(name)
	if err != nil {
		logger.Error().Err(err).Str("pipeline", name).Msg("evaluation aborted")
		return err
	}

	if !result.Passed && cfg.Report.FailExitCode != 0 {
		return &verdictError{pipeline: name, code: cfg.Report.FailExitCode}
	}
	return nil
}
