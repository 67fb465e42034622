// =============================================================================
// Sheetcheck - Configuration Module
// =============================================================================
//
// This module is responsible for loading the run configuration. Every value a
// pipeline needs (input path, sheet names, tolerance, forecast horizon, output
// names) lives in one Config value that is passed into the pipeline; nothing
// is read from package-level globals.
//
// SOURCES (highest precedence first):
//   1. Command-line flags bound by the cobra commands
//   2. Environment variables (SHEETCHECK_FORECAST_TOLERANCE, ...)
//   3. The YAML configuration file (sheetcheck.yaml by default)
//   4. Built-in defaults (see Default)
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up when --config is not given.
const DefaultFile = "sheetcheck.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SHEETCHECK"

// Rounding modes for the forecast projection.
const (
	// RoundingStep rounds every projected value and compounds from the
	// rounded value.
	RoundingStep = "step"

	// RoundingOutput compounds the unrounded value and only rounds what is
	// reported.
	RoundingOutput = "output"
)

// Report formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatBoth = "both"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the complete run configuration.
type Config struct {
	Forecast ForecastConfig `yaml:"forecast" mapstructure:"forecast"`
	Cleaning CleaningConfig `yaml:"cleaning" mapstructure:"cleaning"`
	Report   ReportConfig   `yaml:"report" mapstructure:"report"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// ForecastConfig configures the forecast evaluation pipeline.
type ForecastConfig struct {
	// Input is the workbook (or CSV directory) holding both tables.
	Input string `yaml:"input" mapstructure:"input"`

	// HistoricalSheet is the table with the revenue history.
	// Default: "historical_revenue"
	HistoricalSheet string `yaml:"historical_sheet" mapstructure:"historical_sheet"`

	// HistoricalHeaderRow is the number of rows skipped before the header.
	HistoricalHeaderRow int `yaml:"historical_header_row" mapstructure:"historical_header_row"`

	// HistoricalColumn is the revenue column of the history table.
	// Default: "Revenue"
	HistoricalColumn string `yaml:"historical_column" mapstructure:"historical_column"`

	// ForecastSheet is the table with the model's forecast.
	// Default: "Revenue_Forecast"
	ForecastSheet string `yaml:"forecast_sheet" mapstructure:"forecast_sheet"`

	// ForecastHeaderRow is the number of rows skipped before the header.
	// Default: 6 (the header sits on the 7th row)
	ForecastHeaderRow int `yaml:"forecast_header_row" mapstructure:"forecast_header_row"`

	// ExactColumns are forecast column names tried first, in order.
	ExactColumns []string `yaml:"exact_columns" mapstructure:"exact_columns"`

	// Keywords are matched case-insensitively against header names when no
	// exact column is present. Default: ["forecast", "revenue"]
	Keywords []string `yaml:"keywords" mapstructure:"keywords"`

	// Tolerance is the maximum relative error for a period to pass.
	// Default: 0.01
	Tolerance float64 `yaml:"tolerance" mapstructure:"tolerance"`

	// Horizon is the number of projected periods.
	// Default: 6
	Horizon int `yaml:"horizon" mapstructure:"horizon"`

	// Rounding is "step" or "output". Default: "step"
	Rounding string `yaml:"rounding" mapstructure:"rounding"`

	// LabelPrefix prefixes period numbers in the Month column. Default: "M"
	LabelPrefix string `yaml:"label_prefix" mapstructure:"label_prefix"`

	// FirstPeriodLabel is the number of the first projected period.
	// 0 means "one past the number of valid historical periods".
	FirstPeriodLabel int `yaml:"first_period_label" mapstructure:"first_period_label"`

	// OutputFile is the report file name (may contain placeholders).
	// Default: "forecast_eval_results.csv"
	OutputFile string `yaml:"output_file" mapstructure:"output_file"`
}

// CleaningConfig configures the cleaning evaluation pipeline.
type CleaningConfig struct {
	// Input is the workbook (or CSV directory / file) with the cleaned table.
	Input string `yaml:"input" mapstructure:"input"`

	// Sheet is the cleaned table. Default: "Cleaned_Data"
	Sheet string `yaml:"sheet" mapstructure:"sheet"`

	// HeaderRow is the number of rows skipped before the header.
	HeaderRow int `yaml:"header_row" mapstructure:"header_row"`

	// ExpectedColumns is the exact column set a cleaned table must have.
	ExpectedColumns []string `yaml:"expected_columns" mapstructure:"expected_columns"`

	IDColumn      string `yaml:"id_column" mapstructure:"id_column"`
	NameColumn    string `yaml:"name_column" mapstructure:"name_column"`
	RevenueColumn string `yaml:"revenue_column" mapstructure:"revenue_column"`
	DateColumn    string `yaml:"date_column" mapstructure:"date_column"`

	// OutputFile is the report file name (may contain placeholders).
	// Default: "messy_cleaning_eval_results.csv"
	OutputFile string `yaml:"output_file" mapstructure:"output_file"`
}

// ReportConfig controls where and how reports are written.
type ReportConfig struct {
	// OutputDir is the directory reports are written to. Default: "."
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`

	// Format is "csv", "xlsx" or "both". Default: "csv"
	Format string `yaml:"format" mapstructure:"format"`

	// FailExitCode is the process exit code for a FAIL verdict.
	// 0 makes a FAIL verdict exit successfully. Default: 2
	FailExitCode int `yaml:"fail_exit_code" mapstructure:"fail_exit_code"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	// Level is a zerolog level name. Default: "info"
	Level string `yaml:"level" mapstructure:"level"`

	// Format is "console" or "json". Default: "console"
	Format string `yaml:"format" mapstructure:"format"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Forecast: ForecastConfig{
			Input:               "forecasting.xlsx",
			HistoricalSheet:     "historical_revenue",
			HistoricalHeaderRow: 0,
			HistoricalColumn:    "Revenue",
			ForecastSheet:       "Revenue_Forecast",
			ForecastHeaderRow:   6,
			ExactColumns:        []string{},
			Keywords:            []string{"forecast", "revenue"},
			Tolerance:           0.01,
			Horizon:             6,
			Rounding:            RoundingStep,
			LabelPrefix:         "M",
			FirstPeriodLabel:    0,
			OutputFile:          "forecast_eval_results.csv",
		},
		Cleaning: CleaningConfig{
			Input:           "messy_data_cleaning.xlsx",
			Sheet:           "Cleaned_Data",
			HeaderRow:       0,
			ExpectedColumns: []string{"OrderID", "Customer_Name", "revenue", "Order Date"},
			IDColumn:        "OrderID",
			NameColumn:      "Customer_Name",
			RevenueColumn:   "revenue",
			DateColumn:      "Order Date",
			OutputFile:      "messy_cleaning_eval_results.csv",
		},
		Report: ReportConfig{
			OutputDir:    ".",
			Format:       FormatCSV,
			FailExitCode: 2,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// setDefaults registers every default with viper so that environment
// variables are honoured for keys absent from the file.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("forecast.input", d.Forecast.Input)
	v.SetDefault("forecast.historical_sheet", d.Forecast.HistoricalSheet)
	v.SetDefault("forecast.historical_header_row", d.Forecast.HistoricalHeaderRow)
	v.SetDefault("forecast.historical_column", d.Forecast.HistoricalColumn)
	v.SetDefault("forecast.forecast_sheet", d.Forecast.ForecastSheet)
	v.SetDefault("forecast.forecast_header_row", d.Forecast.ForecastHeaderRow)
	v.SetDefault("forecast.exact_columns", d.Forecast.ExactColumns)
	v.SetDefault("forecast.keywords", d.Forecast.Keywords)
	v.SetDefault("forecast.tolerance", d.Forecast.Tolerance)
	v.SetDefault("forecast.horizon", d.Forecast.Horizon)
	v.SetDefault("forecast.rounding", d.Forecast.Rounding)
	v.SetDefault("forecast.label_prefix", d.Forecast.LabelPrefix)
	v.SetDefault("forecast.first_period_label", d.Forecast.FirstPeriodLabel)
	v.SetDefault("forecast.output_file", d.Forecast.OutputFile)

	v.SetDefault("cleaning.input", d.Cleaning.Input)
	v.SetDefault("cleaning.sheet", d.Cleaning.Sheet)
	v.SetDefault("cleaning.header_row", d.Cleaning.HeaderRow)
	v.SetDefault("cleaning.expected_columns", d.Cleaning.ExpectedColumns)
	v.SetDefault("cleaning.id_column", d.Cleaning.IDColumn)
	v.SetDefault("cleaning.name_column", d.Cleaning.NameColumn)
	v.SetDefault("cleaning.revenue_column", d.Cleaning.RevenueColumn)
	v.SetDefault("cleaning.date_column", d.Cleaning.DateColumn)
	v.SetDefault("cleaning.output_file", d.Cleaning.OutputFile)

	v.SetDefault("report.output_dir", d.Report.OutputDir)
	v.SetDefault("report.format", d.Report.Format)
	v.SetDefault("report.fail_exit_code", d.Report.FailExitCode)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// =============================================================================
// LOADING
// =============================================================================

// LoadOptions describes where configuration comes from.
type LoadOptions struct {
	// Path is the configuration file. Empty means DefaultFile.
	Path string

	// Required makes a missing file an error. It is set when the user passed
	// --config explicitly.
	Required bool

	// Flags is the command's flag set; may be nil.
	Flags *pflag.FlagSet

	// Bindings maps configuration keys to flag names in Flags.
	Bindings map[string]string
}

// Load reads the configuration.
//
// PARAMETERS:
//   - opts: file location and flag bindings.
//
// RETURNS:
//   - The merged, validated configuration.
//   - An error if the file cannot be parsed or a value is invalid.
func Load(opts LoadOptions) (*Config, error) {
	path := opts.Path
	if path == "" {
		path = DefaultFile
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default())

	if opts.Flags != nil {
		for key, name := range opts.Bindings {
			flag := opts.Flags.Lookup(name)
			if flag == nil {
				return nil, fmt.Errorf("unknown flag %q bound to %s", name, key)
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %q: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if !isNotExist(err) || opts.Required {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	return errors.Is(err, os.ErrNotExist)
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values no pipeline can run with.
func Validate(cfg *Config) error {
	var problems []string

	f := cfg.Forecast
	if f.Tolerance < 0 || math.IsNaN(f.Tolerance) || math.IsInf(f.Tolerance, 0) {
		problems = append(problems, fmt.Sprintf("forecast.tolerance must be a finite value >= 0 (got %v)", f.Tolerance))
	}
	if f.Horizon < 1 {
		problems = append(problems, fmt.Sprintf("forecast.horizon must be at least 1 (got %d)", f.Horizon))
	}
	if f.HistoricalHeaderRow < 0 || f.ForecastHeaderRow < 0 {
		problems = append(problems, "forecast header rows must not be negative")
	}
	if f.Rounding != RoundingStep && f.Rounding != RoundingOutput {
		problems = append(problems, fmt.Sprintf("forecast.rounding must be %q or %q (got %q)", RoundingStep, RoundingOutput, f.Rounding))
	}
	if len(f.ExactColumns) == 0 && len(f.Keywords) == 0 {
		problems = append(problems, "forecast.exact_columns and forecast.keywords cannot both be empty")
	}
	if f.FirstPeriodLabel < 0 {
		problems = append(problems, "forecast.first_period_label must not be negative")
	}

	c := cfg.Cleaning
	if c.HeaderRow < 0 {
		problems = append(problems, "cleaning.header_row must not be negative")
	}
	if len(c.ExpectedColumns) == 0 {
		problems = append(problems, "cleaning.expected_columns must not be empty")
	}

	switch cfg.Report.Format {
	case FormatCSV, FormatXLSX, FormatBoth:
	default:
		problems = append(problems, fmt.Sprintf("report.format must be csv, xlsx or both (got %q)", cfg.Report.Format))
	}

	switch cfg.Log.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("log.format must be console or json (got %q)", cfg.Log.Format))
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// =============================================================================
// WRITING
// =============================================================================

// WriteDefault writes the default configuration as YAML to path.
// An existing file is only replaced when overwrite is true.
func WriteDefault(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}

	header := "# sheetcheck configuration\n# Environment overrides use the " + EnvPrefix + "_ prefix, e.g. " +
		EnvPrefix + "_FORECAST_TOLERANCE=0.02\n"

	if err := os.WriteFile(path, append([]byte(header), data...), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
