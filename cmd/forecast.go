// =============================================================================
// Sheetcheck - Forecast Command
// =============================================================================
//
// COMMAND USAGE:
//   sheetcheck forecast [flags]
//
// PROCESSING PIPELINE:
//   1. Load the historical revenue table and the forecast table
//   2. Compute the compound monthly growth rate of the history
//   3. Project the horizon forward from the last historical value
//   4. Compare the detected forecast column with the projection
//   5. Print the report and write forecast_eval_results.csv
//
// =============================================================================

package cmd

import (
	"github.com/ginjaninja78/sheetcheck/internal/pipeline"
	"github.com/spf13/cobra"
)

// forecastCmd represents the 'forecast' command.
var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Evaluate a revenue forecast against a compound-growth projection",
	Long: `The forecast command reads the historical revenue table and the forecast
table from the input workbook, projects the historical revenue forward at its
compound monthly growth rate and checks that every forecast period is within
the tolerance of the projection.

Rounding modes:
  step    round each projected value to cents and compound from it (default)
  output  compound the exact value and round only what is reported`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, pipeline.NameForecast, forecastBindings)
	},
}

// forecastBindings maps configuration keys to forecast flags.
var forecastBindings = map[string]string{
	"forecast.input":        "input",
	"forecast.tolerance":    "tolerance",
	"forecast.horizon":      "horizon",
	"forecast.rounding":     "rounding",
	"report.output_dir":     "output-dir",
	"report.format":         "format",
	"report.fail_exit_code": "fail-exit-code",
}

func init() {
	rootCmd.AddCommand(forecastCmd)

	f := forecastCmd.Flags()
	f.String("input", "forecasting.xlsx", "Workbook (or directory of CSV files) with both tables")
	f.Float64("tolerance", 0.01, "Maximum relative error for a period to pass")
	f.Int("horizon", 6, "Number of projected periods")
	f.String("rounding", "step", "Rounding mode: step or output")
	addReportFlags(forecastCmd)
}

// addReportFlags registers the report flags shared by both pipelines.
func addReportFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("output-dir", ".", "Directory the report is written to")
	f.String("format", "csv", "Report file format: csv, xlsx or both")
	f.Int("fail-exit-code", 2, "Exit code for a FAIL verdict (0 exits successfully)")
}
