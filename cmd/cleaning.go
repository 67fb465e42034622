// =============================================================================
// Sheetcheck - Cleaning Command
// =============================================================================
//
// COMMAND USAGE:
//   sheetcheck cleaning [flags]
//
// CHECKS (reported in this order, all evaluated):
//   correct_columns       column set is exactly the expected set
//   valid_revenue         every revenue value is numeric
//   title_case_names      every customer name is Title Case
//   valid_dates           every order date is YYYY-MM-DD
//   no_duplicate_orderid  order ids are unique
//
// =============================================================================

package cmd

import (
	"github.com/ginjaninja78/sheetcheck/internal/pipeline"
	"github.com/spf13/cobra"
)

// cleaningCmd represents the 'cleaning' command.
var cleaningCmd = &cobra.Command{
	Use:   "cleaning",
	Short: "Evaluate a cleaned table against the cleaning rules",
	Long: `The cleaning command reads the cleaned table from the input workbook and
runs every cleaning check on it. A failing check never stops the others; the
verdict is PASS only when all of them pass.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, pipeline.NameCleaning, cleaningBindings)
	},
}

// cleaningBindings maps configuration keys to cleaning flags.
var cleaningBindings = map[string]string{
	"cleaning.input":        "input",
	"cleaning.sheet":        "sheet",
	"report.output_dir":     "output-dir",
	"report.format":         "format",
	"report.fail_exit_code": "fail-exit-code",
}

func init() {
	rootCmd.AddCommand(cleaningCmd)

	f := cleaningCmd.Flags()
	f.String("input", "messy_data_cleaning.xlsx", "Workbook, CSV file or directory with the cleaned table")
	f.String("sheet", "Cleaned_Data", "Sheet (or CSV file name) of the cleaned table")
	addReportFlags(cleaningCmd)
}
