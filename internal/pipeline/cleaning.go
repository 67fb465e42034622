package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/ginjaninja78/sheetcheck/internal/report"
	"github.com/ginjaninja78/sheetcheck/internal/validation"
)

// CleaningColumns is the header of the cleaning report.
var CleaningColumns = []string{"Check", "Status"}

// RunCleaning loads the cleaned table, runs the cleaning checks and writes
// the report.
func (r *Runner) RunCleaning() (*Result, error) {
	start := time.Now()
	cc := r.cfg.Cleaning
	log := r.log.With().Str("pipeline", NameCleaning).Logger()

	log.Info().Str("input", cc.Input).Msg("loading cleaned workbook")

	src, err := r.open(cc.Input)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	table, err := src.Table(cc.Sheet, cc.HeaderRow)
	if err != nil {
		return nil, err
	}

	res := validation.Validate(table, validation.Options{
		ExpectedColumns: cc.ExpectedColumns,
		IDColumn:        cc.IDColumn,
		NameColumn:      cc.NameColumn,
		RevenueColumn:   cc.RevenueColumn,
		DateColumn:      cc.DateColumn,
		Logger:          log,
	})

	rep := CleaningReport(res)
	rep.Notes = append([]string{
		fmt.Sprintf("Total cleaned rows: %d", table.RowCount()),
		fmt.Sprintf("Detected columns: [%s]", strings.Join(table.Headers, ", ")),
	}, rep.Notes...)

	result := &Result{
		Pipeline:  NameCleaning,
		InputPath: cc.Input,
		Report:    rep,
		Passed:    res.Passed,
	}
	return r.finish(result, cc.OutputFile, start)
}

// CleaningReport renders cleaning check outcomes as a report, one row per
// check in reporting order.
func CleaningReport(res *validation.Result) *report.Report {
	rep := report.New("CLEANING EVALUATION REPORT", CleaningColumns...)
	for _, c := range res.Checks {
		rep.AddRow(string(c.Name), report.StatusOf(c.Passed))
	}
	rep.Passed = res.Passed
	return rep
}
