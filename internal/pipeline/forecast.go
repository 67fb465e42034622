package pipeline

import (
	"fmt"
	"time"

	"github.com/ginjaninja78/sheetcheck/internal/forecast"
	"github.com/ginjaninja78/sheetcheck/internal/report"
)

// ForecastColumns is the header of the forecast report.
var ForecastColumns = []string{"Month", "Expected", "Model_Output", "Error_%", "Pass"}

// RunForecast loads the history and forecast tables, evaluates the forecast
// and writes the report.
func (r *Runner) RunForecast() (*Result, error) {
	start := time.Now()
	fc := r.cfg.Forecast
	log := r.log.With().Str("pipeline", NameForecast).Logger()

	log.Info().Str("input", fc.Input).Msg("loading forecast workbook")

	src, err := r.open(fc.Input)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	history, err := src.Table(fc.HistoricalSheet, fc.HistoricalHeaderRow)
	if err != nil {
		return nil, err
	}
	table, err := src.Table(fc.ForecastSheet, fc.ForecastHeaderRow)
	if err != nil {
		return nil, err
	}

	mode, err := forecast.ParseRoundingMode(fc.Rounding)
	if err != nil {
		return nil, err
	}

	res, err := forecast.Evaluate(history, table, forecast.Options{
		HistoricalColumn: fc.HistoricalColumn,
		Matcher:          forecast.NewMatcherChain(fc.ExactColumns, fc.Keywords),
		Tolerance:        fc.Tolerance,
		Horizon:          fc.Horizon,
		Rounding:         mode,
		LabelPrefix:      fc.LabelPrefix,
		FirstPeriodLabel: fc.FirstPeriodLabel,
		Logger:           log,
	})
	if err != nil {
		return nil, fmt.Errorf("forecast evaluation failed: %w", err)
	}

	result := &Result{
		Pipeline:  NameForecast,
		InputPath: fc.Input,
		Report:    ForecastReport(res),
		Passed:    res.Passed,
	}
	return r.finish(result, fc.OutputFile, start)
}

// ForecastReport renders a forecast evaluation as a report.
func ForecastReport(res *forecast.Result) *report.Report {
	rep := report.New("FORECAST EVALUATION RESULT", ForecastColumns...)
	rep.AddNote(fmt.Sprintf("Calculated CMGR: %s %%", report.Fixed(forecast.Round(res.GrowthRate*100, 4), 4)))
	rep.AddNote(fmt.Sprintf("Forecast column: %s (%s)", res.Column, res.MatchRule))

	for _, row := range res.Rows {
		rep.AddRow(
			row.Label,
			report.Fixed(row.Expected, 2),
			report.Fixed(row.ModelOutput(), 2),
			report.Fixed(row.ErrorPercent(), 4),
			report.Bool(row.Pass),
		)
	}
	rep.Passed = res.Passed
	return rep
}
