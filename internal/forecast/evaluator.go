// =============================================================================
// Sheetcheck - Forecast Evaluator
// =============================================================================
//
// The forecast evaluator checks that a model's revenue forecast equals a pure
// compound-growth extrapolation of the revenue history.
//
// EVALUATION STEPS:
//   1. Coerce the historical revenue column to numbers, dropping the rest
//   2. Derive the compound growth rate from the first and last values
//   3. Project Horizon periods forward from the last value
//   4. Find the forecast column in the forecast table (matcher chain)
//   5. Take the first Horizon numeric values of that column
//   6. Compare period by period: |actual - expected| / expected <= Tolerance
//
// Any undefined arithmetic or missing input is returned as an error; a
// forecast that is merely wrong is a Result with Passed == false.
//
// =============================================================================

package forecast

import (
	"fmt"

	"github.com/ginjaninja78/sheetcheck/internal/types"
	"github.com/rs/zerolog"
)

// =============================================================================
// OPTIONS AND RESULT
// =============================================================================

// Options configures one evaluation.
type Options struct {
	// HistoricalColumn is the revenue column of the history table.
	HistoricalColumn string

	// Matcher locates the forecast column.
	Matcher MatcherChain

	// Tolerance is the largest relative error that passes (inclusive).
	Tolerance float64

	// Horizon is the number of projected periods.
	Horizon int

	// Rounding selects step-wise or output-only rounding.
	Rounding RoundingMode

	// LabelPrefix and FirstPeriodLabel build the period labels ("M37").
	// FirstPeriodLabel 0 continues the historical numbering.
	LabelPrefix      string
	FirstPeriodLabel int

	Logger zerolog.Logger
}

// DefaultOptions mirrors the built-in configuration.
func DefaultOptions() Options {
	return Options{
		HistoricalColumn: "Revenue",
		Matcher:          NewMatcherChain(nil, []string{"forecast", "revenue"}),
		Tolerance:        0.01,
		Horizon:          6,
		Rounding:         RoundEachStep,
		LabelPrefix:      "M",
		Logger:           zerolog.Nop(),
	}
}

// Row is the comparison for one projected period.
type Row struct {
	// Label names the period, e.g. "M37".
	Label string

	// Expected is the projected value (already rounded to cents).
	Expected float64

	// Actual is the model's value as read from the sheet.
	Actual float64

	// ErrorPct is the unrounded relative error |actual-expected|/expected.
	ErrorPct float64

	// Pass is ErrorPct <= Tolerance.
	Pass bool
}

// ModelOutput is Actual rounded for reporting.
func (r Row) ModelOutput() float64 {
	return Round(r.Actual, 2)
}

// ErrorPercent is ErrorPct expressed in percent, rounded for reporting.
func (r Row) ErrorPercent() float64 {
	return Round(r.ErrorPct*100, 4)
}

// Result is the outcome of a forecast evaluation.
type Result struct {
	// GrowthRate is the compound per-period growth rate.
	GrowthRate float64

	// HistoricalValues is the number of valid historical revenue values.
	HistoricalValues int

	// Column is the forecast column that was compared.
	Column string

	// MatchRule is the matcher rule that selected Column.
	MatchRule string

	// Rows holds one comparison per projected period.
	Rows []Row

	// Passed is true when every row passes.
	Passed bool
}

// =============================================================================
// EVALUATION
// =============================================================================

// Evaluate compares the forecast table against a projection of the history
// table.
//
// PARAMETERS:
//   - history: The historical revenue table.
//   - forecast: The model's forecast table.
//   - opts: Column names, tolerance, horizon and rounding.
//
// RETURNS:
//   - The per-period comparison.
//   - *types.ColumnNotFoundError, *types.ComputationError or
//     *types.InsufficientRowsError when the comparison cannot be made.
func Evaluate(history, forecast *types.Table, opts Options) (*Result, error) {
	log := opts.Logger

	if opts.Horizon < 1 {
		return nil, fmt.Errorf("horizon must be at least 1 (got %d)", opts.Horizon)
	}

	// =========================================================================
	// STEP 1-2: GROWTH RATE
	// =========================================================================

	revenue, err := history.NumericColumn(opts.HistoricalColumn)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Int("rows", history.RowCount()).
		Int("valid", len(revenue)).
		Msg("historical revenue loaded")

	rate, err := GrowthRate(revenue)
	if err != nil {
		return nil, err
	}
	log.Info().
		Float64("cmgr_pct", Round(rate*100, 4)).
		Int("periods", len(revenue)-1).
		Msg("calculated compound growth rate")

	// =========================================================================
	// STEP 3: PROJECTION
	// =========================================================================

	expected := Project(revenue[len(revenue)-1], rate, opts.Horizon, opts.Rounding)

	// =========================================================================
	// STEP 4-5: MODEL OUTPUT
	// =========================================================================

	log.Debug().Strs("columns", forecast.Headers).Msg("detected forecast table columns")

	column, rule, ok := opts.Matcher.Find(forecast.Headers)
	if !ok {
		return nil, &types.ColumnNotFoundError{
			Table:     forecast.Name,
			Column:    "matching " + opts.Matcher.Describe(),
			Available: forecast.Headers,
		}
	}
	log.Info().Str("column", column).Str("rule", rule).Msg("selected forecast column")

	actuals, err := forecast.NumericColumn(column)
	if err != nil {
		return nil, err
	}
	if len(actuals) < opts.Horizon {
		return nil, &types.InsufficientRowsError{
			Table:  forecast.Name,
			Column: column,
			Want:   opts.Horizon,
			Got:    len(actuals),
		}
	}

	// =========================================================================
	// STEP 6: COMPARE
	// =========================================================================

	first := opts.FirstPeriodLabel
	if first == 0 {
		first = len(revenue) + 1
	}

	result := &Result{
		GrowthRate:       rate,
		HistoricalValues: len(revenue),
		Column:           column,
		MatchRule:        rule,
		Rows:             make([]Row, 0, opts.Horizon),
		Passed:           true,
	}

	for i := 0; i < opts.Horizon; i++ {
		pct, err := ErrorPct(actuals[i], expected[i])
		if err != nil {
			return nil, fmt.Errorf("period %d: %w", i+1, err)
		}

		row := Row{
			Label:    fmt.Sprintf("%s%d", opts.LabelPrefix, first+i),
			Expected: expected[i],
			Actual:   actuals[i],
			ErrorPct: pct,
			Pass:     pct <= opts.Tolerance,
		}
		if !row.Pass {
			result.Passed = false
			log.Debug().
				Str("period", row.Label).
				Float64("expected", row.Expected).
				Float64("actual", row.Actual).
				Float64("error_pct", row.ErrorPercent()).
				Msg("period outside tolerance")
		}
		result.Rows = append(result.Rows, row)
	}

	return result, nil
}
