package forecast

import (
	"errors"
	"strconv"
	"testing"

	"github.com/ginjaninja78/sheetcheck/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyTable(values ...string) *types.Table {
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{"M" + strconv.Itoa(i+1), v}
	}
	return types.NewTable("historical_revenue", []string{"Month", "Revenue"}, rows)
}

func forecastTable(values ...string) *types.Table {
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{"P" + strconv.Itoa(i+1), v, ""}
	}
	return types.NewTable("Revenue_Forecast", []string{"Period", "Forecasted_Revenue", "Notes"}, rows)
}

func TestEvaluateMatchingForecast(t *testing.T) {
	history := historyTable("100", "n/a", "110", "121")
	forecast := forecastTable("133.1", "146.41", "161.05", "177.16", "194.88", "214.37")

	res, err := Evaluate(history, forecast, DefaultOptions())
	require.NoError(t, err)

	assert.InDelta(t, 0.1, res.GrowthRate, 1e-12)
	assert.Equal(t, 3, res.HistoricalValues)
	assert.Equal(t, "Forecasted_Revenue", res.Column)
	assert.Contains(t, res.MatchRule, "substring")
	assert.True(t, res.Passed)

	require.Len(t, res.Rows, 6)
	assert.Equal(t, "M4", res.Rows[0].Label)
	assert.Equal(t, "M9", res.Rows[5].Label)
	assert.Equal(t, []float64{133.1, 146.41, 161.05, 177.16, 194.88, 214.37}, []float64{
		res.Rows[0].Expected, res.Rows[1].Expected, res.Rows[2].Expected,
		res.Rows[3].Expected, res.Rows[4].Expected, res.Rows[5].Expected,
	})
	for _, row := range res.Rows {
		assert.True(t, row.Pass)
		assert.InDelta(t, 0, row.ErrorPct, 1e-12)
	}
}

func TestEvaluateToleranceBoundary(t *testing.T) {
	history := historyTable("100", "100")

	// Flat history: every expected value is exactly 100.
	res, err := Evaluate(history, forecastTable("101", "99", "100", "100", "100", "101.01"), DefaultOptions())
	require.NoError(t, err)

	assert.True(t, res.Rows[0].Pass, "an error of exactly 1% passes")
	assert.True(t, res.Rows[1].Pass)
	assert.False(t, res.Rows[5].Pass)
	assert.False(t, res.Passed)
	assert.Equal(t, 1.0, res.Rows[0].ErrorPercent())
	assert.Equal(t, 1.01, res.Rows[5].ErrorPercent())
}

func TestEvaluateSkipsNonNumericForecastValues(t *testing.T) {
	history := historyTable("100", "100")
	forecast := forecastTable("", "100", "bad", "100", "100", "100", "100", "100", "999")

	res, err := Evaluate(history, forecast, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Passed, "only the first six numeric values are compared")
}

func TestEvaluateInsufficientRows(t *testing.T) {
	_, err := Evaluate(historyTable("100", "110"), forecastTable("1", "2", "x", "3", "4"), DefaultOptions())

	var rowsErr *types.InsufficientRowsError
	require.True(t, errors.As(err, &rowsErr), "got %v", err)
	assert.Equal(t, 6, rowsErr.Want)
	assert.Equal(t, 4, rowsErr.Got)
	assert.Equal(t, "Forecasted_Revenue", rowsErr.Column)
}

func TestEvaluateColumnNotFound(t *testing.T) {
	forecast := types.NewTable("Revenue_Forecast", []string{"Period", "Model", "Notes"}, [][]string{{"1", "2", ""}})

	_, err := Evaluate(historyTable("100", "110"), forecast, DefaultOptions())

	var notFound *types.ColumnNotFoundError
	require.True(t, errors.As(err, &notFound), "got %v", err)
	assert.Equal(t, []string{"Period", "Model", "Notes"}, notFound.Available)
}

func TestEvaluateZeroPeriods(t *testing.T) {
	_, err := Evaluate(historyTable("100", "oops"), forecastTable("1", "2", "3", "4", "5", "6"), DefaultOptions())

	var compErr *types.ComputationError
	require.True(t, errors.As(err, &compErr), "got %v", err)
}

func TestEvaluateMissingHistoricalColumn(t *testing.T) {
	opts := DefaultOptions()
	opts.HistoricalColumn = "Sales"

	_, err := Evaluate(historyTable("100", "110"), forecastTable("1", "2", "3", "4", "5", "6"), opts)

	var notFound *types.ColumnNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Sales", notFound.Column)
}

func TestEvaluateOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Horizon = 2
	opts.FirstPeriodLabel = 37
	opts.LabelPrefix = "Q"
	opts.Tolerance = 0

	res, err := Evaluate(historyTable("100", "100"), forecastTable("100", "100.5"), opts)
	require.NoError(t, err)

	require.Len(t, res.Rows, 2)
	assert.Equal(t, "Q37", res.Rows[0].Label)
	assert.Equal(t, "Q38", res.Rows[1].Label)
	assert.True(t, res.Rows[0].Pass)
	assert.False(t, res.Rows[1].Pass)
}

func TestEvaluateZeroExpected(t *testing.T) {
	// A history ending at zero projects zeros, which cannot be compared.
	_, err := Evaluate(historyTable("100", "0"), forecastTable("0", "0", "0", "0", "0", "0"), DefaultOptions())

	var compErr *types.ComputationError
	require.True(t, errors.As(err, &compErr), "got %v", err)
	assert.Equal(t, "error percentage", compErr.Op)
}
