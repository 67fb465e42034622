package forecast

import (
	"errors"
	"math"
	"testing"

	"github.com/ginjaninja78/sheetcheck/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowthRateReproducesEndpoints(t *testing.T) {
	series := [][]float64{
		{100, 121},
		{100, 110, 90, 150},
		{2500, 2400, 2300, 2000, 1800},
		{10, 10, 10},
		{1, 5, 3, 2, 8, 13, 21, 34, 55},
	}

	for _, s := range series {
		rate, err := GrowthRate(s)
		require.NoError(t, err)

		start, end := s[0], s[len(s)-1]
		got := start * math.Pow(1+rate, float64(len(s)-1))
		assert.InDelta(t, end, got, 1e-9*math.Max(1, end))
	}
}

func TestGrowthRateUndefined(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
	}{
		{"empty", nil},
		{"single value", []float64{100}},
		{"zero start", []float64{0, 100}},
		{"negative start", []float64{-5, 100}},
		{"negative end", []float64{100, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GrowthRate(tt.series)
			var compErr *types.ComputationError
			require.True(t, errors.As(err, &compErr), "got %v", err)
			assert.Equal(t, "growth rate", compErr.Op)
		})
	}
}

func TestProjectDirection(t *testing.T) {
	up := Project(1000, 0.05, 6, RoundEachStep)
	down := Project(1000, -0.05, 6, RoundEachStep)
	flat := Project(1000, 0, 6, RoundEachStep)

	require.Len(t, up, 6)
	for i := 1; i < 6; i++ {
		assert.Greater(t, up[i], up[i-1])
		assert.Less(t, down[i], down[i-1])
		assert.Equal(t, flat[i], flat[i-1])
	}
	assert.Equal(t, 1000.0, flat[0])
}

func TestProjectRoundingModes(t *testing.T) {
	// 0.5% growth from 100.01: the step mode compounds from the rounded
	// cents, the output mode from the exact value.
	step := Project(100.01, 0.005, 3, RoundEachStep)
	output := Project(100.01, 0.005, 3, RoundOutputOnly)

	assert.Equal(t, []float64{100.51, 101.01, 101.52}, step)

	exact := 100.01
	for i := 0; i < 3; i++ {
		exact *= 1.005
		assert.Equal(t, Round(exact, 2), output[i])
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 2.67, Round(2.675, 2))
	assert.Equal(t, 1.0, Round(0.5+0.5, 2))
	assert.Equal(t, 12.3457, Round(12.34567, 4))
	assert.Equal(t, -1.24, Round(-1.235001, 2))
	assert.True(t, math.IsInf(Round(math.Inf(1), 2), 1))
}

func TestErrorPct(t *testing.T) {
	pct, err := ErrorPct(101, 100)
	require.NoError(t, err)
	assert.InDelta(t, 0.01, pct, 1e-12)

	pct, err = ErrorPct(99, 100)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pct, 0.0)

	_, err = ErrorPct(5, 0)
	var compErr *types.ComputationError
	require.True(t, errors.As(err, &compErr))
	assert.Equal(t, "error percentage", compErr.Op)
}

func TestParseRoundingMode(t *testing.T) {
	mode, err := ParseRoundingMode("output")
	require.NoError(t, err)
	assert.Equal(t, RoundOutputOnly, mode)

	_, err = ParseRoundingMode("banker")
	assert.Error(t, err)
}
