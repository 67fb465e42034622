package forecast

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ginjaninja78/sheetcheck/internal/types"
)

// RoundingMode selects how projected values are rounded.
type RoundingMode string

const (
	// RoundEachStep rounds every projected value to cents and compounds the
	// next period from the rounded value.
	RoundEachStep RoundingMode = "step"

	// RoundOutputOnly compounds the exact value and rounds only the value
	// that is reported for each period.
	RoundOutputOnly RoundingMode = "output"
)

// ParseRoundingMode converts a configuration string to a RoundingMode.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch RoundingMode(s) {
	case RoundEachStep, RoundOutputOnly:
		return RoundingMode(s), nil
	default:
		return "", fmt.Errorf("unknown rounding mode %q", s)
	}
}

// GrowthRate returns the compound per-period growth rate that takes the
// first value of series to the last one:
//
//	cmgr = (end/start)^(1/periods) - 1, periods = len(series) - 1
//
// The series must hold at least two values, a positive start and a
// non-negative end.
func GrowthRate(series []float64) (float64, error) {
	if len(series) < 2 {
		return 0, &types.ComputationError{
			Op:       "growth rate",
			Reason:   "at least two valid revenue values are required (zero elapsed periods)",
			Operands: map[string]float64{"values": float64(len(series))},
		}
	}

	start := series[0]
	end := series[len(series)-1]
	periods := len(series) - 1

	if start <= 0 {
		return 0, &types.ComputationError{
			Op:       "growth rate",
			Reason:   "starting revenue must be positive",
			Operands: map[string]float64{"start": start},
		}
	}
	if end < 0 {
		return 0, &types.ComputationError{
			Op:       "growth rate",
			Reason:   "ending revenue must not be negative",
			Operands: map[string]float64{"end": end},
		}
	}

	rate := math.Pow(end/start, 1/float64(periods)) - 1
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, &types.ComputationError{
			Op:       "growth rate",
			Reason:   "result is not a finite number",
			Operands: map[string]float64{"start": start, "end": end, "periods": float64(periods)},
		}
	}

	return rate, nil
}

// Project compounds from base by rate for horizon periods and returns the
// projected values rounded to two decimal places.
func Project(base, rate float64, horizon int, mode RoundingMode) []float64 {
	out := make([]float64, 0, horizon)
	current := base

	for i := 0; i < horizon; i++ {
		current *= 1 + rate
		rounded := Round(current, 2)
		if mode == RoundEachStep {
			current = rounded
		}
		out = append(out, rounded)
	}

	return out
}

// Round rounds x to the given number of decimal places, half to even on the
// exact binary value. Round(2.675, 2) is 2.67 because 2.675 is stored as
// 2.67499999...
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	return r
}

// ErrorPct returns |actual - expected| / expected.
func ErrorPct(actual, expected float64) (float64, error) {
	if expected == 0 {
		return 0, &types.ComputationError{
			Op:       "error percentage",
			Reason:   "expected value is zero",
			Operands: map[string]float64{"actual": actual, "expected": expected},
		}
	}

	pct := math.Abs(actual-expected) / expected
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, &types.ComputationError{
			Op:       "error percentage",
			Reason:   "result is not a finite number",
			Operands: map[string]float64{"actual": actual, "expected": expected},
		}
	}
	return pct, nil
}
