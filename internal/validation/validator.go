// =============================================================================
// Sheetcheck - Cleaning Validation Engine
// =============================================================================
//
// This module checks that a table claiming to be "cleaned" follows the
// cleaned-data contract. Five independent checks are run:
//
//   correct_columns       the header set equals the expected column set
//   valid_revenue         every revenue value is numeric
//   title_case_names      every customer name is Title Case
//   valid_dates           every order date looks like YYYY-MM-DD
//   no_duplicate_orderid  no order id occurs twice
//
// VALIDATION STRATEGY:
//   - Every check runs, whatever the earlier checks returned
//   - Bad rows are counted, never thrown: a failed check is a report line
//   - A check whose column is missing fails (and the column check fails too)
//
// =============================================================================

package validation

import (
	"github.com/ginjaninja78/sheetcheck/internal/types"
	"github.com/rs/zerolog"
)

// maxSamples caps the offending values kept per check.
const maxSamples = 5

// =============================================================================
// CHECK RESULT
// =============================================================================

// Check names a cleaning check.
type Check string

const (
	CheckCorrectColumns     Check = "correct_columns"
	CheckValidRevenue       Check = "valid_revenue"
	CheckTitleCaseNames     Check = "title_case_names"
	CheckValidDates         Check = "valid_dates"
	CheckNoDuplicateOrderID Check = "no_duplicate_orderid"
)

// Checks returns every check name in reporting order.
func Checks() []Check {
	out := make([]Check, len(rules))
	for i, r := range rules {
		out[i] = r.name
	}
	return out
}

// CheckResult is the outcome of one check.
type CheckResult struct {
	Name   Check
	Passed bool

	// Failures counts offending rows (or columns, for correct_columns).
	Failures int

	// Samples holds up to five offending values.
	Samples []string

	// MissingColumn is set when the check could not find its column.
	MissingColumn string
}

func (r *CheckResult) fail(sample string) {
	r.Passed = false
	r.Failures++
	if len(r.Samples) < maxSamples {
		r.Samples = append(r.Samples, sample)
	}
}

func (r *CheckResult) missingColumn(column string) {
	r.Passed = false
	r.MissingColumn = column
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// Result holds every check outcome in reporting order.
type Result struct {
	Checks []CheckResult

	// Rows is the number of data rows checked.
	Rows int

	// Passed is true when every check passed.
	Passed bool
}

// Status returns the outcome of the named check; ok is false for an unknown
// name.
func (r *Result) Status(name Check) (passed, ok bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c.Passed, true
		}
	}
	return false, false
}

// Map returns check name -> pass.
func (r *Result) Map() map[Check]bool {
	m := make(map[Check]bool, len(r.Checks))
	for _, c := range r.Checks {
		m[c.Name] = c.Passed
	}
	return m
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Options names the columns the checks read.
type Options struct {
	ExpectedColumns []string
	IDColumn        string
	NameColumn      string
	RevenueColumn   string
	DateColumn      string

	Logger zerolog.Logger
}

// DefaultOptions returns the standard cleaned-data contract.
func DefaultOptions() Options {
	return Options{
		ExpectedColumns: []string{"OrderID", "Customer_Name", "revenue", "Order Date"},
		IDColumn:        "OrderID",
		NameColumn:      "Customer_Name",
		RevenueColumn:   "revenue",
		DateColumn:      "Order Date",
		Logger:          zerolog.Nop(),
	}
}

// Validate runs every check against the table.
func Validate(t *types.Table, opts Options) *Result {
	log := opts.Logger
	log.Info().Int("rows", t.RowCount()).Strs("columns", t.Headers).Msg("validating cleaned table")

	result := &Result{
		Checks: make([]CheckResult, 0, len(rules)),
		Rows:   t.RowCount(),
		Passed: true,
	}

	for _, r := range rules {
		res := r.check(t, opts)

		switch {
		case res.MissingColumn != "":
			log.Warn().Str("check", string(res.Name)).Str("column", res.MissingColumn).Msg("column missing, check failed")
		case !res.Passed:
			log.Debug().
				Str("check", string(res.Name)).
				Int("failures", res.Failures).
				Strs("samples", res.Samples).
				Msg("check failed")
		}

		if !res.Passed {
			result.Passed = false
		}
		result.Checks = append(result.Checks, res)
	}

	return result
}
