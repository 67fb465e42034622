package validation

import (
	"regexp"
	"strings"

	"github.com/ginjaninja78/sheetcheck/internal/types"
)

// =============================================================================
// PATTERNS
// =============================================================================

// titleCasePattern accepts one or more whitespace-separated words, each an
// ASCII capital followed by at least one ASCII lower-case letter.
var titleCasePattern = regexp.MustCompile(`^([A-Z][a-z]+)(\s[A-Z][a-z]+)*$`)

// isoDatePattern accepts YYYY-MM-DD shapes only; "2024-13-40" matches.
var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsTitleCase reports whether name is a title-cased person name.
func IsTitleCase(name string) bool {
	return titleCasePattern.MatchString(name)
}

// IsISODate reports whether value has the YYYY-MM-DD shape. The calendar is
// not consulted.
func IsISODate(value string) bool {
	return isoDatePattern.MatchString(value)
}

// =============================================================================
// RULES
// =============================================================================

// rule evaluates one check against a table.
type rule struct {
	name  Check
	check func(t *types.Table, opts Options) CheckResult
}

// rules is the reporting order.
var rules = []rule{
	{CheckCorrectColumns, checkColumns},
	{CheckValidRevenue, checkRevenue},
	{CheckTitleCaseNames, checkNames},
	{CheckValidDates, checkDates},
	{CheckNoDuplicateOrderID, checkDuplicateIDs},
}

func checkColumns(t *types.Table, opts Options) CheckResult {
	res := CheckResult{Name: CheckCorrectColumns, Passed: true}

	want := make(map[string]bool, len(opts.ExpectedColumns))
	for _, c := range opts.ExpectedColumns {
		want[c] = true
	}
	have := make(map[string]bool, len(t.Headers))
	for _, h := range t.Headers {
		have[h] = true
	}

	for _, h := range t.Headers {
		if !want[h] {
			res.fail("unexpected column " + h)
		}
	}
	for _, c := range opts.ExpectedColumns {
		if !have[c] {
			res.fail("missing column " + c)
		}
	}
	return res
}

func checkRevenue(t *types.Table, opts Options) CheckResult {
	return checkEach(t, CheckValidRevenue, opts.RevenueColumn, func(v string) bool {
		_, ok := types.ParseNumeric(v)
		return ok
	})
}

func checkNames(t *types.Table, opts Options) CheckResult {
	return checkEach(t, CheckTitleCaseNames, opts.NameColumn, IsTitleCase)
}

func checkDates(t *types.Table, opts Options) CheckResult {
	return checkEach(t, CheckValidDates, opts.DateColumn, IsISODate)
}

func checkDuplicateIDs(t *types.Table, opts Options) CheckResult {
	res := CheckResult{Name: CheckNoDuplicateOrderID, Passed: true}

	ids, err := t.Column(opts.IDColumn)
	if err != nil {
		res.missingColumn(opts.IDColumn)
		return res
	}

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		key := strings.TrimSpace(id)
		if seen[key] {
			res.fail(id)
			continue
		}
		seen[key] = true
	}
	return res
}

// checkEach fails the check for every value of column that valid rejects.
func checkEach(t *types.Table, name Check, column string, valid func(string) bool) CheckResult {
	res := CheckResult{Name: name, Passed: true}

	values, err := t.Column(column)
	if err != nil {
		res.missingColumn(column)
		return res
	}

	for _, v := range values {
		if !valid(v) {
			res.fail(v)
		}
	}
	return res
}
