package types

import (
	"fmt"
	"sort"
	"strings"
)

// =============================================================================
// FATAL ERROR TYPES
// =============================================================================
// Every error below aborts a pipeline run. Row-level problems (bad names,
// bad dates, duplicate ids) are never errors; they are recorded as failed
// checks in the report instead.

// SourceError is returned when an input file or one of its tables cannot be
// opened or read.
type SourceError struct {
	Path  string
	Table string
	Err   error
}

func (e *SourceError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("source %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("source %s, table %q: %v", e.Path, e.Table, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// ColumnNotFoundError is returned when a required column is missing or no
// header satisfies a column matcher.
type ColumnNotFoundError struct {
	Table     string
	Column    string
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %s not found in table %q (available: %s)",
		e.Column, e.Table, strings.Join(e.Available, ", "))
}

// ComputationError reports arithmetic that has no defined result, such as a
// growth rate over zero periods or a percentage error against zero.
type ComputationError struct {
	// Op names the computation, e.g. "growth rate" or "error percentage".
	Op string

	// Reason describes why the result is undefined.
	Reason string

	// Operands holds the inputs involved, for the error message.
	Operands map[string]float64
}

func (e *ComputationError) Error() string {
	if len(e.Operands) == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Reason)
	}

	keys := make([]string, 0, len(e.Operands))
	for k := range e.Operands {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%g", k, e.Operands[k])
	}
	return fmt.Sprintf("%s: %s (%s)", e.Op, e.Reason, strings.Join(parts, ", "))
}

// InsufficientRowsError is returned when a table has fewer usable values
// than the computation needs.
type InsufficientRowsError struct {
	Table  string
	Column string
	Want   int
	Got    int
}

func (e *InsufficientRowsError) Error() string {
	return fmt.Sprintf("table %q column %q: need %d numeric values, found %d",
		e.Table, e.Column, e.Want, e.Got)
}
