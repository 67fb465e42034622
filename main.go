// =============================================================================
// Sheetcheck - Main Entry Point
// =============================================================================
//
// USAGE:
//   sheetcheck forecast      - Evaluate a revenue forecast
//   sheetcheck cleaning      - Evaluate a cleaned table
//   sheetcheck config init   - Write the default configuration
//   sheetcheck version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : loaders, evaluators, reports and the pipeline runner
//   - pkg/       : shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/sheetcheck/cmd"
)

func main() {
	cmd.Execute()
}
