package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/sheetcheck/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		cfgFile = ""
		verbose = false
		force = false
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Sheetcheck")
	assert.Contains(t, out, "Version:    "+Version)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheetcheck.yaml")

	out, _, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	_, _, err = execute(t, "config", "init", "--config", path)
	assert.ErrorContains(t, err, "already exists")

	_, _, err = execute(t, "config", "init", "--config", path, "--force")
	assert.NoError(t, err)

	cfg, err := config.Load(config.LoadOptions{Path: path, Required: true})
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Forecast.Horizon)
}

func TestCleaningCommandFailVerdict(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Cleaned_Data"))
	require.NoError(t, f.SetSheetRow("Cleaned_Data", "A1", &[]interface{}{"OrderID", "Customer_Name", "revenue", "Order Date"}))
	require.NoError(t, f.SetSheetRow("Cleaned_Data", "A2", &[]interface{}{1, "Jane Doe", 10, "2024-01-05"}))
	require.NoError(t, f.SetSheetRow("Cleaned_Data", "A3", &[]interface{}{2, "John Smith", 20, "05/01/2024"}))
	input := filepath.Join(t.TempDir(), "clean.xlsx")
	require.NoError(t, f.SaveAs(input))
	require.NoError(t, f.Close())

	outDir := filepath.Join(t.TempDir(), "reports")
	cfgPath := filepath.Join(t.TempDir(), "sheetcheck.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  format: json\n"), 0644))

	out, logs, err := execute(t, "cleaning",
		"--config", cfgPath,
		"--input", input,
		"--output-dir", outDir,
	)

	var verdict *verdictError
	require.True(t, errors.As(err, &verdict), "got %v", err)
	assert.Equal(t, 2, verdict.code)

	assert.Contains(t, out, "valid_dates")
	assert.Contains(t, out, "FINAL STATUS: FAIL")
	assert.FileExists(t, filepath.Join(outDir, "messy_cleaning_eval_results.csv"))

	// JSON logs on stderr, each tagged with the run id.
	lines := strings.Split(strings.TrimSpace(logs), "\n")
	require.NotEmpty(t, lines)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.NotEmpty(t, entry["run_id"])
	assert.Equal(t, "cleaning", entry["pipeline"])
}

func TestForecastCommandExplicitConfigMissing(t *testing.T) {
	_, _, err := execute(t, "forecast",
		"--config", filepath.Join(t.TempDir(), "absent.yaml"),
		"--input", filepath.Join(t.TempDir(), "absent.xlsx"),
	)
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestForecastCommandBadTolerance(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "sheetcheck.yaml")
	require.NoError(t, config.WriteDefault(cfgPath, false))

	_, _, err := execute(t, "forecast", "--config", cfgPath, "--tolerance", "-1")
	assert.ErrorContains(t, err, "forecast.tolerance")
}
