package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/sheetcheck/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestOpenWorkbook(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Cleaned_Data"))
	require.NoError(t, f.SetSheetRow("Cleaned_Data", "A1", &[]interface{}{"OrderID", "revenue"}))
	require.NoError(t, f.SetSheetRow("Cleaned_Data", "A2", &[]interface{}{1, 9.5}))
	path := filepath.Join(t.TempDir(), "clean.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	table, err := src.Table("Cleaned_Data", 0)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "9.5"}}, table.Rows)
}

func TestOpenCSVDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "historical_revenue.csv"), []byte("Month,Revenue\nM1,100\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Revenue_Forecast.csv"), []byte("title\nPeriod,Forecast\nM2,110\n"), 0644))

	src, err := Open(dir)
	require.NoError(t, err)
	defer src.Close()

	history, err := src.Table("historical_revenue", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Month", "Revenue"}, history.Headers)

	forecast, err := src.Table("Revenue_Forecast", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Period", "Forecast"}, forecast.Headers)

	_, err = src.Table("missing", 0)
	var srcErr *types.SourceError
	assert.True(t, errors.As(err, &srcErr))
}

func TestOpenSingleFile(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "clean.csv")
	tsvPath := filepath.Join(dir, "clean.tsv")
	require.NoError(t, os.WriteFile(csvPath, []byte("a,b\n1,2\n"), 0644))
	require.NoError(t, os.WriteFile(tsvPath, []byte("a\tb\n1\t2\n"), 0644))

	for _, path := range []string{csvPath, tsvPath} {
		src, err := Open(path)
		require.NoError(t, err)

		// The table name only labels the result for a single file.
		table, err := src.Table("Cleaned_Data", 0)
		require.NoError(t, err)
		assert.Equal(t, "Cleaned_Data", table.Name)
		assert.Equal(t, []string{"a", "b"}, table.Headers)
		require.NoError(t, src.Close())
	}
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "absent.xlsx"))
	var srcErr *types.SourceError
	assert.True(t, errors.As(err, &srcErr))

	pdf := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF"), 0644))
	_, err = Open(pdf)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}
