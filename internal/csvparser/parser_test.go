package csvparser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/sheetcheck/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReader(t *testing.T) {
	input := "\xEF\xBB\xBFOrderID,Customer_Name,revenue,Order Date\n" +
		"1,Jane Doe,100.5,2024-01-05\n" +
		"2,\"Smith, John\",20\n"

	table, err := ParseReader(strings.NewReader(input), "Cleaned_Data", DefaultSettings())
	require.NoError(t, err)

	assert.Equal(t, "Cleaned_Data", table.Name)
	assert.Equal(t, []string{"OrderID", "Customer_Name", "revenue", "Order Date"}, table.Headers)
	require.Equal(t, 2, table.RowCount())
	assert.Equal(t, []string{"2", "Smith, John", "20", ""}, table.Rows[1])
}

func TestParseReaderHeaderOffset(t *testing.T) {
	input := "Forecast model\nnotes,here\nPeriod,Forecast\nM1,10\n"

	table, err := ParseReader(strings.NewReader(input), "f", Settings{Delimiter: ",", HeaderRow: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Period", "Forecast"}, table.Headers)
	assert.Equal(t, [][]string{{"M1", "10"}}, table.Rows)

	_, err = ParseReader(strings.NewReader(input), "f", Settings{HeaderRow: 9})
	assert.ErrorContains(t, err, "past the last row")
}

func TestParseReaderDelimiters(t *testing.T) {
	for delim, input := range map[string]string{
		"tab":       "a\tb\n1\t2\n",
		"pipe":      "a|b\n1|2\n",
		"semicolon": "a;b\n1;2\n",
	} {
		t.Run(delim, func(t *testing.T) {
			table, err := ParseReader(strings.NewReader(input), "t", Settings{Delimiter: delim})
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, table.Headers)
			assert.Equal(t, [][]string{{"1", "2"}}, table.Rows)
		})
	}
}

func TestParseReaderEmpty(t *testing.T) {
	_, err := ParseReader(strings.NewReader(""), "t", DefaultSettings())
	assert.ErrorContains(t, err, "empty")
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y\n1,2\n"), 0644))

	table, err := Parse(path, "data", DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, 1, table.RowCount())

	_, err = Parse(filepath.Join(dir, "absent.csv"), "absent", DefaultSettings())
	var srcErr *types.SourceError
	require.True(t, errors.As(err, &srcErr))
	assert.Equal(t, "absent", srcErr.Table)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
