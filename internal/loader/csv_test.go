package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bars.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCSVSource_Load(t *testing.T) {
	// Unsorted rows, a duplicate date (last row wins), an extra column,
	// and a row outside the year range.
	path := writeCSV(t, `time,open,high,low,close,Volume
2020-01-03,101,103,100,102,5000
2020-01-02,100,102,99,101,4000
2019-12-31,98,99,97,98,3000
2020-01-02,100,102.5,99.5,101.5,4100
2020-01-06,102,104,101,103,6000
`)
	src := NewCSVSource(path, 2020, 2025)
	bars, err := src.Load()
	require.NoError(t, err)
	require.Len(t, bars, 3)

	require.Equal(t, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), bars[0].Date)
	require.Equal(t, 101.5, bars[0].Close, "duplicate date must keep the last row")
	require.Equal(t, 102.5, bars[0].High)
	require.Equal(t, time.Date(2020, 1, 3, 0, 0, 0, 0, time.UTC), bars[1].Date)
	require.Equal(t, time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC), bars[2].Date)
}

func TestCSVSource_UnixTimestamps(t *testing.T) {
	// 2020-06-01 and 2020-06-02 UTC.
	path := writeCSV(t, `time,open,high,low,close
1590969600,100,101,99,100.5
1591056000,100.5,102,100,101.5
`)
	bars, err := NewCSVSource(path, 0, 0).Load()
	require.NoError(t, err)
	require.Len(t, bars, 2)
	require.Equal(t, 2020, bars[0].Date.Year())
	require.Equal(t, time.June, bars[0].Date.Month())
	require.True(t, bars[0].Date.Before(bars[1].Date))
}

func TestCSVSource_MissingColumn(t *testing.T) {
	path := writeCSV(t, `time,open,high,close
2020-01-02,100,102,101
`)
	_, err := NewCSVSource(path, 0, 0).Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "header")
}

func TestCSVSource_BadPrice(t *testing.T) {
	path := writeCSV(t, `time,open,high,low,close
2020-01-02,100,102,abc,101
`)
	_, err := NewCSVSource(path, 0, 0).Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 2")
}

func TestCSVSource_BadDate(t *testing.T) {
	path := writeCSV(t, `time,open,high,low,close
someday,100,102,99,101
`)
	_, err := NewCSVSource(path, 0, 0).Load()
	require.Error(t, err)
}

func TestCSVSource_MissingFile(t *testing.T) {
	_, err := NewCSVSource(filepath.Join(t.TempDir(), "nope.csv"), 0, 0).Load()
	require.Error(t, err)
}
