package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"VolScope/internal/model"
)

// CSVSource reads a daily OHLC table from a CSV export with a header row
// containing at least time, open, high, low and close columns (extra
// columns are ignored). Rows may arrive unsorted or with duplicate
// dates; the last row for a date wins. A non-zero FromYear/ToYear
// restricts the series to that inclusive range.
type CSVSource struct {
	Path     string
	FromYear int
	ToYear   int
}

// NewCSVSource creates a CSVSource for the given file and year range.
func NewCSVSource(path string, fromYear, toYear int) *CSVSource {
	return &CSVSource{Path: path, FromYear: fromYear, ToYear: toYear}
}

// Name identifies the source in logs.
func (s *CSVSource) Name() string { return "csv:" + filepath.Base(s.Path) }

// Load parses, filters, deduplicates and sorts the series.
func (s *CSVSource) Load() ([]model.Bar, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]model.Bar)
	line := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line++
		bar, err := parseRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		year := bar.Date.Year()
		if s.FromYear != 0 && year < s.FromYear {
			continue
		}
		if s.ToYear != 0 && year > s.ToYear {
			continue
		}
		byDate[bar.Date.Format("2006-01-02")] = bar
	}

	bars := make([]model.Bar, 0, len(byDate))
	for _, b := range byDate {
		bars = append(bars, b)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

type columns struct {
	time, open, high, low, close int
}

func mapColumns(header []string) (columns, error) {
	cols := columns{time: -1, open: -1, high: -1, low: -1, close: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "time", "date", "timestamp":
			cols.time = i
		case "open":
			cols.open = i
		case "high":
			cols.high = i
		case "low":
			cols.low = i
		case "close":
			cols.close = i
		}
	}
	if cols.time < 0 || cols.open < 0 || cols.high < 0 || cols.low < 0 || cols.close < 0 {
		return cols, fmt.Errorf("csv header missing one of time/open/high/low/close: %v", header)
	}
	return cols, nil
}

func parseRow(rec []string, cols columns) (model.Bar, error) {
	var bar model.Bar
	need := max(cols.time, cols.open, cols.high, cols.low, cols.close) + 1
	if len(rec) < need {
		return bar, fmt.Errorf("row has %d fields, need %d", len(rec), need)
	}

	date, err := parseDate(rec[cols.time])
	if err != nil {
		return bar, err
	}
	bar.Date = date

	for _, fld := range []struct {
		name string
		idx  int
		dst  *float64
	}{
		{"open", cols.open, &bar.Open},
		{"high", cols.high, &bar.High},
		{"low", cols.low, &bar.Low},
		{"close", cols.close, &bar.Close},
	} {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[fld.idx]), 64)
		if err != nil {
			return bar, fmt.Errorf("parse %s %q: %w", fld.name, rec[fld.idx], err)
		}
		*fld.dst = v
	}
	return bar, nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	// Unix seconds, the format TradingView/BATS exports use.
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
