package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"VolScope/internal/model"
)

var csvHeader = []string{
	"Year", "Trading Days",
	"Realized Volatility (%)", "Parkinson Volatility (%)", "Garman-Klass Volatility (%)",
	"Avg Daily Range (%)", "Max Daily Return (%)", "Min Daily Return (%)",
	"Avg ATR", "Annual Return (%)",
}

// WriteSummaryCSV exports the year summaries as a flat table. Undefined
// metrics become empty cells.
func WriteSummaryCSV(path string, years []model.YearSummary) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, y := range years {
		row := []string{
			strconv.Itoa(y.Year),
			strconv.Itoa(y.TradingDays),
			csvMetric(y.RealizedVolPct),
			csvMetric(y.ParkinsonVolPct),
			csvMetric(y.GarmanKlassVolPct),
			csvFloat(y.AvgDailyRangePct),
			csvMetric(y.MaxDailyReturnPct),
			csvMetric(y.MinDailyReturnPct),
			csvMetric(y.AvgATR),
			csvFloat(y.AnnualReturnPct),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func csvFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func csvMetric(m model.Metric) string {
	if !m.Valid {
		return ""
	}
	return csvFloat(m.Value)
}
