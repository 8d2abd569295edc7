package report

import (
	"fmt"
	"strings"

	"VolScope/internal/model"
)

// Style controls console report decoration. It is passed explicitly;
// there is no process-wide style state.
type Style struct {
	RuleChar  string
	RuleWidth int
}

// DefaultStyle matches the width of the year-by-year table.
func DefaultStyle() Style { return Style{RuleChar: "=", RuleWidth: 104} }

func (s Style) rule() string { return strings.Repeat(s.RuleChar, s.RuleWidth) }

// FormatSummary renders the year-by-year metrics table and the overall
// statistics block.
func FormatSummary(symbol string, years []model.YearSummary, stats model.SummaryStats, style Style) string {
	var b strings.Builder

	b.WriteString(style.rule() + "\n")
	if len(years) > 0 {
		b.WriteString(fmt.Sprintf("%s VOLATILITY ANALYSIS SUMMARY (%d-%d)\n",
			symbol, years[0].Year, years[len(years)-1].Year))
	} else {
		b.WriteString(fmt.Sprintf("%s VOLATILITY ANALYSIS SUMMARY\n", symbol))
	}
	b.WriteString(style.rule() + "\n\n")

	b.WriteString("YEAR-BY-YEAR VOLATILITY METRICS\n\n")
	b.WriteString(fmt.Sprintf("%-6s %5s %10s %11s %13s %10s %9s %9s %9s %10s\n",
		"Year", "Days", "Realized%", "Parkinson%", "GarmanKlass%", "AvgRange%",
		"MaxRet%", "MinRet%", "AvgATR", "AnnualRet%"))
	for _, y := range years {
		b.WriteString(fmt.Sprintf("%-6d %5d %10s %11s %13s %10.2f %9s %9s %9s %10.2f\n",
			y.Year, y.TradingDays,
			fmtMetric(y.RealizedVolPct),
			fmtMetric(y.ParkinsonVolPct),
			fmtMetric(y.GarmanKlassVolPct),
			y.AvgDailyRangePct,
			fmtMetric(y.MaxDailyReturnPct),
			fmtMetric(y.MinDailyReturnPct),
			fmtMetric(y.AvgATR),
			y.AnnualReturnPct))
	}

	if len(years) == 0 {
		b.WriteString("(no qualifying years)\n")
		return b.String()
	}

	b.WriteString("\n" + style.rule() + "\n")
	b.WriteString("OVERALL STATISTICS\n")
	b.WriteString(style.rule() + "\n")
	b.WriteString(fmt.Sprintf("Average Realized Volatility:      %.2f%%\n", stats.AvgRealizedVolPct))
	b.WriteString(fmt.Sprintf("Highest Volatility Year:          %d (%.2f%%)\n", stats.HighestVolYear, stats.HighestVolPct))
	b.WriteString(fmt.Sprintf("Lowest Volatility Year:           %d (%.2f%%)\n", stats.LowestVolYear, stats.LowestVolPct))
	b.WriteString(fmt.Sprintf("Average Annual Return:            %.2f%%\n", stats.AvgAnnualReturnPct))
	b.WriteString(fmt.Sprintf("Best Performing Year:             %d (%.2f%%)\n", stats.BestYear, stats.BestYearReturnPct))
	b.WriteString(style.rule() + "\n")

	return b.String()
}

func fmtMetric(m model.Metric) string {
	if !m.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", m.Value)
}
