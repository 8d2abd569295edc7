package model

// YearSummary holds all volatility metrics computed for one calendar
// year. Immutable once built; years are always emitted in ascending
// order. Volatility fields are annualized percentages; AvgATR stays in
// price units.
type YearSummary struct {
	Year              int
	TradingDays       int
	RealizedVolPct    Metric
	ParkinsonVolPct   Metric
	GarmanKlassVolPct Metric
	AvgDailyRangePct  float64
	MaxDailyReturnPct Metric
	MinDailyReturnPct Metric
	AvgATR            Metric
	AnnualReturnPct   float64
}

// SummaryStats aggregates headline figures across all qualifying years.
type SummaryStats struct {
	AvgRealizedVolPct  float64
	HighestVolYear     int
	HighestVolPct      float64
	LowestVolYear      int
	LowestVolPct       float64
	AvgAnnualReturnPct float64
	BestYear           int
	BestYearReturnPct  float64
}
