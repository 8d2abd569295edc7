package analyzer

import "VolScope/internal/model"

// summarize computes the headline statistics across all qualifying
// years. Realized-vol aggregates consider only years where the metric is
// defined.
func summarize(years []model.YearSummary) model.SummaryStats {
	var st model.SummaryStats
	if len(years) == 0 {
		return st
	}

	volSum, volCount := 0.0, 0
	first := true
	for _, y := range years {
		if !y.RealizedVolPct.Valid {
			continue
		}
		v := y.RealizedVolPct.Value
		volSum += v
		volCount++
		if first || v > st.HighestVolPct {
			st.HighestVolYear, st.HighestVolPct = y.Year, v
		}
		if first || v < st.LowestVolPct {
			st.LowestVolYear, st.LowestVolPct = y.Year, v
		}
		first = false
	}
	if volCount > 0 {
		st.AvgRealizedVolPct = volSum / float64(volCount)
	}

	retSum := 0.0
	for i, y := range years {
		retSum += y.AnnualReturnPct
		if i == 0 || y.AnnualReturnPct > st.BestYearReturnPct {
			st.BestYear, st.BestYearReturnPct = y.Year, y.AnnualReturnPct
		}
	}
	st.AvgAnnualReturnPct = retSum / float64(len(years))
	return st
}
