package calculator

import (
	"fmt"
	"math"

	"VolScope/internal/model"
)

// RealizedVolatility is the sample standard deviation (N-1 denominator)
// of the valid returns in the window. With annualize it is scaled by
// sqrt(periodsPerYear). Requires at least two valid returns.
func RealizedVolatility(returns []model.Metric, annualize bool, periodsPerYear float64) (float64, error) {
	var sum float64
	n := 0
	for _, r := range returns {
		if r.Valid {
			sum += r.Value
			n++
		}
	}
	if n < 2 {
		return 0, fmt.Errorf("%w: need at least 2 returns, have %d", ErrInsufficientData, n)
	}
	mean := sum / float64(n)
	var ss float64
	for _, r := range returns {
		if r.Valid {
			d := r.Value - mean
			ss += d * d
		}
	}
	vol := math.Sqrt(ss / float64(n-1))
	if annualize {
		vol *= math.Sqrt(periodsPerYear)
	}
	return vol, nil
}

// ParkinsonVolatility estimates volatility from the high-low range:
// sqrt(mean(ln(high/low)^2) / (4*ln2)).
func ParkinsonVolatility(bars []model.Bar, annualize bool, periodsPerYear float64) (float64, error) {
	if len(bars) == 0 {
		return 0, fmt.Errorf("%w: empty window", ErrInsufficientData)
	}
	var sum float64
	for _, b := range bars {
		if b.Low <= 0 || b.High < b.Low {
			return 0, fmt.Errorf("%w: high/low %.4f/%.4f on %s",
				ErrNumericDomain, b.High, b.Low, b.Date.Format("2006-01-02"))
		}
		hl := math.Log(b.High / b.Low)
		sum += hl * hl
	}
	vol := math.Sqrt(sum / float64(len(bars)) / (4 * math.Ln2))
	if annualize {
		vol *= math.Sqrt(periodsPerYear)
	}
	return vol, nil
}

// GarmanKlassVolatility combines the high-low and close-open ranges:
// sqrt(0.5*mean(ln(h/l)^2) - (2*ln2-1)*mean(ln(c/o)^2)). A negative
// radicand is reported as a numeric-domain error, never an imaginary or
// NaN result.
func GarmanKlassVolatility(bars []model.Bar, annualize bool, periodsPerYear float64) (float64, error) {
	if len(bars) == 0 {
		return 0, fmt.Errorf("%w: empty window", ErrInsufficientData)
	}
	var hlSum, coSum float64
	for _, b := range bars {
		if b.Low <= 0 || b.High < b.Low || b.Open <= 0 || b.Close <= 0 {
			return 0, fmt.Errorf("%w: prices o=%.4f h=%.4f l=%.4f c=%.4f on %s",
				ErrNumericDomain, b.Open, b.High, b.Low, b.Close, b.Date.Format("2006-01-02"))
		}
		hl := math.Log(b.High / b.Low)
		co := math.Log(b.Close / b.Open)
		hlSum += hl * hl
		coSum += co * co
	}
	n := float64(len(bars))
	radicand := 0.5*hlSum/n - (2*math.Ln2-1)*coSum/n
	if radicand < 0 {
		return 0, fmt.Errorf("%w: negative radicand %.6g", ErrNumericDomain, radicand)
	}
	vol := math.Sqrt(radicand)
	if annualize {
		vol *= math.Sqrt(periodsPerYear)
	}
	return vol, nil
}

// RollingVolatility returns the trailing-window annualized realized
// volatility, index-aligned with the input returns. Entries whose
// window is incomplete or contains an undefined return are undefined.
func RollingVolatility(returns []model.Metric, window int, periodsPerYear float64) []model.Metric {
	out := make([]model.Metric, len(returns))
	if window < 2 || len(returns) < window {
		return out
	}
	for i := window - 1; i < len(returns); i++ {
		slice := returns[i-window+1 : i+1]
		complete := true
		for _, r := range slice {
			if !r.Valid {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		vol, err := RealizedVolatility(slice, true, periodsPerYear)
		if err != nil {
			continue
		}
		out[i] = model.Defined(vol)
	}
	return out
}
