package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"VolScope/internal/model"
)

// rangeBars repeats a reference bar: open=100, high=110, low=90,
// close=105. Every bar's true range is 20 (the high-low range dominates
// the gap terms).
func rangeBars(n int) []model.Bar {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, n)
	for i := range bars {
		bars[i] = model.Bar{
			Date:  start.AddDate(0, 0, i),
			Open:  100,
			High:  110,
			Low:   90,
			Close: 105,
		}
	}
	return bars
}

func TestAverageTrueRange_ExactlyOneWindow(t *testing.T) {
	// With exactly `period` bars there is one full rolling window and the
	// result is that single value, not an error.
	atr, err := AverageTrueRange(rangeBars(14), 14)
	require.NoError(t, err)
	require.InDelta(t, 20.0, atr, 1e-12)
}

func TestAverageTrueRange_FewerBarsThanPeriod(t *testing.T) {
	_, err := AverageTrueRange(rangeBars(13), 14)
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestAverageTrueRange_GapDominates(t *testing.T) {
	bars := rangeBars(3)
	// A gap down: |high - prevClose| and |low - prevClose| both exceed
	// the bar's own range.
	bars[2].Open = 70
	bars[2].High = 72
	bars[2].Low = 68
	bars[2].Close = 70

	atr, err := AverageTrueRange(bars, 3)
	require.NoError(t, err)

	// TRs: 20, 20, |68-105| = 37.
	require.InDelta(t, (20.0+20.0+37.0)/3, atr, 1e-12)
}

func TestAverageTrueRange_NonNegative(t *testing.T) {
	bars := rangeBars(30)
	for i := range bars {
		// wobble prices around to vary the true ranges
		shift := float64(i%7) - 3
		bars[i].Open += shift
		bars[i].High += shift
		bars[i].Low += shift
		bars[i].Close += shift
	}
	atr, err := AverageTrueRange(bars, 14)
	require.NoError(t, err)
	require.GreaterOrEqual(t, atr, 0.0)
}

func TestAverageTrueRange_InvalidPeriod(t *testing.T) {
	_, err := AverageTrueRange(rangeBars(20), 0)
	require.Error(t, err)
}
