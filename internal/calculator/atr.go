package calculator

import (
	"errors"
	"fmt"
	"math"

	"VolScope/internal/model"
)

// AverageTrueRange computes the mean of the trailing `period`-bar moving
// average of true range over the window, a single scalar in price units.
// It is never annualized. The first bar has no previous close, so its
// true range degenerates to high-low. Requires at least `period` bars so
// one full rolling window exists.
func AverageTrueRange(bars []model.Bar, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(bars) < period {
		return 0, fmt.Errorf("%w: need %d bars for one ATR window, have %d",
			ErrInsufficientData, period, len(bars))
	}

	tr := make([]float64, len(bars))
	tr[0] = bars[0].High - bars[0].Low
	for i := 1; i < len(bars); i++ {
		b := bars[i]
		prevClose := bars[i-1].Close
		r := b.High - b.Low
		if hc := math.Abs(b.High - prevClose); hc > r {
			r = hc
		}
		if lc := math.Abs(b.Low - prevClose); lc > r {
			r = lc
		}
		tr[i] = r
	}

	// Mean of the rolling means, over every full window.
	var windowSum float64
	for i := 0; i < period; i++ {
		windowSum += tr[i]
	}
	total := windowSum / float64(period)
	count := 1
	for i := period; i < len(tr); i++ {
		windowSum += tr[i] - tr[i-period]
		total += windowSum / float64(period)
		count++
	}
	return total / float64(count), nil
}
