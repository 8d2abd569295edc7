package calculator

import (
	"fmt"
	"math"

	"VolScope/internal/model"
)

// LogReturns computes daily log returns ln(close_t / close_{t-1}),
// index-aligned with the input bars. Entry 0 is undefined. A
// non-positive close is a data error, never coerced.
func LogReturns(bars []model.Bar) ([]model.Metric, error) {
	returns := make([]model.Metric, len(bars))
	for i := 1; i < len(bars); i++ {
		prev, cur := bars[i-1].Close, bars[i].Close
		if prev <= 0 || cur <= 0 {
			return nil, fmt.Errorf("%w: non-positive close near %s",
				ErrNumericDomain, bars[i].Date.Format("2006-01-02"))
		}
		returns[i] = model.Defined(math.Log(cur / prev))
	}
	return returns, nil
}
