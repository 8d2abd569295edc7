package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"VolScope/internal/model"
)

func barsFromCloses(closes ...float64) []model.Bar {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{
			Date:  start.AddDate(0, 0, i),
			Open:  c,
			High:  c * 1.01,
			Low:   c * 0.99,
			Close: c,
		}
	}
	return bars
}

func TestLogReturns_Alignment(t *testing.T) {
	returns, err := LogReturns(barsFromCloses(100, 110, 121))
	require.NoError(t, err)
	require.Len(t, returns, 3)

	require.False(t, returns[0].Valid, "first day's return must be undefined")
	require.True(t, returns[1].Valid)
	require.True(t, returns[2].Valid)
	require.InDelta(t, math.Log(1.1), returns[1].Value, 1e-12)
	require.InDelta(t, math.Log(1.1), returns[2].Value, 1e-12)
}

func TestLogReturns_NonPositiveClose(t *testing.T) {
	bars := barsFromCloses(100, 110)
	bars[0].Close = 0

	_, err := LogReturns(bars)
	require.ErrorIs(t, err, ErrNumericDomain)
}

func TestLogReturns_Empty(t *testing.T) {
	returns, err := LogReturns(nil)
	require.NoError(t, err)
	require.Empty(t, returns)
}
