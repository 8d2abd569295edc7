package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"VolScope/internal/model"
)

func metrics(values ...float64) []model.Metric {
	out := make([]model.Metric, len(values))
	for i, v := range values {
		out[i] = model.Defined(v)
	}
	return out
}

func TestRealizedVolatility_AnnualizationScaling(t *testing.T) {
	returns := metrics(0.01, -0.02, 0.005, 0.013, -0.007)

	raw, err := RealizedVolatility(returns, false, 252)
	require.NoError(t, err)
	annualized, err := RealizedVolatility(returns, true, 252)
	require.NoError(t, err)

	require.InDelta(t, raw*math.Sqrt(252), annualized, 1e-15)
}

func TestRealizedVolatility_ConstantReturns(t *testing.T) {
	vol, err := RealizedVolatility(metrics(0, 0, 0, 0), true, 252)
	require.NoError(t, err)
	require.Zero(t, vol)
}

func TestRealizedVolatility_SkipsUndefined(t *testing.T) {
	returns := []model.Metric{
		model.Undefined(), // first bar of a series
		model.Defined(0.01),
		model.Defined(0.03),
	}
	vol, err := RealizedVolatility(returns, false, 252)
	require.NoError(t, err)

	// Sample stddev of {0.01, 0.03} with the N-1 convention.
	require.InDelta(t, 0.02/math.Sqrt(2), vol, 1e-12)
}

func TestRealizedVolatility_InsufficientData(t *testing.T) {
	for _, returns := range [][]model.Metric{
		nil,
		metrics(0.01),
		{model.Undefined(), model.Defined(0.01)},
	} {
		_, err := RealizedVolatility(returns, true, 252)
		require.ErrorIs(t, err, ErrInsufficientData)
	}
}

func flatBars(n int, price float64) []model.Bar {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, n)
	for i := range bars {
		bars[i] = model.Bar{
			Date:  start.AddDate(0, 0, i),
			Open:  price,
			High:  price,
			Low:   price,
			Close: price,
		}
	}
	return bars
}

func TestParkinsonVolatility_FlatBarsAreZero(t *testing.T) {
	vol, err := ParkinsonVolatility(flatBars(20, 100), true, 252)
	require.NoError(t, err)
	require.Zero(t, vol)
}

func TestParkinsonVolatility_KnownValue(t *testing.T) {
	bars := flatBars(5, 100)
	for i := range bars {
		bars[i].High = 110
		bars[i].Low = 90
		bars[i].Open = 100
		bars[i].Close = 100
	}
	vol, err := ParkinsonVolatility(bars, false, 252)
	require.NoError(t, err)

	hl := math.Log(110.0 / 90.0)
	require.InDelta(t, math.Sqrt(hl*hl/(4*math.Ln2)), vol, 1e-12)
}

func TestParkinsonVolatility_DomainErrors(t *testing.T) {
	bad := flatBars(3, 100)
	bad[1].Low = 0
	_, err := ParkinsonVolatility(bad, true, 252)
	require.ErrorIs(t, err, ErrNumericDomain)

	inverted := flatBars(3, 100)
	inverted[2].High = 90
	inverted[2].Low = 100
	_, err = ParkinsonVolatility(inverted, true, 252)
	require.ErrorIs(t, err, ErrNumericDomain)

	_, err = ParkinsonVolatility(nil, true, 252)
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestGarmanKlassVolatility_FlatBarsAreZero(t *testing.T) {
	vol, err := GarmanKlassVolatility(flatBars(20, 100), true, 252)
	require.NoError(t, err)
	require.Zero(t, vol)
}

func TestGarmanKlassVolatility_AnnualizationScaling(t *testing.T) {
	bars := flatBars(10, 100)
	for i := range bars {
		bars[i].High = 103
		bars[i].Low = 98
		bars[i].Open = 99
		bars[i].Close = 102
	}
	raw, err := GarmanKlassVolatility(bars, false, 252)
	require.NoError(t, err)
	annualized, err := GarmanKlassVolatility(bars, true, 252)
	require.NoError(t, err)
	require.InDelta(t, raw*math.Sqrt(252), annualized, 1e-15)
}

func TestGarmanKlassVolatility_NegativeRadicand(t *testing.T) {
	// A zero high-low range with a large close-open jump pushes the
	// radicand negative. Such bars also fail series validation upstream;
	// the estimator must still refuse them rather than produce NaN.
	bars := []model.Bar{{
		Date:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Open:  90,
		High:  100,
		Low:   100,
		Close: 110,
	}}
	_, err := GarmanKlassVolatility(bars, true, 252)
	require.ErrorIs(t, err, ErrNumericDomain)
}

func TestRollingVolatility_Alignment(t *testing.T) {
	const window = 30
	returns := make([]model.Metric, 40)
	for i := 1; i < len(returns); i++ {
		returns[i] = model.Defined(0.001 * float64(i%5))
	}

	rolling := RollingVolatility(returns, window, 252)
	require.Len(t, rolling, len(returns))

	// Windows touching the undefined first return stay undefined.
	for i := 0; i < window; i++ {
		require.False(t, rolling[i].Valid, "index %d", i)
	}
	for i := window; i < len(rolling); i++ {
		require.True(t, rolling[i].Valid, "index %d", i)

		expected, err := RealizedVolatility(returns[i-window+1:i+1], true, 252)
		require.NoError(t, err)
		require.InDelta(t, expected, rolling[i].Value, 1e-15)
	}
}

func TestRollingVolatility_ShortInput(t *testing.T) {
	rolling := RollingVolatility(metrics(0.01, 0.02), 30, 252)
	require.Len(t, rolling, 2)
	for _, m := range rolling {
		require.False(t, m.Valid)
	}
}
