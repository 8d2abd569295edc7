package analyzer

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"VolScope/internal/calculator"
	"VolScope/internal/model"
)

var (
	// ErrUnorderedSeries indicates the input is not strictly ascending by
	// date (out of order or duplicate dates). The whole call aborts.
	ErrUnorderedSeries = errors.New("series not strictly ascending by date")

	// ErrInvalidBar indicates a bar with non-positive prices or
	// low/high bounds that do not contain open and close. The whole call
	// aborts: a corrupt bar means a corrupt file, and excluding it would
	// silently change every estimator's window.
	ErrInvalidBar = errors.New("invalid bar")
)

// Config holds the aggregation parameters.
type Config struct {
	// PeriodsPerYear is the annualization factor; estimators scale by its
	// square root.
	PeriodsPerYear float64
	// MinTradingDays is the minimum bar count for a year to be reported.
	MinTradingDays int
	// ATRPeriod is the true-range moving average window.
	ATRPeriod int
}

// DefaultConfig returns the standard daily-bar parameters.
func DefaultConfig() Config {
	return Config{PeriodsPerYear: 252, MinTradingDays: 10, ATRPeriod: 14}
}

// Report bundles the per-year summaries with the series they were
// derived from, so presentation layers need no recomputation.
type Report struct {
	Bars    []model.Bar
	Returns []model.Metric
	Years   []model.YearSummary
	Stats   model.SummaryStats
}

// Analyzer partitions a daily series by calendar year and applies the
// volatility estimators to each year.
type Analyzer struct {
	cfg Config
}

// New creates an Analyzer with the given config.
func New(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Run validates the series, derives returns, and produces one summary
// per qualifying calendar year, ascending by year. Years with fewer than
// MinTradingDays bars are dropped and logged. The input is read-only.
func (a *Analyzer) Run(bars []model.Bar) (*Report, error) {
	if err := validateOrder(bars); err != nil {
		return nil, err
	}
	if err := validateBars(bars); err != nil {
		return nil, err
	}

	returns, err := calculator.LogReturns(bars)
	if err != nil {
		return nil, err
	}

	// Returns are derived once over the full series before partitioning,
	// so each year's first bar keeps the return from the prior year's
	// last close.
	type span struct {
		year       int
		start, end int // bars[start:end]
	}
	var spans []span
	for i := 0; i < len(bars); {
		year := bars[i].Date.Year()
		j := i
		for j < len(bars) && bars[j].Date.Year() == year {
			j++
		}
		spans = append(spans, span{year: year, start: i, end: j})
		i = j
	}

	results := make([]*model.YearSummary, len(spans))
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, sp := range spans {
		i, sp := i, sp
		if sp.end-sp.start < a.cfg.MinTradingDays {
			log.Warn().Int("year", sp.year).Int("bars", sp.end-sp.start).
				Int("min", a.cfg.MinTradingDays).Msg("year dropped: too few trading days")
			continue
		}
		g.Go(func() error {
			s := a.summarizeYear(sp.year, bars[sp.start:sp.end], returns[sp.start:sp.end])
			results[i] = &s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &Report{Bars: bars, Returns: returns}
	for _, r := range results {
		if r != nil {
			rep.Years = append(rep.Years, *r)
		}
	}
	rep.Stats = summarize(rep.Years)
	return rep, nil
}

// summarizeYear computes one YearSummary. Per-metric numeric-domain or
// insufficient-data failures mark that metric undefined and keep the
// year; they never abort the run.
func (a *Analyzer) summarizeYear(year int, bars []model.Bar, returns []model.Metric) model.YearSummary {
	s := model.YearSummary{Year: year, TradingDays: len(bars)}

	if vol, err := calculator.RealizedVolatility(returns, true, a.cfg.PeriodsPerYear); err != nil {
		log.Warn().Int("year", year).Err(err).Msg("realized volatility undefined")
	} else {
		s.RealizedVolPct = model.Defined(vol * 100)
	}

	if vol, err := calculator.ParkinsonVolatility(bars, true, a.cfg.PeriodsPerYear); err != nil {
		log.Warn().Int("year", year).Err(err).Msg("parkinson volatility undefined")
	} else {
		s.ParkinsonVolPct = model.Defined(vol * 100)
	}

	if vol, err := calculator.GarmanKlassVolatility(bars, true, a.cfg.PeriodsPerYear); err != nil {
		log.Warn().Int("year", year).Err(err).Msg("garman-klass volatility undefined")
	} else {
		s.GarmanKlassVolPct = model.Defined(vol * 100)
	}

	var rangeSum float64
	for _, b := range bars {
		rangeSum += (b.High - b.Low) / b.Close * 100
	}
	s.AvgDailyRangePct = rangeSum / float64(len(bars))

	for _, r := range returns {
		if !r.Valid {
			continue
		}
		pct := r.Value * 100
		if !s.MaxDailyReturnPct.Valid || pct > s.MaxDailyReturnPct.Value {
			s.MaxDailyReturnPct = model.Defined(pct)
		}
		if !s.MinDailyReturnPct.Valid || pct < s.MinDailyReturnPct.Value {
			s.MinDailyReturnPct = model.Defined(pct)
		}
	}

	if atr, err := calculator.AverageTrueRange(bars, a.cfg.ATRPeriod); err != nil {
		log.Warn().Int("year", year).Err(err).Msg("average true range undefined")
	} else {
		s.AvgATR = model.Defined(atr)
	}

	s.AnnualReturnPct = (bars[len(bars)-1].Close/bars[0].Close - 1) * 100
	return s
}

func validateOrder(bars []model.Bar) error {
	for i := 1; i < len(bars); i++ {
		if !bars[i-1].Date.Before(bars[i].Date) {
			return fmt.Errorf("%w: %s then %s", ErrUnorderedSeries,
				bars[i-1].Date.Format("2006-01-02"), bars[i].Date.Format("2006-01-02"))
		}
	}
	return nil
}

func validateBars(bars []model.Bar) error {
	for _, b := range bars {
		if b.Low <= 0 || b.Open <= 0 || b.Close <= 0 ||
			b.High < b.Low ||
			b.Open < b.Low || b.Open > b.High ||
			b.Close < b.Low || b.Close > b.High {
			return fmt.Errorf("%w: o=%.4f h=%.4f l=%.4f c=%.4f on %s",
				ErrInvalidBar, b.Open, b.High, b.Low, b.Close, b.Date.Format("2006-01-02"))
		}
	}
	return nil
}
