package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"VolScope/internal/model"
)

const (
	chartWidth  = "640px"
	chartHeight = "420px"
	// histogram panel parameters
	histBins  = 50
	histYears = 5
)

// RenderDashboard writes the multi-panel volatility dashboard to a
// single HTML page: estimator bars per year, the volatility trend,
// rolling realized volatility, average daily range, the risk-return
// scatter and a daily-return histogram for the most recent years.
func RenderDashboard(path, symbol string, bars []model.Bar, returns, rolling []model.Metric, years []model.YearSummary) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	page := components.NewPage()
	page.PageTitle = symbol + " Volatility Analysis"
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		volByYearBar(symbol, years),
		volTrendLine(years),
		rollingVolLine(bars, rolling),
		dailyRangeBar(years),
		riskReturnScatter(symbol, years),
		returnHistogram(bars, returns, years),
	)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()
	return page.Render(f)
}

func baseOptions(title string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Left: "right"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func yearLabels(years []model.YearSummary) []string {
	labels := make([]string, len(years))
	for i, y := range years {
		labels[i] = strconv.Itoa(y.Year)
	}
	return labels
}

func metricBarData(years []model.YearSummary, pick func(model.YearSummary) model.Metric) []opts.BarData {
	data := make([]opts.BarData, len(years))
	for i, y := range years {
		if m := pick(y); m.Valid {
			data[i] = opts.BarData{Value: m.Value}
		} else {
			data[i] = opts.BarData{Value: "-"}
		}
	}
	return data
}

func volByYearBar(symbol string, years []model.YearSummary) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(baseOptions(symbol + " Volatility by Year")...)
	bar.SetXAxis(yearLabels(years)).
		AddSeries("Realized Vol", metricBarData(years, func(y model.YearSummary) model.Metric { return y.RealizedVolPct })).
		AddSeries("Parkinson Vol", metricBarData(years, func(y model.YearSummary) model.Metric { return y.ParkinsonVolPct })).
		AddSeries("Garman-Klass Vol", metricBarData(years, func(y model.YearSummary) model.Metric { return y.GarmanKlassVolPct }))
	return bar
}

func volTrendLine(years []model.YearSummary) *charts.Line {
	realized := make([]opts.LineData, len(years))
	parkinson := make([]opts.LineData, len(years))
	for i, y := range years {
		realized[i] = opts.LineData{Value: metricOrGap(y.RealizedVolPct)}
		parkinson[i] = opts.LineData{Value: metricOrGap(y.ParkinsonVolPct)}
	}
	line := charts.NewLine()
	line.SetGlobalOptions(baseOptions("Volatility Trend Over Time")...)
	line.SetXAxis(yearLabels(years)).
		AddSeries("Realized Vol", realized).
		AddSeries("Parkinson Vol", parkinson)
	return line
}

func rollingVolLine(bars []model.Bar, rolling []model.Metric) *charts.Line {
	dates := make([]string, len(bars))
	values := make([]opts.LineData, len(bars))
	meanLine := make([]opts.LineData, len(bars))

	var sum float64
	count := 0
	for _, m := range rolling {
		if m.Valid {
			sum += m.Value
			count++
		}
	}
	mean := 0.0
	if count > 0 {
		mean = sum / float64(count)
	}

	for i, b := range bars {
		dates[i] = b.Date.Format("2006-01-02")
		values[i] = opts.LineData{Value: metricOrGap(rolling[i])}
		meanLine[i] = opts.LineData{Value: mean}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(baseOptions("30-Day Rolling Realized Volatility (%)")...)
	line.SetXAxis(dates).
		AddSeries("Rolling Vol", values).
		AddSeries(fmt.Sprintf("Mean: %.1f%%", mean), meanLine)
	return line
}

func dailyRangeBar(years []model.YearSummary) *charts.Bar {
	data := make([]opts.BarData, len(years))
	for i, y := range years {
		data[i] = opts.BarData{Value: y.AvgDailyRangePct}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(baseOptions("Average Daily Price Range by Year (%)")...)
	bar.SetXAxis(yearLabels(years)).AddSeries("Avg Daily Range", data)
	return bar
}

func riskReturnScatter(symbol string, years []model.YearSummary) *charts.Scatter {
	items := make([]opts.ScatterData, 0, len(years))
	for _, y := range years {
		if !y.RealizedVolPct.Valid {
			continue
		}
		items = append(items, opts.ScatterData{
			Name:  strconv.Itoa(y.Year),
			Value: []interface{}{y.RealizedVolPct.Value, y.AnnualReturnPct},
		})
	}
	sc := charts.NewScatter()
	sc.SetGlobalOptions(append(baseOptions("Risk-Return Profile by Year"),
		charts.WithXAxisOpts(opts.XAxis{Name: "Realized Volatility (%)", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Annual Return (%)"}),
	)...)
	sc.AddSeries(symbol, items)
	return sc
}

// returnHistogram overlays daily-return distributions for the most
// recent qualifying years over a shared set of bins.
func returnHistogram(bars []model.Bar, returns []model.Metric, years []model.YearSummary) *charts.Bar {
	recent := years
	if len(recent) > histYears {
		recent = recent[len(recent)-histYears:]
	}
	wanted := make(map[int]bool, len(recent))
	for _, y := range recent {
		wanted[y.Year] = true
	}

	type sample struct {
		year int
		pct  float64
	}
	var samples []sample
	lo, hi := 0.0, 0.0
	for i, r := range returns {
		if !r.Valid || !wanted[bars[i].Date.Year()] {
			continue
		}
		pct := r.Value * 100
		if len(samples) == 0 || pct < lo {
			lo = pct
		}
		if len(samples) == 0 || pct > hi {
			hi = pct
		}
		samples = append(samples, sample{year: bars[i].Date.Year(), pct: pct})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(baseOptions("Distribution of Daily Returns (%)")...)
	if len(samples) == 0 || hi <= lo {
		return bar
	}

	width := (hi - lo) / histBins
	labels := make([]string, histBins)
	for i := range labels {
		labels[i] = fmt.Sprintf("%.2f", lo+(float64(i)+0.5)*width)
	}
	counts := make(map[int][]int, len(recent))
	for _, s := range samples {
		if counts[s.year] == nil {
			counts[s.year] = make([]int, histBins)
		}
		bin := int((s.pct - lo) / width)
		if bin >= histBins {
			bin = histBins - 1
		}
		counts[s.year][bin]++
	}

	bar.SetXAxis(labels)
	for _, y := range recent {
		c, ok := counts[y.Year]
		if !ok {
			continue
		}
		data := make([]opts.BarData, histBins)
		for i, n := range c {
			data[i] = opts.BarData{Value: n}
		}
		bar.AddSeries(strconv.Itoa(y.Year), data)
	}
	return bar
}

func metricOrGap(m model.Metric) interface{} {
	if !m.Valid {
		return "-"
	}
	return m.Value
}
