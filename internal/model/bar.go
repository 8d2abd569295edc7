package model

import "time"

// Bar represents one trading day's OHLC prices.
type Bar struct {
	Date  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// ReturnRecord pairs a bar with its derived log return. The log return
// of the first bar in a series is undefined.
type ReturnRecord struct {
	Bar       Bar
	LogReturn Metric
}
