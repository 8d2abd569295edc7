package model

// Metric is an optional float64. Valid is false when the value is
// undefined, e.g. the first day's return or an estimator that hit a
// numeric-domain error. Undefined values are never encoded as NaN.
type Metric struct {
	Value float64
	Valid bool
}

// Defined wraps a value in a valid Metric.
func Defined(v float64) Metric { return Metric{Value: v, Valid: true} }

// Undefined returns the missing-value marker.
func Undefined() Metric { return Metric{} }
