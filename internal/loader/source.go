package loader

import "VolScope/internal/model"

// Source provides a daily OHLC bar series, already sorted ascending by
// date and deduplicated.
type Source interface {
	Load() ([]model.Bar, error)
	Name() string
}
