package recorder

import "VolScope/internal/model"

// Recorder persists analysis results so successive runs against a
// refreshed series can be compared later.
type Recorder interface {
	RecordRun(symbol string, years []model.YearSummary) error
	Close() error
}
