package recorder

import "VolScope/internal/model"

// NoopRecorder discards everything. Used when no database is configured.
type NoopRecorder struct{}

// NewNoopRecorder creates a NoopRecorder.
func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (*NoopRecorder) RecordRun(string, []model.YearSummary) error { return nil }

func (*NoopRecorder) Close() error { return nil }
