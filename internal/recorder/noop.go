package recorder

import "FusionSentinel/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordReport(_ string, _ *model.Report) error { return nil }
func (n *NoopRecorder) Recent(_ string, _ int) ([]ReportRow, error)  { return nil, nil }
func (n *NoopRecorder) Close() error                                 { return nil }
