package recorder

import (
	"time"

	"FusionSentinel/internal/model"
)

// ReportRow is the stored summary of one analysis.
type ReportRow struct {
	RunID          string
	Symbol         string
	Mode           model.Mode
	GeneratedAt    time.Time
	Score          float64
	Classification string
	Confidence     float64
	Degraded       int
}

// Recorder persists analysis history.
type Recorder interface {
	RecordReport(runID string, r *model.Report) error
	Recent(symbol string, limit int) ([]ReportRow, error)
	Close() error
}
