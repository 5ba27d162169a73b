package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FusionSentinel/internal/model"
	"FusionSentinel/internal/report"
)

func sampleReport(symbol string, at time.Time, score float64) *model.Report {
	set := &model.IndicatorSet{Bars: 40, Close: 101, Indicators: map[string]model.Indicator{
		model.IndRSI: {Name: model.IndRSI, Status: model.StatusOK, Reduced: true, Window: 10, StandardWindow: 14, Value: 61.5,
			Reason: "window reduced from 14 to 10"},
		model.IndSMA: {Name: model.IndSMA, Status: model.StatusInsufficient, Window: 50, StandardWindow: 50, Reason: "need 50 bars"},
	}}
	fusion := model.FusionResult{Score: score, Classification: model.Buy, Confidence: 0.7}
	return report.Assemble(report.Parts{
		Symbol:      symbol,
		Mode:        model.ModeLongTerm,
		GeneratedAt: at,
		Indicators:  set,
		Fusion:      &fusion,
	})
}

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "fusion.db"))
	require.NoError(t, err)
	defer rec.Close()

	t0 := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	first, second := uuid.NewString(), uuid.NewString()
	require.NoError(t, rec.RecordReport(first, sampleReport("SPX", t0, 0.25)))
	require.NoError(t, rec.RecordReport(second, sampleReport("SPX", t0.AddDate(0, 0, 1), 0.4)))
	require.NoError(t, rec.RecordReport(uuid.NewString(), sampleReport("NDX", t0, -0.1)))

	rows, err := rec.Recent("SPX", 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second, rows[0].RunID)
	assert.Equal(t, 0.4, rows[0].Score)
	assert.Equal(t, "Buy", rows[0].Classification)
	assert.Equal(t, model.ModeLongTerm, rows[0].Mode)
	assert.Equal(t, t0.AddDate(0, 0, 1), rows[0].GeneratedAt)
	// every indicator except rsi and sma is missing, rsi is reduced, sma insufficient
	assert.Equal(t, len(model.IndicatorNames), rows[0].Degraded)

	states, err := rec.IndicatorStates(first)
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, model.IndSMA, states[0].Name)
	assert.Equal(t, model.StatusInsufficient, states[0].Status)
	assert.Equal(t, model.IndRSI, states[1].Name)
	assert.True(t, states[1].Reduced)
	assert.Equal(t, 10, states[1].Window)
	assert.Equal(t, 61.5, states[1].Value)

	limited, err := rec.Recent("SPX", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestNoopRecorder(t *testing.T) {
	var rec Recorder = NewNoopRecorder()

	assert.NoError(t, rec.RecordReport("x", &model.Report{}))
	rows, err := rec.Recent("SPX", 5)
	assert.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, rec.Close())
}
