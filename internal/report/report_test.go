package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FusionSentinel/internal/model"
)

func TestAssemble_MissingPartsAreExplicit(t *testing.T) {
	r := Assemble(Parts{Symbol: "SPX", Mode: model.ModeLongTerm})

	require.NotNil(t, r.Indicators)
	for _, name := range model.IndicatorNames {
		ind, ok := r.Indicators.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, model.StatusUnavailable, ind.Status)
	}
	for i, d := range model.Dimensions {
		assert.Equal(t, d, r.Dimensions[i].Dimension)
		assert.True(t, r.Dimensions[i].Degraded)
		assert.Equal(t, 0.0, r.Dimensions[i].Score)
	}
	assert.Equal(t, model.Neutral, r.Fusion.Classification)
	assert.Len(t, r.Fusion.Contributions, 4)
	assert.False(t, r.Backtest.Available)
	assert.Equal(t, Unavailable, r.Backtest.Reason)
	assert.False(t, r.Risk.Available)
	assert.Equal(t, Unavailable, r.Risk.Reason)
}

func TestAssemble_CopiesParts(t *testing.T) {
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	set := &model.IndicatorSet{Bars: 3, Close: 9}
	fusion := model.FusionResult{Score: 0.3, Classification: model.Buy, Confidence: 0.8}
	bt := model.BacktestSummary{Available: true, Trades: 2}
	lv := model.RiskLevels{Available: true, Entry: 9}

	r := Assemble(Parts{
		Symbol:      "SPX",
		Mode:        model.ModeShortTerm,
		GeneratedAt: at,
		Indicators:  set,
		Dimensions: map[model.Dimension]model.DimensionScore{
			model.DimNews:      {Dimension: model.DimNews, Score: -0.5},
			model.DimTechnical: {Dimension: model.DimTechnical, Score: 0.5},
		},
		Fusion:   &fusion,
		Backtest: &bt,
		Risk:     &lv,
	})

	assert.Equal(t, at, r.GeneratedAt)
	assert.Same(t, set, r.Indicators)
	assert.Equal(t, 0.5, r.Dimension(model.DimTechnical).Score)
	assert.Equal(t, -0.5, r.Dimension(model.DimNews).Score)
	assert.True(t, r.Dimension(model.DimFundamental).Degraded)
	assert.Equal(t, fusion, r.Fusion)
	assert.Equal(t, bt, r.Backtest)
	assert.Equal(t, lv, r.Risk)
}
