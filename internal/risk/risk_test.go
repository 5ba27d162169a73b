package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevels_Bullish(t *testing.T) {
	lv := Levels(100, 2, 1)

	assert.True(t, lv.Available)
	assert.Equal(t, 100.0, lv.Entry)
	assert.InDelta(t, 97.0, lv.StopLoss, 1e-12)
	assert.InDelta(t, 106.0, lv.TakeProfit, 1e-12)
	assert.InDelta(t, 2.0, lv.RiskReward, 1e-12)
}

func TestLevels_BearishInverts(t *testing.T) {
	lv := Levels(100, 2, -1)

	assert.True(t, lv.Available)
	assert.Equal(t, -1, lv.Direction)
	assert.InDelta(t, 103.0, lv.StopLoss, 1e-12)
	assert.InDelta(t, 94.0, lv.TakeProfit, 1e-12)
	assert.InDelta(t, 2.0, lv.RiskReward, 1e-12)
}

func TestLevels_Unavailable(t *testing.T) {
	tests := map[string]struct {
		price, atr float64
		direction  int
	}{
		"zero-atr":     {100, 0, 1},
		"negative-atr": {100, -1, 1},
		"nan-atr":      {100, math.NaN(), 1},
		"inf-atr":      {100, math.Inf(1), -1},
		"zero-price":   {0, 2, 1},
		"neutral":      {100, 2, 0},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			lv := Levels(tt.price, tt.atr, tt.direction)
			assert.False(t, lv.Available)
			assert.NotEmpty(t, lv.Reason)
			for _, f := range []float64{lv.Entry, lv.StopLoss, lv.TakeProfit, lv.RiskReward, lv.ATR} {
				assert.False(t, math.IsNaN(f) || math.IsInf(f, 0), "field must be finite, got %v", f)
			}
		})
	}
}

func TestLevels_LongStopNeverNegative(t *testing.T) {
	lv := Levels(10, 20, 1)

	assert.True(t, lv.Available)
	assert.Equal(t, 0.0, lv.StopLoss)
	assert.InDelta(t, 6.0, lv.RiskReward, 1e-12)
}
