package risk

import (
	"math"

	"FusionSentinel/internal/model"
)

// ATR multipliers for the stop and the target; 1.5/3.0 gives a 1:2 risk/reward.
const (
	StopMultiplier   = 1.5
	TargetMultiplier = 3.0
)

// Levels derives stop-loss and take-profit levels from the current price and
// ATR for the given direction (+1 bullish, -1 bearish).
func Levels(price, atr float64, direction int) model.RiskLevels {
	lv := model.RiskLevels{Direction: direction, Entry: price, ATR: atr}
	switch {
	case math.IsNaN(atr) || math.IsInf(atr, 0) || atr <= 0:
		return Unavailable(lv, "ATR is zero or undefined")
	case math.IsNaN(price) || math.IsInf(price, 0) || price <= 0:
		return Unavailable(lv, "no valid current price")
	case direction == 0:
		return Unavailable(lv, "neutral signal has no directional levels")
	}

	if direction > 0 {
		lv.Direction = 1
		lv.StopLoss = math.Max(price-StopMultiplier*atr, 0)
		lv.TakeProfit = price + TargetMultiplier*atr
	} else {
		lv.Direction = -1
		lv.StopLoss = price + StopMultiplier*atr
		lv.TakeProfit = math.Max(price-TargetMultiplier*atr, 0)
	}
	lv.RiskReward = math.Abs(lv.TakeProfit-lv.Entry) / math.Abs(lv.Entry-lv.StopLoss)
	lv.Available = true
	return lv
}

// Unavailable marks levels as not computable, zeroing every price field.
func Unavailable(lv model.RiskLevels, reason string) model.RiskLevels {
	return model.RiskLevels{
		Direction: lv.Direction,
		Entry:     sanitize(lv.Entry),
		ATR:       sanitize(lv.ATR),
		Reason:    reason,
	}
}

func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
