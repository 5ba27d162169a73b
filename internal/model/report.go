package model

import "time"

// BacktestSummary reports the moving-average crossover replay.
type BacktestSummary struct {
	Available        bool
	Reason           string
	FastWindow       int
	SlowWindow       int
	Trades           int
	Wins             int
	WinRate          float64
	CumulativeReturn float64
	MaxDrawdown      float64
}

// RiskLevels holds ATR-derived stop-loss and take-profit levels.
type RiskLevels struct {
	Available  bool
	Reason     string
	Direction  int
	Entry      float64
	StopLoss   float64
	TakeProfit float64
	RiskReward float64
	ATR        float64
}

// Report is the immutable result of one analysis.
type Report struct {
	Symbol      string
	Mode        Mode
	GeneratedAt time.Time
	Indicators  *IndicatorSet
	Dimensions  [4]DimensionScore
	Fusion      FusionResult
	Backtest    BacktestSummary
	Risk        RiskLevels
}

// Dimension returns the score for d.
func (r *Report) Dimension(d Dimension) DimensionScore {
	for _, s := range r.Dimensions {
		if s.Dimension == d {
			return s
		}
	}
	return DimensionScore{Dimension: d, Degraded: true, Rationale: []string{"unavailable"}}
}
