// Package report packages the outputs of one analysis into a model.Report.
package report

import (
	"time"

	"FusionSentinel/internal/model"
)

// Unavailable is the reason attached to a component that was not produced.
const Unavailable = "unavailable"

// Parts are the upstream outputs. Nil or missing entries become explicit
// unavailable markers in the report.
type Parts struct {
	Symbol      string
	Mode        model.Mode
	GeneratedAt time.Time
	Indicators  *model.IndicatorSet
	Dimensions  map[model.Dimension]model.DimensionScore
	Fusion      *model.FusionResult
	Backtest    *model.BacktestSummary
	Risk        *model.RiskLevels
}

// Assemble builds the report. It performs no computation of its own.
func Assemble(p Parts) *model.Report {
	r := &model.Report{
		Symbol:      p.Symbol,
		Mode:        p.Mode,
		GeneratedAt: p.GeneratedAt,
		Indicators:  p.Indicators,
	}

	if r.Indicators == nil {
		r.Indicators = &model.IndicatorSet{Indicators: make(map[string]model.Indicator, len(model.IndicatorNames))}
		for _, name := range model.IndicatorNames {
			r.Indicators.Indicators[name] = model.Indicator{Name: name, Status: model.StatusUnavailable, Reason: Unavailable}
		}
	}

	for i, d := range model.Dimensions {
		s, ok := p.Dimensions[d]
		if !ok {
			s = model.DimensionScore{Dimension: d, Degraded: true, Rationale: []string{Unavailable}}
		}
		r.Dimensions[i] = s
	}

	if p.Fusion != nil {
		r.Fusion = *p.Fusion
	} else {
		r.Fusion = model.FusionResult{Classification: model.Neutral, Contributions: map[model.Dimension]float64{}}
		for _, d := range model.Dimensions {
			r.Fusion.Contributions[d] = 0
		}
	}

	if p.Backtest != nil {
		r.Backtest = *p.Backtest
	} else {
		r.Backtest = model.BacktestSummary{Reason: Unavailable}
	}

	if p.Risk != nil {
		r.Risk = *p.Risk
	} else {
		r.Risk = model.RiskLevels{Reason: Unavailable}
	}
	return r
}
