package strategy

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"FusionSentinel/internal/model"
)

// NoSourceRationale is attached by a simulated scorer that has nothing to read from.
const NoSourceRationale = "no live data source configured"

// Inputs is what every scorer sees for one analysis.
type Inputs struct {
	Series     *model.PriceSeries
	Indicators *model.IndicatorSet
}

// Scorer reduces its inputs to one bounded dimension score.
type Scorer interface {
	Dimension() model.Dimension
	Score(in Inputs) model.DimensionScore
}

// Source backs a non-technical dimension with external data. It returns a
// score in [-1, 1] and the rationale behind it.
type Source interface {
	Score(in Inputs) (float64, []string, error)
}

// SimulatedScorer scores a dimension from an optional Source. Without one it
// degrades to a neutral 0.0 so fusion always receives all four dimensions.
type SimulatedScorer struct {
	Dim    model.Dimension
	Source Source
}

func (s SimulatedScorer) Dimension() model.Dimension { return s.Dim }

func (s SimulatedScorer) Score(in Inputs) model.DimensionScore {
	if s.Source == nil {
		return neutral(s.Dim, NoSourceRationale)
	}
	v, rationale, err := s.Source.Score(in)
	if err != nil {
		log.Debug().Err(err).Str("dimension", string(s.Dim)).Msg("source failed, scoring neutral")
		return neutral(s.Dim, fmt.Sprintf("source error: %v", err))
	}
	if math.IsNaN(v) {
		return neutral(s.Dim, "source returned no score")
	}
	return model.DimensionScore{Dimension: s.Dim, Score: clamp(v), Rationale: rationale}
}

func neutral(d model.Dimension, reason string) model.DimensionScore {
	return model.DimensionScore{Dimension: d, Score: 0, Rationale: []string{reason}, Degraded: true}
}

// clamp bounds v to [-1, 1].
func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
