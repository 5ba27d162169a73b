package strategy

import (
	"math"

	"FusionSentinel/internal/model"
)

// Thresholds maps a fused score to its classification, checked top-down.
// Inclusive bounds match with >=, the others with >.
var Thresholds = []struct {
	Bound     float64
	Inclusive bool
	Class     model.Classification
}{
	{0.6, true, model.StrongBuy},
	{0.2, true, model.Buy},
	{-0.2, false, model.Neutral},
	{-0.6, false, model.Sell},
}

// Classify maps a fused score to a classification.
func Classify(score float64) model.Classification {
	for _, t := range Thresholds {
		if score > t.Bound || (t.Inclusive && score == t.Bound) {
			return t.Class
		}
	}
	return model.StrongSell
}

// Fuse combines the dimension scores under the profile's weights. A missing
// dimension contributes 0. Confidence is derived from how far the dimensions
// disagree with the fused score and never alters the score itself.
func Fuse(scores map[model.Dimension]model.DimensionScore, profile model.WeightProfile) model.FusionResult {
	res := model.FusionResult{Contributions: make(map[model.Dimension]float64, len(model.Dimensions))}

	for _, d := range model.Dimensions {
		c := clamp(scores[d].Score) * profile.Weights[d]
		res.Contributions[d] = c
		res.Score += c
	}
	res.Score = clamp(res.Score)
	res.Classification = Classify(res.Score)

	// weighted RMS deviation, at most 2 since scores lie in [-1, 1]
	var variance float64
	for _, d := range model.Dimensions {
		dev := clamp(scores[d].Score) - res.Score
		variance += profile.Weights[d] * dev * dev
	}
	res.Confidence = math.Max(0, math.Min(1, 1-math.Sqrt(variance)/2))
	return res
}
