package strategy

import (
	"fmt"

	"FusionSentinel/internal/model"
)

// DefaultProfiles returns the built-in weight profiles. Long-term leans on
// fundamentals, short-term on technicals and news.
func DefaultProfiles() map[model.Mode]model.WeightProfile {
	return map[model.Mode]model.WeightProfile{
		model.ModeLongTerm: {
			Name: model.ModeLongTerm,
			Weights: map[model.Dimension]float64{
				model.DimTechnical:   0.50,
				model.DimFundamental: 0.25,
				model.DimPositioning: 0.15,
				model.DimNews:        0.10,
			},
		},
		model.ModeShortTerm: {
			Name: model.ModeShortTerm,
			Weights: map[model.Dimension]float64{
				model.DimTechnical:   0.60,
				model.DimFundamental: 0.05,
				model.DimPositioning: 0.15,
				model.DimNews:        0.20,
			},
		},
	}
}

// MergeProfiles overlays overrides on the defaults and validates the result.
func MergeProfiles(overrides map[model.Mode]model.WeightProfile) (map[model.Mode]model.WeightProfile, error) {
	out := DefaultProfiles()
	for mode, p := range overrides {
		if _, err := model.ParseMode(string(mode)); err != nil {
			return nil, err
		}
		p.Name = mode
		out[mode] = p
	}
	for mode, p := range out {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("weight profile %s: %w", mode, err)
		}
	}
	return out, nil
}
