package model

import (
	"fmt"
	"math"
)

// Dimension is one analytical axis fused into the final signal.
type Dimension string

const (
	DimTechnical   Dimension = "technical"
	DimFundamental Dimension = "fundamental"
	DimPositioning Dimension = "positioning"
	DimNews        Dimension = "news"
)

// Dimensions lists the four dimensions in report order.
var Dimensions = [4]Dimension{DimTechnical, DimFundamental, DimPositioning, DimNews}

// DimensionScore is one scorer's output. Score lies in [-1, 1], positive is bullish.
type DimensionScore struct {
	Dimension Dimension
	Score     float64
	Rationale []string
	Degraded  bool
}

// Mode selects the weight profile used by fusion.
type Mode string

const (
	ModeLongTerm  Mode = "long-term"
	ModeShortTerm Mode = "short-term"
)

// ParseMode converts a caller-supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLongTerm, ModeShortTerm:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, s)
}

// WeightTolerance bounds the deviation of a profile's weight sum from 1.
const WeightTolerance = 1e-9

// WeightProfile maps each dimension to its fusion weight.
type WeightProfile struct {
	Name    Mode
	Weights map[Dimension]float64
}

// Validate checks that all four dimensions are weighted within [0,1] and the weights sum to 1.
func (p WeightProfile) Validate() error {
	sum := 0.0
	for _, d := range Dimensions {
		w, ok := p.Weights[d]
		if !ok {
			return fmt.Errorf("profile %s: missing weight for %s", p.Name, d)
		}
		if math.IsNaN(w) || w < 0 || w > 1 {
			return fmt.Errorf("profile %s: weight for %s out of range: %v", p.Name, d, w)
		}
		sum += w
	}
	if len(p.Weights) != len(Dimensions) {
		return fmt.Errorf("profile %s: unexpected dimensions in weights", p.Name)
	}
	if math.Abs(sum-1) > WeightTolerance {
		return fmt.Errorf("profile %s: weights sum to %v, want 1", p.Name, sum)
	}
	return nil
}

// Classification is the discrete fused signal, ordered from most bearish to most bullish.
type Classification int

const (
	StrongSell Classification = iota - 2
	Sell
	Neutral
	Buy
	StrongBuy
)

func (c Classification) String() string {
	switch c {
	case StrongSell:
		return "Strong Sell"
	case Sell:
		return "Sell"
	case Neutral:
		return "Neutral"
	case Buy:
		return "Buy"
	case StrongBuy:
		return "Strong Buy"
	}
	return fmt.Sprintf("Classification(%d)", int(c))
}

// Direction reports +1 for bullish, -1 for bearish and 0 for neutral signals.
func (c Classification) Direction() int {
	switch {
	case c > Neutral:
		return 1
	case c < Neutral:
		return -1
	}
	return 0
}

// FusionResult is the terminal output of the fusion engine.
type FusionResult struct {
	Score          float64
	Classification Classification
	Contributions  map[Dimension]float64
	Confidence     float64
}
