package strategy

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"FusionSentinel/internal/model"
)

// Vote weights. Oscillators are noisier than trend lines and count half.
const (
	trendWeight      = 1.0
	oscillatorWeight = 0.5
)

// ADXTrending is the ADX level from which the directional indicators vote.
const ADXTrending = 25.0

// vote is one indicator's signed opinion: +1 bullish, -1 bearish, 0 none.
type vote struct {
	name   string
	weight float64
	sign   int
	note   string
}

type voter struct {
	name   string
	weight float64
	fn     func(close float64, ind model.Indicator) (int, string)
}

// voters lists the voting indicators in display order. atr measures range only.
var voters = []voter{
	{model.IndSMA, trendWeight, aboveLine("SMA")},
	{model.IndEMA, trendWeight, aboveLine("EMA")},
	{model.IndLWMA, trendWeight, aboveLine("LWMA")},
	{model.IndKAMA, trendWeight, aboveLine("KAMA")},
	{model.IndMACD, trendWeight, voteMACD},
	{model.IndADX, trendWeight, voteADX},
	{model.IndIchimoku, trendWeight, voteIchimoku},
	{model.IndVWAP, trendWeight, aboveLine("VWAP")},
	{model.IndOBV, trendWeight, voteOBV},
	{model.IndRSI, oscillatorWeight, band("RSI", 70, 30)},
	{model.IndStochRSI, oscillatorWeight, band("StochRSI %K", 0.8, 0.2)},
	{model.IndCCI, oscillatorWeight, band("CCI", 100, -100)},
	{model.IndWilliamsR, oscillatorWeight, band("Williams %R", -20, -80)},
	{model.IndMFI, oscillatorWeight, band("MFI", 80, 20)},
	{model.IndBollinger, oscillatorWeight, voteBollinger},
}

// TechnicalScorer aggregates indicator votes into the technical dimension.
type TechnicalScorer struct{}

func (TechnicalScorer) Dimension() model.Dimension { return model.DimTechnical }

func (TechnicalScorer) Score(in Inputs) model.DimensionScore {
	out := model.DimensionScore{Dimension: model.DimTechnical}
	set := in.Indicators

	var votes []vote
	for _, v := range voters {
		ind, ok := set.Get(v.name)
		if !ok || !ind.OK() {
			continue
		}
		s, note := v.fn(set.Close, ind)
		votes = append(votes, vote{name: v.name, weight: v.weight, sign: s, note: note})
	}

	if len(votes) == 0 {
		out.Degraded = true
		out.Rationale = []string{"no indicator available to vote"}
		return out
	}

	var sum, total float64
	bulls, bears := 0, 0
	for _, v := range votes {
		sum += v.weight * float64(v.sign)
		total += v.weight
		switch {
		case v.sign > 0:
			bulls++
		case v.sign < 0:
			bears++
		}
		out.Rationale = append(out.Rationale, v.note)
	}

	if bulls == bears {
		out.Score = 0
	} else {
		out.Score = clamp(sum / total)
	}
	if deg := set.Degraded(); len(deg) > 0 {
		out.Degraded = true
		log.Debug().Strs("indicators", deg).Msg("technical score built on degraded indicators")
	}
	out.Rationale = append(out.Rationale, fmt.Sprintf("%d bullish / %d bearish of %d votes", bulls, bears, len(votes)))
	return out
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func aboveLine(label string) func(float64, model.Indicator) (int, string) {
	return func(close float64, ind model.Indicator) (int, string) {
		s := sign(close - ind.Value)
		return s, fmt.Sprintf("close %s %s(%d) %.2f", relation(s), label, ind.Window, ind.Value)
	}
}

func relation(s int) string {
	switch s {
	case 1:
		return "above"
	case -1:
		return "below"
	}
	return "at"
}

// band votes contrarian: above hi is overbought (bearish), below lo oversold (bullish).
func band(label string, hi, lo float64) func(float64, model.Indicator) (int, string) {
	return func(_ float64, ind model.Indicator) (int, string) {
		v := ind.Value
		switch {
		case v > hi:
			return -1, fmt.Sprintf("%s %.2f overbought", label, v)
		case v < lo:
			return 1, fmt.Sprintf("%s %.2f oversold", label, v)
		}
		return 0, fmt.Sprintf("%s %.2f neutral", label, v)
	}
}

func voteMACD(_ float64, ind model.Indicator) (int, string) {
	h := ind.Line("hist")
	return sign(h), fmt.Sprintf("MACD histogram %+.4f", h)
}

func voteADX(_ float64, ind model.Indicator) (int, string) {
	adx := ind.Line("adx")
	if adx < ADXTrending {
		return 0, fmt.Sprintf("ADX %.1f no trend", adx)
	}
	s := sign(ind.Line("plus_di") - ind.Line("minus_di"))
	dir := "up"
	if s < 0 {
		dir = "down"
	}
	if s == 0 {
		dir = "flat"
	}
	return s, fmt.Sprintf("ADX %.1f trend %s", adx, dir)
}

func voteIchimoku(close float64, ind model.Indicator) (int, string) {
	top := math.Max(ind.Line("span_a"), ind.Line("span_b"))
	bottom := math.Min(ind.Line("span_a"), ind.Line("span_b"))
	switch {
	case close > top:
		return 1, "close above cloud"
	case close < bottom:
		return -1, "close below cloud"
	}
	return 0, "close inside cloud"
}

func voteOBV(_ float64, ind model.Indicator) (int, string) {
	s := ind.Line("slope")
	return sign(s), fmt.Sprintf("OBV change %+.0f over %d bars", s, ind.Window)
}

func voteBollinger(close float64, ind model.Indicator) (int, string) {
	switch {
	case close > ind.Line("upper"):
		return -1, "close above upper band"
	case close < ind.Line("lower"):
		return 1, "close below lower band"
	}
	return 0, fmt.Sprintf("close inside bands (%%b %.2f)", ind.Line("percent_b"))
}
