package calculator

import (
	"github.com/markcheno/go-talib"

	"FusionSentinel/internal/model"
)

// BollingerDeviations is the band width in standard deviations.
const BollingerDeviations = 2.0

// Bollinger returns the upper, middle and lower bands and %b, standard window 20.
func Bollinger(c Columns) model.Indicator {
	ind, p, ok := start(model.IndBollinger, c.Len(), []int{20}, single(func(p int) int { return p }))
	if !ok {
		return ind
	}
	upper, middle, lower := talib.BBands(c.Close, p[0], BollingerDeviations, BollingerDeviations, talib.SMA)
	u, m, l := last(upper), last(middle), last(lower)
	percentB := 0.5
	if u != l {
		percentB = (last(c.Close) - l) / (u - l)
	}
	ind.Value = m
	ind.Lines = map[string]float64{
		"upper":     u,
		"middle":    m,
		"lower":     l,
		"percent_b": percentB,
	}
	return finish(ind)
}

// ATR is the Wilder average true range, standard window 14.
func ATR(c Columns) model.Indicator {
	ind, p, ok := start(model.IndATR, c.Len(), []int{14}, single(func(p int) int { return p + 1 }))
	if !ok {
		return ind
	}
	ind.Value = last(talib.Atr(c.High, c.Low, c.Close, p[0]))
	return finish(ind)
}
