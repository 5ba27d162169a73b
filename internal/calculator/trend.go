package calculator

import (
	"github.com/markcheno/go-talib"

	"FusionSentinel/internal/model"
)

// MACD returns the MACD line, signal and histogram. Standard parameters 12/26/9.
func MACD(c Columns) model.Indicator {
	need := func(p []int) int { return p[1] + p[2] - 1 }
	standard := []int{12, 26, 9}
	ind, p, ok := start(model.IndMACD, c.Len(), standard, need)
	if !ok {
		return ind
	}
	if p[0] >= p[1] {
		// shrinking collapsed fast onto slow, which would pin the line at 0
		p[0] = max(MinWindow, p[1]/2)
		if p[0] >= p[1] && need([]int{p[0], p[0] + 1, p[2]}) <= c.Len() {
			p[1] = p[0] + 1
		}
		describeWindows(&ind, standard, p)
	}
	line, signal, hist := talib.Macd(c.Close, p[0], p[1], p[2])
	ind.Value = last(line)
	ind.Lines = map[string]float64{
		"macd":   last(line),
		"signal": last(signal),
		"hist":   last(hist),
	}
	return finish(ind)
}

// ADX returns the average directional index with the +DI and -DI lines, standard window 14.
func ADX(c Columns) model.Indicator {
	ind, p, ok := start(model.IndADX, c.Len(), []int{14}, single(func(p int) int { return 2 * p }))
	if !ok {
		return ind
	}
	adx := last(talib.Adx(c.High, c.Low, c.Close, p[0]))
	ind.Value = adx
	ind.Lines = map[string]float64{
		"adx":      adx,
		"plus_di":  last(talib.PlusDI(c.High, c.Low, c.Close, p[0])),
		"minus_di": last(talib.MinusDI(c.High, c.Low, c.Close, p[0])),
	}
	return finish(ind)
}
