package calculator

import (
	"github.com/markcheno/go-talib"

	"FusionSentinel/internal/model"
)

// OBV returns on-balance volume and its change over the slope window (standard 20).
func OBV(c Columns) model.Indicator {
	ind, p, ok := start(model.IndOBV, c.Len(), []int{20}, single(func(p int) int { return p + 1 }))
	if !ok {
		return ind
	}
	obv := talib.Obv(c.Close, c.Volume)
	n := len(obv)
	ind.Value = obv[n-1]
	ind.Lines = map[string]float64{
		"obv":   obv[n-1],
		"slope": obv[n-1] - obv[n-1-p[0]],
	}
	return finish(ind)
}

// VWAP is the rolling volume-weighted typical price, standard window 20.
func VWAP(c Columns) model.Indicator {
	ind, p, ok := start(model.IndVWAP, c.Len(), []int{20}, single(func(p int) int { return p }))
	if !ok {
		return ind
	}
	n := c.Len()
	var pv, vol float64
	for i := n - p[0]; i < n; i++ {
		typical := (c.High[i] + c.Low[i] + c.Close[i]) / 3
		pv += typical * c.Volume[i]
		vol += c.Volume[i]
	}
	if vol == 0 {
		return unavailable(ind, "no traded volume in window")
	}
	ind.Value = pv / vol
	return finish(ind)
}
