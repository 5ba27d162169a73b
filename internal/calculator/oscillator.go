package calculator

import (
	"github.com/markcheno/go-talib"

	"FusionSentinel/internal/model"
)

// CCI is the commodity channel index, standard window 20.
func CCI(c Columns) model.Indicator {
	ind, p, ok := start(model.IndCCI, c.Len(), []int{20}, single(func(p int) int { return p }))
	if !ok {
		return ind
	}
	ind.Value = last(talib.Cci(c.High, c.Low, c.Close, p[0]))
	return finish(ind)
}

// WilliamsR is Williams %R in [-100, 0], standard window 14.
func WilliamsR(c Columns) model.Indicator {
	ind, p, ok := start(model.IndWilliamsR, c.Len(), []int{14}, single(func(p int) int { return p }))
	if !ok {
		return ind
	}
	hi, lo, err := HighLow(c.High, c.Low, c.Len()-1, p[0])
	if err != nil {
		return unavailable(ind, err.Error())
	}
	if hi == lo {
		return unavailable(ind, "flat price range")
	}
	ind.Value = last(talib.WillR(c.High, c.Low, c.Close, p[0]))
	return finish(ind)
}

// MFI is the money flow index in [0, 100], standard window 14.
func MFI(c Columns) model.Indicator {
	ind, p, ok := start(model.IndMFI, c.Len(), []int{14}, single(func(p int) int { return p + 1 }))
	if !ok {
		return ind
	}
	if sumTail(c.Volume, p[0]) == 0 {
		return unavailable(ind, "no traded volume in window")
	}
	ind.Value = last(talib.Mfi(c.High, c.Low, c.Close, c.Volume, p[0]))
	return finish(ind)
}

func sumTail(xs []float64, n int) float64 {
	if n > len(xs) {
		n = len(xs)
	}
	sum := 0.0
	for _, x := range xs[len(xs)-n:] {
		sum += x
	}
	return sum
}
