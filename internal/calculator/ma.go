package calculator

import (
	"errors"
	"math"

	"github.com/markcheno/go-talib"

	"FusionSentinel/internal/model"
)

// Columns is a column view of a bar series.
type Columns struct {
	Open   []float64
	High   []float64
	Low    []float64
	Close  []float64
	Volume []float64
}

// NewColumns splits bars into per-field slices.
func NewColumns(bars []model.OHLCV) Columns {
	c := Columns{
		Open:   make([]float64, len(bars)),
		High:   make([]float64, len(bars)),
		Low:    make([]float64, len(bars)),
		Close:  extractCloses(bars),
		Volume: make([]float64, len(bars)),
	}
	for i, b := range bars {
		c.Open[i] = b.Open
		c.High[i] = b.High
		c.Low[i] = b.Low
		c.Volume[i] = b.Volume
	}
	return c
}

// Len returns the number of bars.
func (c Columns) Len() int { return len(c.Close) }

// CalculateSMA computes the simple moving average of the given prices over the specified period.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// SMASeries returns the rolling simple moving average. Entries before the
// first full window are NaN.
func SMASeries(prices []float64, period int) []float64 {
	out := make([]float64, len(prices))
	if period <= 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	sum := 0.0
	for i, p := range prices {
		sum += p
		if i >= period {
			sum -= prices[i-period]
		}
		if i < period-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(period)
	}
	return out
}

// SMA is the simple moving average of closes, standard window 50.
func SMA(c Columns) model.Indicator {
	ind, p, ok := start(model.IndSMA, c.Len(), []int{50}, single(func(p int) int { return p }))
	if !ok {
		return ind
	}
	v, err := CalculateSMA(c.Close, p[0])
	if err != nil {
		return unavailable(ind, err.Error())
	}
	ind.Value = v
	return finish(ind)
}

// EMA is the exponential moving average of closes, standard window 20.
func EMA(c Columns) model.Indicator {
	ind, p, ok := start(model.IndEMA, c.Len(), []int{20}, single(func(p int) int { return p }))
	if !ok {
		return ind
	}
	ind.Value = last(talib.Ema(c.Close, p[0]))
	return finish(ind)
}

// LWMA is the linearly weighted moving average of closes, standard window 20.
func LWMA(c Columns) model.Indicator {
	ind, p, ok := start(model.IndLWMA, c.Len(), []int{20}, single(func(p int) int { return p }))
	if !ok {
		return ind
	}
	ind.Value = last(talib.Wma(c.Close, p[0]))
	return finish(ind)
}

// KAMA is Kaufman's adaptive moving average, standard efficiency window 10.
func KAMA(c Columns) model.Indicator {
	ind, p, ok := start(model.IndKAMA, c.Len(), []int{10}, single(func(p int) int { return p + 1 }))
	if !ok {
		return ind
	}
	ind.Value = last(talib.Kama(c.Close, p[0]))
	return finish(ind)
}

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
