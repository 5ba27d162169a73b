package calculator

import (
	"errors"
	"math"

	"FusionSentinel/internal/model"
)

// RSISeries computes the Wilder-smoothed RSI for every bar. Entries before
// index period are NaN. A window with neither gains nor losses reads 50.
func RSISeries(closes []float64, period int) []float64 {
	out := make([]float64, len(closes))
	for i := range out {
		out[i] = math.NaN()
	}
	if period <= 0 || len(closes) < period+1 {
		return out
	}

	// Initial average gain/loss over the first `period` changes
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	// Wilder smoothing for remaining bars
	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	switch {
	case avgGain == 0 && avgLoss == 0:
		return 50.0
	case avgLoss == 0:
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}

// CalculateRSI returns the latest Wilder RSI over the given period.
// Requires at least period+1 closes.
func CalculateRSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < period+1 {
		return 0, errors.New("not enough data for RSI calculation")
	}
	return last(RSISeries(closes, period)), nil
}

// RSI is the Wilder RSI of closes, standard window 14.
func RSI(c Columns) model.Indicator {
	ind, p, ok := start(model.IndRSI, c.Len(), []int{14}, single(func(p int) int { return p + 1 }))
	if !ok {
		return ind
	}
	v, err := CalculateRSI(c.Close, p[0])
	if err != nil {
		return unavailable(ind, err.Error())
	}
	ind.Value = v
	return finish(ind)
}

// StochRSI applies the stochastic oscillator to the RSI series.
// Standard parameters: RSI 14, stochastic 14, %D smoothing 3. Values lie in [0, 1].
func StochRSI(c Columns) model.Indicator {
	need := func(p []int) int { return p[0] + p[1] + p[2] - 1 }
	ind, p, ok := start(model.IndStochRSI, c.Len(), []int{14, 14, 3}, need)
	if !ok {
		return ind
	}
	rsiPeriod, stochPeriod, dPeriod := p[0], p[1], p[2]
	rsi := RSISeries(c.Close, rsiPeriod)
	n := len(rsi)

	ks := make([]float64, 0, dPeriod)
	for end := n - dPeriod; end < n; end++ {
		window := rsi[end-stochPeriod+1 : end+1]
		hi, lo := maxOf(window), minOf(window)
		if hi == lo {
			return unavailable(ind, "flat RSI range")
		}
		ks = append(ks, (rsi[end]-lo)/(hi-lo))
	}
	d := 0.0
	for _, k := range ks {
		d += k
	}
	d /= float64(len(ks))

	ind.Value = last(ks)
	ind.Lines = map[string]float64{"k": last(ks), "d": d}
	return finish(ind)
}
