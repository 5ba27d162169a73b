package calculator

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

// HighLow scans `period` bars ending at index end (inclusive) and returns the highest high and lowest low.
func HighLow(highs, lows []float64, end, period int) (high, low float64, err error) {
	if period <= 0 {
		return 0, 0, errors.New("period must be positive")
	}
	if end < 0 || end >= len(highs) || end >= len(lows) {
		return 0, 0, errors.New("range end out of bounds")
	}
	start := end - period + 1
	if start < 0 {
		return 0, 0, errors.New("not enough bars for range")
	}
	return floats.Max(highs[start : end+1]), floats.Min(lows[start : end+1]), nil
}

// Midpoint returns the centre of the high/low range over the window, as used by Ichimoku lines.
func Midpoint(highs, lows []float64, end, period int) (float64, error) {
	h, l, err := HighLow(highs, lows, end, period)
	if err != nil {
		return 0, err
	}
	return (h + l) / 2, nil
}

func maxOf(xs []float64) float64 { return floats.Max(xs) }

func minOf(xs []float64) float64 { return floats.Min(xs) }
