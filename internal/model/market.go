package model

import (
	"math"
	"time"
)

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds raw price data for analysis, ascending by time.
type PriceSeries struct {
	Symbol    string
	Bars      []OHLCV
	FetchedAt time.Time
}

// Len returns the number of bars.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}

// Last returns the most recent bar. ok is false for an empty series.
func (s *PriceSeries) Last() (bar OHLCV, ok bool) {
	if s.Len() == 0 {
		return OHLCV{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// Validate rejects structurally malformed series before any indicator runs.
// Series with fewer than two bars are valid; they degrade per indicator.
func (s *PriceSeries) Validate() error {
	if s == nil {
		return &InvalidBarError{Index: -1, Reason: "nil series"}
	}
	for i, b := range s.Bars {
		if b.Time.IsZero() {
			return &InvalidBarError{Index: i, Time: b.Time, Reason: "missing timestamp"}
		}
		for _, f := range []struct {
			name  string
			value float64
		}{
			{"open", b.Open}, {"high", b.High}, {"low", b.Low}, {"close", b.Close}, {"volume", b.Volume},
		} {
			if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
				return &InvalidBarError{Index: i, Time: b.Time, Reason: f.name + " is not a finite number"}
			}
			if f.value < 0 {
				return &InvalidBarError{Index: i, Time: b.Time, Reason: f.name + " is negative"}
			}
		}
		if b.High < b.Low {
			return &InvalidBarError{Index: i, Time: b.Time, Reason: "high below low"}
		}
		if i > 0 && !b.Time.After(s.Bars[i-1].Time) {
			return &InvalidBarError{Index: i, Time: b.Time, Reason: "timestamp not strictly increasing"}
		}
	}
	return nil
}
