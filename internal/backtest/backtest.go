// Package backtest replays a moving-average crossover rule over a bar series.
//
// The regime at bar t is the sign of fastSMA−slowSMA computed from bars up
// to and including t. A regime change seen at the close of bar t is acted on
// at the open of bar t+1. The first bar on which both averages exist counts
// as a change when the fast average is above the slow one. A position still
// open after the last bar is closed at the final close and counted. Once
// equity is wiped out no further position is opened.
package backtest

import (
	"fmt"
	"math"

	"FusionSentinel/internal/calculator"
	"FusionSentinel/internal/model"
)

// Config holds the crossover windows.
type Config struct {
	Fast       int  `yaml:"fast"`
	Slow       int  `yaml:"slow"`
	AllowShort bool `yaml:"allow_short"`
}

// DefaultConfig returns the crossover windows used for a mode.
func DefaultConfig(mode model.Mode) Config {
	if mode == model.ModeShortTerm {
		return Config{Fast: 5, Slow: 20}
	}
	return Config{Fast: 20, Slow: 50}
}

// Validate checks the windows.
func (c Config) Validate() error {
	if c.Fast <= 0 || c.Slow <= 0 {
		return fmt.Errorf("backtest windows must be positive: fast=%d slow=%d", c.Fast, c.Slow)
	}
	if c.Fast >= c.Slow {
		return fmt.Errorf("fast window %d must be shorter than slow window %d", c.Fast, c.Slow)
	}
	return nil
}

type position struct {
	side  int // 1 long, -1 short, 0 flat
	entry float64
}

// ret is the position's return at price. A short can lose at most its stake.
func (p position) ret(price float64) float64 {
	switch p.side {
	case 1:
		return price/p.entry - 1
	case -1:
		return math.Max(-1, 1-price/p.entry)
	}
	return 0
}

type run struct {
	equity float64
	trades int
	wins   int
	pos    position
}

// close realizes the open position at price.
func (r *run) close(price float64) {
	if r.pos.side == 0 {
		return
	}
	ret := r.pos.ret(price)
	r.equity *= 1 + ret
	r.trades++
	if ret > 0 {
		r.wins++
	}
	r.pos = position{}
}

// Run replays the crossover strategy over bars.
func Run(bars []model.OHLCV, cfg Config) model.BacktestSummary {
	sum := model.BacktestSummary{FastWindow: cfg.Fast, SlowWindow: cfg.Slow}
	if err := cfg.Validate(); err != nil {
		sum.Reason = err.Error()
		return sum
	}
	n := len(bars)
	if n < cfg.Slow+1 {
		sum.Reason = fmt.Sprintf("need %d bars for a %d/%d crossover, have %d", cfg.Slow+1, cfg.Fast, cfg.Slow, n)
		return sum
	}

	closes := calculator.NewColumns(bars).Close
	fast := calculator.SMASeries(closes, cfg.Fast)
	slow := calculator.SMASeries(closes, cfg.Slow)

	r := &run{equity: 1}
	peak, maxDD := 1.0, 0.0
	regime := 0
	pending, hasPending := 0, false

	for t := 0; t < n; t++ {
		if hasPending {
			r.close(bars[t].Open)
			if pending != 0 && bars[t].Open > 0 && r.equity > 0 {
				r.pos = position{side: pending, entry: bars[t].Open}
			}
			hasPending = false
		}

		mtm := r.equity
		if r.pos.side != 0 {
			mtm *= 1 + r.pos.ret(bars[t].Close)
		}
		if mtm > peak {
			peak = mtm
		}
		if peak > 0 {
			maxDD = math.Max(maxDD, (peak-mtm)/peak)
		}

		if math.IsNaN(slow[t]) || math.IsNaN(fast[t]) {
			continue
		}
		next := 0
		switch {
		case fast[t] > slow[t]:
			next = 1
		case fast[t] < slow[t]:
			next = -1
		}
		if next == 0 || next == regime {
			continue
		}
		regime = next
		target := 0
		if next == 1 {
			target = 1
		} else if cfg.AllowShort {
			target = -1
		}
		if target != r.pos.side {
			pending, hasPending = target, true
		}
	}
	r.close(bars[n-1].Close)

	sum.Available = true
	sum.Trades = r.trades
	sum.Wins = r.wins
	if r.trades > 0 {
		sum.WinRate = float64(r.wins) / float64(r.trades)
		sum.CumulativeReturn = r.equity - 1
	}
	sum.MaxDrawdown = maxDD
	return sum
}
