// Package calculator computes technical indicators over a bar series.
//
// Each indicator is a pure function of the bars. When the series is shorter
// than an indicator needs, its window shrinks (see ShrinkWindow) and the
// result is marked Reduced; when even that is not enough, the indicator
// reports StatusInsufficient instead of failing.
package calculator

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"FusionSentinel/internal/model"
)

// Func computes one indicator from a column view.
type Func func(Columns) model.Indicator

var battery = []struct {
	name string
	fn   Func
}{
	{model.IndSMA, SMA},
	{model.IndEMA, EMA},
	{model.IndLWMA, LWMA},
	{model.IndKAMA, KAMA},
	{model.IndMACD, MACD},
	{model.IndADX, ADX},
	{model.IndIchimoku, Ichimoku},
	{model.IndVWAP, VWAP},
	{model.IndOBV, OBV},
	{model.IndRSI, RSI},
	{model.IndStochRSI, StochRSI},
	{model.IndCCI, CCI},
	{model.IndWilliamsR, WilliamsR},
	{model.IndMFI, MFI},
	{model.IndBollinger, Bollinger},
	{model.IndATR, ATR},
}

// Compute evaluates every indicator at the latest bar. Indicators run
// concurrently; the result depends only on bars.
func Compute(bars []model.OHLCV) *model.IndicatorSet {
	cols := NewColumns(bars)
	results := make([]model.Indicator, len(battery))

	var g errgroup.Group
	for i, b := range battery {
		g.Go(func() error {
			results[i] = guard(b.name, func() model.Indicator { return b.fn(cols) })
			return nil
		})
	}
	_ = g.Wait()

	set := &model.IndicatorSet{
		Bars:       cols.Len(),
		Indicators: make(map[string]model.Indicator, len(results)),
	}
	if cols.Len() > 0 {
		set.Close = last(cols.Close)
	}
	for _, ind := range results {
		set.Indicators[ind.Name] = ind
		if !ind.OK() || ind.Reduced {
			log.Debug().Str("indicator", ind.Name).Str("status", string(ind.Status)).
				Bool("reduced", ind.Reduced).Int("window", ind.Window).Msg(ind.Reason)
		}
	}
	return set
}

// guard turns a panic inside an indicator into an unavailable status.
func guard(name string, fn func() model.Indicator) (ind model.Indicator) {
	defer func() {
		if r := recover(); r != nil {
			ind = model.Indicator{
				Name:   name,
				Status: model.StatusUnavailable,
				Reason: fmt.Sprintf("computation failed: %v", r),
			}
		}
	}()
	return fn()
}
