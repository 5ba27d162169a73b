package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FusionSentinel/internal/model"
)

// risingBars builds a series that gains 1% every bar with no pullbacks.
func risingBars(n int) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	t0 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	price := 100.0
	for i := 0; i < n; i++ {
		o := price
		c := o * 1.01
		bars[i] = model.OHLCV{
			Time:   t0.AddDate(0, 0, i),
			Open:   o,
			High:   c * 1.002,
			Low:    o * 0.998,
			Close:  c,
			Volume: 1000,
		}
		price = c
	}
	return bars
}

func zigzagBars(n int) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	t0 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		c := 100.0 + 3*math.Sin(float64(i)) + 0.1*float64(i)
		bars[i] = model.OHLCV{
			Time:   t0.AddDate(0, 0, i),
			Open:   c - 0.5,
			High:   c + 1,
			Low:    c - 1.5,
			Close:  c,
			Volume: 1000 + 10*float64(i),
		}
	}
	return bars
}

func TestShrinkWindow(t *testing.T) {
	tests := []struct {
		n, standard, want int
	}{
		{5, 14, 2},
		{3, 14, 2},
		{0, 14, 2},
		{30, 50, 15},
		{100, 14, 14},
	}
	for _, tt := range tests {
		if got := ShrinkWindow(tt.n, tt.standard); got != tt.want {
			t.Errorf("ShrinkWindow(%d, %d) = %d, want %d", tt.n, tt.standard, got, tt.want)
		}
	}
}

func TestCalculateSMA(t *testing.T) {
	v, err := CalculateSMA([]float64{1, 2, 3, 4, 5}, 3)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, v, 1e-12)

	_, err = CalculateSMA([]float64{1, 2}, 3)
	assert.Error(t, err)
	_, err = CalculateSMA([]float64{1, 2}, 0)
	assert.Error(t, err)
}

func TestSMASeries(t *testing.T) {
	out := SMASeries([]float64{1, 2, 3, 4, 5}, 3)
	require.Len(t, out, 5)
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 2.0, out[2], 1e-12)
	assert.InDelta(t, 3.0, out[3], 1e-12)
	assert.InDelta(t, 4.0, out[4], 1e-12)

	for _, v := range SMASeries([]float64{1, 2, 3}, 0) {
		assert.True(t, math.IsNaN(v))
	}
}

func TestRSISeries_WilderSmoothing(t *testing.T) {
	out := RSISeries([]float64{10, 11, 10, 11, 10}, 2)
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 50.0, out[2], 1e-9)
	assert.InDelta(t, 75.0, out[3], 1e-9)
	assert.InDelta(t, 37.5, out[4], 1e-9)
}

func TestRSISeries_Extremes(t *testing.T) {
	up := RSISeries([]float64{1, 2, 3, 4, 5, 6}, 3)
	assert.Equal(t, 100.0, up[5])

	flat := RSISeries([]float64{5, 5, 5, 5, 5}, 3)
	assert.Equal(t, 50.0, flat[4])

	_, err := CalculateRSI([]float64{1, 2}, 2)
	assert.Error(t, err)
}

func TestHighLow(t *testing.T) {
	highs := []float64{5, 7, 6, 9, 8}
	lows := []float64{1, 3, 2, 4, 0.5}

	h, l, err := HighLow(highs, lows, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, 9.0, h)
	assert.Equal(t, 2.0, l)

	m, err := Midpoint(highs, lows, 4, 5)
	require.NoError(t, err)
	assert.InDelta(t, 4.75, m, 1e-12)

	_, _, err = HighLow(highs, lows, 1, 3)
	assert.Error(t, err)
	_, _, err = HighLow(highs, lows, 9, 1)
	assert.Error(t, err)
}

func TestCompute_FullHistory(t *testing.T) {
	bars := risingBars(252)
	set := Compute(bars)

	require.Equal(t, 252, set.Bars)
	assert.InDelta(t, bars[251].Close, set.Close, 1e-12)
	require.Len(t, set.Indicators, len(model.IndicatorNames))

	for _, name := range model.IndicatorNames {
		ind, ok := set.Get(name)
		require.True(t, ok, name)
		assert.False(t, ind.Reduced, "%s should use its standard window", name)
	}

	rsi, _ := set.Get(model.IndRSI)
	require.True(t, rsi.OK())
	assert.Equal(t, 14, rsi.Window)
	assert.Greater(t, rsi.Value, 70.0)

	for _, name := range []string{model.IndSMA, model.IndEMA, model.IndLWMA, model.IndKAMA, model.IndVWAP} {
		ind, _ := set.Get(name)
		require.True(t, ind.OK(), name)
		assert.Less(t, ind.Value, set.Close, "%s should lag a rising close", name)
	}

	ichi, _ := set.Get(model.IndIchimoku)
	require.True(t, ichi.OK())
	assert.Greater(t, set.Close, ichi.Line("span_a"))
	assert.Greater(t, set.Close, ichi.Line("span_b"))
	assert.Greater(t, ichi.Line("chikou"), ichi.Line("chikou_ref"))

	obv, _ := set.Get(model.IndOBV)
	require.True(t, obv.OK())
	assert.InDelta(t, 20*1000.0, obv.Line("slope"), 1e-6)

	adx, _ := set.Get(model.IndADX)
	require.True(t, adx.OK())
	assert.Greater(t, adx.Line("plus_di"), adx.Line("minus_di"))

	// constant RSI leaves the stochastic range flat
	stoch, _ := set.Get(model.IndStochRSI)
	assert.Equal(t, model.StatusUnavailable, stoch.Status)
}

func TestCompute_ShortSeriesShrinksWindows(t *testing.T) {
	set := Compute(zigzagBars(5))

	for _, name := range model.IndicatorNames {
		ind, ok := set.Get(name)
		require.True(t, ok, name)
		require.Greater(t, ind.StandardWindow, MinWindow, name)
		assert.True(t, ind.Reduced || ind.Status == model.StatusInsufficient,
			"%s: expected reduced or insufficient, got status=%s reduced=%v (%s)", name, ind.Status, ind.Reduced, ind.Reason)
		if ind.OK() && name != model.IndMACD {
			assert.Equal(t, MinWindow, ind.Window, name)
		}
	}
}

func TestCompute_SingleBarIsInsufficient(t *testing.T) {
	for _, n := range []int{0, 1} {
		set := Compute(risingBars(n))
		for _, name := range model.IndicatorNames {
			ind, _ := set.Get(name)
			assert.Equal(t, model.StatusInsufficient, ind.Status, "n=%d %s", n, name)
			assert.NotEmpty(t, ind.Reason)
		}
	}
}

func TestCompute_DeterministicAndPure(t *testing.T) {
	bars := zigzagBars(40)
	snapshot := append([]model.OHLCV(nil), bars...)

	first := Compute(bars)
	second := Compute(bars)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, bars, "input bars must not be mutated")
}

func TestVWAP_ZeroVolumeIsUnavailable(t *testing.T) {
	bars := zigzagBars(30)
	for i := range bars {
		bars[i].Volume = 0
	}
	ind := VWAP(NewColumns(bars))
	assert.Equal(t, model.StatusUnavailable, ind.Status)
	assert.Contains(t, ind.Reason, "volume")

	mfi := MFI(NewColumns(bars))
	assert.Equal(t, model.StatusUnavailable, mfi.Status)
}

func TestVWAP_Value(t *testing.T) {
	bars := []model.OHLCV{
		{High: 12, Low: 8, Close: 10, Volume: 1},
		{High: 22, Low: 18, Close: 20, Volume: 3},
	}
	cols := NewColumns(bars)
	ind := VWAP(cols)
	require.True(t, ind.OK())
	assert.True(t, ind.Reduced)
	// window shrinks to 2: (10*1 + 20*3) / 4
	assert.InDelta(t, 17.5, ind.Value, 1e-12)
}

func TestGuardRecoversPanics(t *testing.T) {
	ind := guard("boom", func() model.Indicator { panic("index out of range") })
	assert.Equal(t, model.StatusUnavailable, ind.Status)
	assert.Equal(t, "boom", ind.Name)
	assert.Contains(t, ind.Reason, "index out of range")
}

func TestMACD_ShortSeriesKeepsFastBelowSlow(t *testing.T) {
	for _, n := range []int{4, 5, 20, 25} {
		ind := MACD(NewColumns(risingBars(n)))

		require.True(t, ind.OK(), "n=%d: %s", n, ind.Reason)
		assert.True(t, ind.Reduced, "n=%d", n)
		assert.Equal(t, 26, ind.StandardWindow)
		// a rising close keeps the fast average above the slow one
		assert.Greater(t, ind.Line("macd"), 0.0, "n=%d: %s", n, ind.Reason)
	}

	ind := MACD(NewColumns(risingBars(20)))
	assert.Equal(t, "windows reduced from 12/26/9 to 5/10/9", ind.Reason)
	assert.Equal(t, 10, ind.Window)
}

func TestIchimoku_ReasonNamesEveryShrunkWindow(t *testing.T) {
	ind := Ichimoku(NewColumns(risingBars(60)))

	require.True(t, ind.OK(), ind.Reason)
	assert.True(t, ind.Reduced)
	assert.Equal(t, "windows reduced from 9/26/52/26 to 9/26/30/26", ind.Reason)
	assert.Equal(t, 30, ind.Window)
	assert.Equal(t, 52, ind.StandardWindow)
}
