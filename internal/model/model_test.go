package model

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(n int) *PriceSeries {
	t0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s := &PriceSeries{Symbol: "X"}
	for i := 0; i < n; i++ {
		s.Bars = append(s.Bars, OHLCV{Time: t0.AddDate(0, 0, i), Open: 10, High: 11, Low: 9, Close: 10, Volume: 5})
	}
	return s
}

func TestPriceSeries_Validate(t *testing.T) {
	tests := map[string]struct {
		mutate func(*PriceSeries)
		index  int
	}{
		"duplicate-time": {func(s *PriceSeries) { s.Bars[2].Time = s.Bars[1].Time }, 2},
		"out-of-order":   {func(s *PriceSeries) { s.Bars[3].Time = s.Bars[0].Time.Add(-time.Hour) }, 3},
		"nan-close":      {func(s *PriceSeries) { s.Bars[1].Close = math.NaN() }, 1},
		"inf-volume":     {func(s *PriceSeries) { s.Bars[0].Volume = math.Inf(1) }, 0},
		"negative-open":  {func(s *PriceSeries) { s.Bars[4].Open = -1 }, 4},
		"high-below-low": {func(s *PriceSeries) { s.Bars[2].High = 8 }, 2},
		"zero-time":      {func(s *PriceSeries) { s.Bars[0].Time = time.Time{} }, 0},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := series(5)
			tt.mutate(s)

			err := s.Validate()

			require.ErrorIs(t, err, ErrInvalidInput)
			var bar *InvalidBarError
			require.True(t, errors.As(err, &bar))
			assert.Equal(t, tt.index, bar.Index)
		})
	}

	assert.NoError(t, series(5).Validate())
	assert.NoError(t, series(1).Validate())
	assert.NoError(t, series(0).Validate())
	var nilSeries *PriceSeries
	assert.ErrorIs(t, nilSeries.Validate(), ErrInvalidInput)
}

func TestPriceSeries_Last(t *testing.T) {
	_, ok := series(0).Last()
	assert.False(t, ok)

	s := series(3)
	bar, ok := s.Last()
	assert.True(t, ok)
	assert.Equal(t, s.Bars[2], bar)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("short-term")
	require.NoError(t, err)
	assert.Equal(t, ModeShortTerm, m)

	_, err = ParseMode("swing")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestClassification(t *testing.T) {
	assert.Equal(t, "Strong Sell", StrongSell.String())
	assert.Equal(t, "Buy", Buy.String())
	assert.Less(t, StrongSell, Sell)
	assert.Less(t, Neutral, Buy)
	assert.Equal(t, 1, StrongBuy.Direction())
	assert.Equal(t, 0, Neutral.Direction())
	assert.Equal(t, -1, Sell.Direction())
}

func TestWeightProfile_Validate(t *testing.T) {
	ok := WeightProfile{Name: ModeLongTerm, Weights: map[Dimension]float64{
		DimTechnical: 0.4, DimFundamental: 0.3, DimPositioning: 0.2, DimNews: 0.1,
	}}
	assert.NoError(t, ok.Validate())

	missing := WeightProfile{Weights: map[Dimension]float64{DimTechnical: 1}}
	assert.Error(t, missing.Validate())

	negative := WeightProfile{Weights: map[Dimension]float64{
		DimTechnical: 1.2, DimFundamental: -0.2, DimPositioning: 0, DimNews: 0,
	}}
	assert.Error(t, negative.Validate())

	short := WeightProfile{Weights: map[Dimension]float64{
		DimTechnical: 0.4, DimFundamental: 0.3, DimPositioning: 0.2, DimNews: 0.0999,
	}}
	assert.Error(t, short.Validate())
}

func TestIndicatorSet_Degraded(t *testing.T) {
	set := &IndicatorSet{Indicators: map[string]Indicator{}}
	for _, name := range IndicatorNames {
		set.Indicators[name] = Indicator{Name: name, Status: StatusOK}
	}
	assert.Empty(t, set.Degraded())

	set.Indicators[IndRSI] = Indicator{Name: IndRSI, Status: StatusOK, Reduced: true}
	set.Indicators[IndATR] = Indicator{Name: IndATR, Status: StatusInsufficient}
	assert.Equal(t, []string{IndRSI, IndATR}, set.Degraded())
	assert.False(t, set.Available(IndATR))
	assert.True(t, set.Available(IndSMA))
}
