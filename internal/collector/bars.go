package collector

import (
	"math"
	"sort"
	"time"

	"FusionSentinel/internal/model"
)

// rawBar is one bar as providers send it. Prices are pointers so a JSON null
// stays distinguishable from a real zero.
type rawBar struct {
	Timestamp int64    `json:"timestamp"`
	Open      *float64 `json:"open"`
	High      *float64 `json:"high"`
	Low       *float64 `json:"low"`
	Close     *float64 `json:"close"`
	Volume    *float64 `json:"volume"`
}

// toBar converts a raw bar. ok is false when any price is null or not finite;
// a missing volume reads as 0.
func (r rawBar) toBar() (bar model.OHLCV, ok bool) {
	prices := [4]*float64{r.Open, r.High, r.Low, r.Close}
	for _, p := range prices {
		if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
			return model.OHLCV{}, false
		}
	}
	bar = model.OHLCV{
		Time:  time.Unix(r.Timestamp, 0).UTC(),
		Open:  *r.Open,
		High:  *r.High,
		Low:   *r.Low,
		Close: *r.Close,
	}
	if r.Volume != nil && !math.IsNaN(*r.Volume) && !math.IsInf(*r.Volume, 0) {
		bar.Volume = *r.Volume
	}
	return bar, true
}

// decodeBars keeps the complete bars in time order and returns how many
// incomplete ones were dropped.
func decodeBars(raw []rawBar) (bars []model.OHLCV, skipped int) {
	bars = make([]model.OHLCV, 0, len(raw))
	for _, r := range raw {
		b, ok := r.toBar()
		if !ok {
			skipped++
			continue
		}
		bars = append(bars, b)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, skipped
}
