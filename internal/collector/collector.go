package collector

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"FusionSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Generated bars end at Anchor so output is reproducible.
type MockFetcher struct {
	Price     float64
	Anchor    time.Time
	DailyData []model.OHLCV
	Err       error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(ctx context.Context, _ string, days int) ([]model.OHLCV, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	anchor := m.Anchor
	if anchor.IsZero() {
		anchor = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	}
	return generateMockBars(m.Price, days, anchor), nil
}

func generateMockBars(basePrice float64, count int, anchor time.Time) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * math.Exp(float64(i-count/2)*0.001) * (1 + 0.01*math.Sin(float64(i)/5))
		bars[i] = model.OHLCV{
			Time:   anchor.AddDate(0, 0, -(count - 1 - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector fetches bar history and packages it as a PriceSeries.
type Collector struct {
	Fetcher Fetcher
	Days    int
	now     func() time.Time
}

// NewCollector creates a new Collector requesting days bars per symbol.
func NewCollector(fetcher Fetcher, days int) *Collector {
	return &Collector{Fetcher: fetcher, Days: days, now: time.Now}
}

// Collect fetches the daily history of symbol. Bars are sorted and
// deduplicated by timestamp, keeping the latest copy of a repeated bar.
func (c *Collector) Collect(ctx context.Context, symbol string) (*model.PriceSeries, error) {
	bars, err := c.Fetcher.FetchDailyBars(ctx, symbol, c.Days)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars from %s: %w", c.Fetcher.Name(), err)
	}

	sorted := make([]model.OHLCV, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	clean := sorted[:0]
	for _, b := range sorted {
		if n := len(clean); n > 0 && clean[n-1].Time.Equal(b.Time) {
			clean[n-1] = b
			continue
		}
		clean = append(clean, b)
	}
	if dropped := len(bars) - len(clean); dropped > 0 {
		log.Warn().Str("symbol", symbol).Int("dropped", dropped).Msg("duplicate bars removed")
	}

	return &model.PriceSeries{Symbol: symbol, Bars: clean, FetchedAt: c.now()}, nil
}
