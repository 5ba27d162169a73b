package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"FusionSentinel/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error)
	Name() string
}

// NewFetcher builds the fetcher for a configured provider.
func NewFetcher(provider, baseURL, apiKey, proxyURL string) (Fetcher, error) {
	switch provider {
	case "yahoo", "":
		return NewYahooFetcher(proxyURL), nil
	case "http":
		if baseURL == "" {
			return nil, fmt.Errorf("http provider needs a base URL")
		}
		return NewHTTPFetcher(baseURL, apiKey, proxyURL), nil
	case "mock":
		return &MockFetcher{Price: 5000}, nil
	}
	return nil, fmt.Errorf("unknown data provider %q", provider)
}

func newClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
