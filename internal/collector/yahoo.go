package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"FusionSentinel/internal/model"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// Index aliases accepted on top of plain Yahoo tickers.
var yahooAliases = map[string]string{
	"SPX":    "^GSPC",
	"SP500":  "^GSPC",
	"SPX500": "^GSPC",
	"NDX":    "^NDX",
	"DJI":    "^DJI",
}

// yahooRanges maps a bar count to the smallest chart range that covers it.
var yahooRanges = []struct {
	days int
	rng  string
}{
	{30, "1mo"},
	{90, "3mo"},
	{180, "6mo"},
	{365, "1y"},
	{730, "2y"},
	{1825, "5y"},
}

// YahooFetcher reads daily bars from the Yahoo Finance chart endpoint.
type YahooFetcher struct {
	BaseURL string
	Client  *http.Client
}

func NewYahooFetcher(proxyURL string) *YahooFetcher {
	return &YahooFetcher{BaseURL: yahooBaseURL, Client: newClient(proxyURL)}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func yahooTicker(symbol string) string {
	if t, ok := yahooAliases[symbol]; ok {
		return t
	}
	return symbol
}

func yahooRange(days int) string {
	for _, r := range yahooRanges {
		if days <= r.days {
			return r.rng
		}
	}
	return "max"
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*float64 `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

var errNoChartData = errors.New("yahoo: no data returned")

// rawBars zips the column arrays of a chart result into rows.
func (r chartResult) rawBars() ([]rawBar, error) {
	if len(r.Timestamp) == 0 || len(r.Indicators.Quote) == 0 {
		return nil, errNoChartData
	}
	q := r.Indicators.Quote[0]
	n := len(r.Timestamp)
	for _, col := range [][]*float64{q.Open, q.High, q.Low, q.Close, q.Volume} {
		if len(col) < n {
			return nil, fmt.Errorf("yahoo: %d quote values for %d timestamps", len(col), n)
		}
	}
	rows := make([]rawBar, n)
	for i, ts := range r.Timestamp {
		rows[i] = rawBar{Timestamp: ts, Open: q.Open[i], High: q.High[i], Low: q.Low[i], Close: q.Close[i], Volume: q.Volume[i]}
	}
	return rows, nil
}

func (f *YahooFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	ticker := yahooTicker(symbol)
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		f.BaseURL, url.PathEscape(ticker), yahooRange(days))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, errNoChartData
	}
	rows, err := chart.Chart.Result[0].rawBars()
	if err != nil {
		return nil, err
	}

	bars, skipped := decodeBars(rows)
	if skipped > 0 {
		log.Debug().Str("symbol", symbol).Str("ticker", ticker).Int("skipped", skipped).
			Msg("dropped bars with missing prices")
	}
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}
