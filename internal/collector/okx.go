package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"TradePulse/internal/model"
)

const defaultOKXBaseURL = "https://www.okx.com"

// OKXFetcher implements Fetcher using the OKX public market data API.
type OKXFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewOKXFetcher creates a fetcher with optional base URL and proxy
// overrides; empty strings select the public endpoint and no proxy.
func NewOKXFetcher(baseURL, proxyURL string) *OKXFetcher {
	if baseURL == "" {
		baseURL = defaultOKXBaseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &OKXFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *OKXFetcher) Name() string { return "okx" }

// okxCandles is the response structure of /api/v5/market/candles.
// Each data row is [ts, open, high, low, close, vol, ...] as strings,
// newest first.
type okxCandles struct {
	Code string     `json:"code"`
	Msg  string     `json:"msg"`
	Data [][]string `json:"data"`
}

func (f *OKXFetcher) FetchCandles(instrument string, period time.Duration, limit int) ([]model.OHLCV, error) {
	bar, err := okxBar(period)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/api/v5/market/candles?instId=%s&bar=%s&limit=%d",
		f.BaseURL, url.QueryEscape(instrument), bar, limit)

	resp, err := f.Client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("fetch candles: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("okx API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var parsed okxCandles
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode candles: %w", err)
	}
	if parsed.Code != "0" {
		return nil, fmt.Errorf("okx API error: code %s, msg %s", parsed.Code, parsed.Msg)
	}

	// OKX returns newest first; reverse to oldest first.
	bars := make([]model.OHLCV, 0, len(parsed.Data))
	for i := len(parsed.Data) - 1; i >= 0; i-- {
		row := parsed.Data[i]
		if len(row) < 6 {
			continue
		}
		ts, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			continue
		}
		bars = append(bars, model.OHLCV{
			Time:   time.UnixMilli(ts),
			Open:   parseFloat(row[1]),
			High:   parseFloat(row[2]),
			Low:    parseFloat(row[3]),
			Close:  parseFloat(row[4]),
			Volume: parseFloat(row[5]),
		})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("okx returned no candles for %s", instrument)
	}
	return bars, nil
}

// okxBar maps a kline period onto the OKX bar parameter ("5m", "1H", "1D").
func okxBar(period time.Duration) (string, error) {
	switch {
	case period <= 0:
		return "", fmt.Errorf("invalid kline period %v", period)
	case period < time.Hour:
		return fmt.Sprintf("%dm", int(period.Minutes())), nil
	case period < 24*time.Hour:
		return fmt.Sprintf("%dH", int(period.Hours())), nil
	default:
		return fmt.Sprintf("%dD", int(period.Hours()/24)), nil
	}
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
