package collector

import (
	"fmt"
	"time"

	"TradePulse/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price   float64
	Candles []model.OHLCV
	Err     error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchCandles(_ string, _ time.Duration, limit int) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Candles != nil {
		return m.Candles, nil
	}
	return GenerateCandles(m.Price, limit), nil
}

// GenerateCandles builds a gently drifting series around basePrice,
// oldest first.
func GenerateCandles(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().Add(-time.Duration(count-i) * time.Minute),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector fetches one instrument's candles and assembles the immutable
// snapshot consumed by a tick's pipeline.
type Collector struct {
	Fetcher    Fetcher
	Instrument string
	Limit      int
}

// New creates a Collector for one instrument.
func New(fetcher Fetcher, instrument string, limit int) *Collector {
	return &Collector{Fetcher: fetcher, Instrument: instrument, Limit: limit}
}

// Collect fetches candles at the given period and wraps them in a
// snapshot, most-recent bar last.
func (c *Collector) Collect(period time.Duration) (*model.MarketSnapshot, error) {
	bars, err := c.Fetcher.FetchCandles(c.Instrument, period, c.Limit)
	if err != nil {
		return nil, fmt.Errorf("fetch %s candles: %w", c.Instrument, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no candles returned for %s", c.Instrument)
	}
	return &model.MarketSnapshot{
		Instrument: c.Instrument,
		Period:     period,
		Candles:    bars,
		FetchedAt:  time.Now(),
	}, nil
}
