package collector

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"DailyMarketBot/internal/logger"
	"DailyMarketBot/internal/model"
)

// DefaultHistoryDays is enough history for a 52-week window plus lookbacks.
const DefaultHistoryDays = 300

// MockFetcher returns fixed data for development and testing.
type MockFetcher struct {
	Bars map[string][]model.PriceBar
	Err  error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, ticker string, _ int) ([]model.PriceBar, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	bars, ok := m.Bars[strings.ToUpper(ticker)]
	if !ok {
		return nil, fmt.Errorf("mock %s: %w", ticker, ErrUnknownTicker)
	}
	return bars, nil
}

// GenerateMockBars builds count daily bars ending today, drifting by step per bar.
func GenerateMockBars(basePrice, step float64, count int) []model.PriceBar {
	bars := make([]model.PriceBar, count)
	end := time.Now().UTC().Truncate(24 * time.Hour)
	for i := 0; i < count; i++ {
		bars[i] = model.PriceBar{
			Date:   end.AddDate(0, 0, -(count - 1 - i)),
			Close:  basePrice + float64(i)*step,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector turns a Fetcher's bars into a well-formed PriceSeries.
type Collector struct {
	Fetcher Fetcher
	Days    int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, days int) *Collector {
	if days <= 0 {
		days = DefaultHistoryDays
	}
	return &Collector{Fetcher: fetcher, Days: days}
}

// Series fetches a ticker's history and enforces the series shape: ascending
// dates, one bar per date, finite positive closes.
func (c *Collector) Series(ctx context.Context, ticker string) (*model.PriceSeries, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	bars, err := c.Fetcher.FetchDailyBars(ctx, ticker, c.Days)
	if err != nil {
		return nil, fmt.Errorf("fetch %s from %s: %w", ticker, c.Fetcher.Name(), err)
	}
	bars = normalize(bars)
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: no usable bars: %w", ticker, ErrUnknownTicker)
	}
	logger.Debug("price series collected",
		zap.String("ticker", ticker),
		zap.String("source", c.Fetcher.Name()),
		zap.Int("bars", len(bars)))

	return &model.PriceSeries{
		Ticker:    ticker,
		Bars:      bars,
		Source:    c.Fetcher.Name(),
		FetchedAt: time.Now(),
	}, nil
}

// normalize sorts bars by day, keeps the last bar seen for a duplicated day
// and drops bars without a usable close.
func normalize(in []model.PriceBar) []model.PriceBar {
	bars := make([]model.PriceBar, 0, len(in))
	for _, b := range in {
		if math.IsNaN(b.Close) || math.IsInf(b.Close, 0) || b.Close <= 0 {
			continue
		}
		if math.IsNaN(b.Volume) || math.IsInf(b.Volume, 0) || b.Volume < 0 {
			b.Volume = 0
		}
		bars = append(bars, b)
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	out := bars[:0]
	for _, b := range bars {
		if n := len(out); n > 0 && sameDay(out[n-1].Date, b.Date) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
