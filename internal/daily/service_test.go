package daily

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DailyMarketBot/internal/collector"
	"DailyMarketBot/internal/llm"
	"DailyMarketBot/internal/model"
)

type staticNews struct {
	byDate map[string][]model.Headline
}

func (s staticNews) Headlines(_ context.Context, date string) []model.Headline {
	if h, ok := s.byDate[date]; ok {
		return h
	}
	return []model.Headline{}
}

func barsOf(closes ...float64) []model.PriceBar {
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = model.PriceBar{Date: start.AddDate(0, 0, i), Close: c, Volume: 1000}
	}
	return bars
}

// peakThenDip rises for 290 bars and gives back a little over the last 10.
func peakThenDip() []model.PriceBar {
	var closes []float64
	for i := 0; i < 290; i++ {
		closes = append(closes, 100+float64(i))
	}
	for i := 1; i <= 10; i++ {
		closes = append(closes, 389-float64(i)*2)
	}
	return barsOf(closes...)
}

// troughThenBounce falls for 290 bars and recovers a little over the last 10.
func troughThenBounce() []model.PriceBar {
	var closes []float64
	for i := 0; i < 290; i++ {
		closes = append(closes, 400-float64(i))
	}
	for i := 1; i <= 10; i++ {
		closes = append(closes, 111+float64(i)*0.5)
	}
	return barsOf(closes...)
}

func newTestService(bars map[string][]model.PriceBar, headlines map[string][]model.Headline) *Service {
	c := collector.NewCollector(&collector.MockFetcher{Bars: bars}, collector.DefaultHistoryDays)
	composer := llm.NewComposer(llm.NewFallback(llm.FlagFallbackNoKey), time.Second)
	return NewService(c, staticNews{byDate: headlines}, composer, []string{"HIGH", "LOW"})
}

func TestPayloadSell(t *testing.T) {
	svc := newTestService(map[string][]model.PriceBar{"HIGH": peakThenDip()}, nil)

	p, err := svc.Payload(context.Background(), "high", "2024-05-10")
	require.NoError(t, err)

	assert.Equal(t, "HIGH", p.Ticker)
	assert.Equal(t, "2024-05-10", p.AsOf)
	assert.Equal(t, model.RatingSell, p.Rating)
	assert.Greater(t, p.PosPct52w, 0.75)
	assert.InDelta(t, 369.0, p.Last, 1e-9)
	assert.Less(t, p.Metrics.Ret1d, 0.0)
	assert.Less(t, p.RatingDetail.Momentum, 0.0)
	assert.Equal(t, model.DefaultRatingParams(), p.RatingDetail.Params)
	assert.Equal(t, model.SentimentBearish, p.Sentiment)
	assert.Equal(t, []string{llm.FlagFallbackNoKey}, p.RiskFlags)
	assert.Contains(t, p.Note, "Rating: sell.")
	assert.Contains(t, p.Note, "Headlines: none available.")
}

func TestPayloadBuyWithHeadlines(t *testing.T) {
	headlines := map[string][]model.Headline{
		"2024-05-10": {{Source: "Reuters", Title: "Chips rebound"}},
	}
	svc := newTestService(map[string][]model.PriceBar{"LOW": troughThenBounce()}, headlines)

	p, err := svc.Payload(context.Background(), "LOW", "2024-05-10")
	require.NoError(t, err)

	assert.Equal(t, model.RatingBuy, p.Rating)
	assert.Less(t, p.PosPct52w, 0.25)
	assert.Greater(t, p.RatingDetail.Momentum, 0.0)
	assert.Equal(t, []string{"Reuters: Chips rebound"}, p.Rationale)
	assert.Contains(t, p.Note, "Headlines: Reuters: Chips rebound.")
}

func TestPayloadUnknownTicker(t *testing.T) {
	svc := newTestService(map[string][]model.PriceBar{}, nil)

	_, err := svc.Payload(context.Background(), "NOPE", "2024-05-10")
	assert.True(t, errors.Is(err, collector.ErrUnknownTicker))
}

func TestPayloadSingleBar(t *testing.T) {
	svc := newTestService(map[string][]model.PriceBar{"ONE": barsOf(10)}, nil)

	_, err := svc.Payload(context.Background(), "ONE", "2024-05-10")
	assert.Error(t, err)
}

func TestBatchPreservesOrder(t *testing.T) {
	svc := newTestService(map[string][]model.PriceBar{
		"HIGH": peakThenDip(),
		"LOW":  troughThenBounce(),
	}, nil)

	b, err := svc.Batch(context.Background(), []string{"LOW,HIGH", " ", "LOW"}, "2024-05-10")
	require.NoError(t, err)

	assert.Equal(t, "2024-05-10", b.AsOf)
	assert.Equal(t, []string{"LOW", "HIGH", "LOW"}, b.Tickers)
	require.Len(t, b.Data, 3)
	assert.Equal(t, "LOW", b.Data[0].Ticker)
	assert.Equal(t, "HIGH", b.Data[1].Ticker)
	assert.Equal(t, model.RatingBuy, b.Data[2].Rating)
}

func TestBatchDefaultsAndFailure(t *testing.T) {
	svc := newTestService(map[string][]model.PriceBar{"HIGH": peakThenDip()}, nil)

	assert.Equal(t, []string{"HIGH", "LOW"}, svc.ResolveTickers(nil))

	_, err := svc.Batch(context.Background(), nil, "2024-05-10")
	assert.True(t, errors.Is(err, collector.ErrUnknownTicker))
}
