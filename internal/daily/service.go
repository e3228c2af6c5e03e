// Package daily runs the per-ticker pipeline: prices, metrics, headlines,
// note, payload.
package daily

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"DailyMarketBot/internal/collector"
	"DailyMarketBot/internal/llm"
	"DailyMarketBot/internal/logger"
	"DailyMarketBot/internal/model"
	"DailyMarketBot/internal/news"
	"DailyMarketBot/internal/strategy"
)

// DefaultBatchConcurrency bounds the per-ticker fan-out of a batch.
const DefaultBatchConcurrency = 4

// Service builds daily payloads. It holds no per-request state.
type Service struct {
	Collector      *collector.Collector
	News           news.Source
	Composer       *llm.Composer
	Params         model.RatingParams
	DefaultTickers []string
	Concurrency    int
}

// NewService wires a service with the default rating parameters.
func NewService(c *collector.Collector, src news.Source, composer *llm.Composer, defaultTickers []string) *Service {
	return &Service{
		Collector:      c,
		News:           src,
		Composer:       composer,
		Params:         model.DefaultRatingParams(),
		DefaultTickers: defaultTickers,
		Concurrency:    DefaultBatchConcurrency,
	}
}

// Payload computes the daily payload for one ticker. asOf labels the result
// and selects the headline file; prices always run to the latest bar.
func (s *Service) Payload(ctx context.Context, ticker, asOf string) (*model.DailyPayload, error) {
	series, err := s.Collector.Series(ctx, ticker)
	if err != nil {
		return nil, err
	}

	metrics, err := strategy.ComputeMetrics(series)
	if err != nil {
		return nil, err
	}
	rr := strategy.ComputeRangeRating(series, s.Params)
	sentiment := strategy.SentimentFromReturns(metrics, strategy.DefaultEps1d, strategy.DefaultEps5d)

	var headlines []model.Headline
	if s.News != nil {
		headlines = s.News.Headlines(ctx, asOf)
	}

	note := s.Composer.Compose(ctx, llm.Request{
		Ticker:    series.Ticker,
		AsOf:      asOf,
		Metrics:   metrics,
		Range:     &rr,
		Sentiment: sentiment,
		Headlines: headlines,
	})

	logger.Debug("daily payload computed",
		zap.String("ticker", series.Ticker),
		zap.String("as_of", asOf),
		zap.String("source", series.Source),
		zap.Time("fetched_at", series.FetchedAt),
		zap.String("rating", string(note.Rating)),
		zap.Float64("pos_pct_52w", rr.PosPct52w))

	return &model.DailyPayload{
		Ticker:    series.Ticker,
		AsOf:      asOf,
		Metrics:   metrics,
		Rating:    note.Rating,
		PosPct52w: rr.PosPct52w,
		Low52w:    rr.Low52w,
		High52w:   rr.High52w,
		Last:      rr.Last,
		Note:      note.Text,
		Sentiment: note.Sentiment,
		Rationale: note.Rationale,
		RiskFlags: note.RiskFlags,
		RatingDetail: model.RatingDetail{
			Momentum:   rr.Momentum,
			TrendUp:    rr.TrendUp,
			DistToLow:  rr.DistToLow,
			DistToHigh: rr.DistToHigh,
			Params:     rr.Params,
		},
	}, nil
}

// Batch computes payloads for tickers in request order. The first failing
// ticker fails the whole batch. An empty list means the default set.
func (s *Service) Batch(ctx context.Context, tickers []string, asOf string) (*model.DailyBatch, error) {
	tickers = s.ResolveTickers(tickers)
	out := make([]model.DailyPayload, len(tickers))

	g, gctx := errgroup.WithContext(ctx)
	limit := s.Concurrency
	if limit <= 0 {
		limit = DefaultBatchConcurrency
	}
	g.SetLimit(limit)

	for i, t := range tickers {
		g.Go(func() error {
			p, err := s.Payload(gctx, t, asOf)
			if err != nil {
				return err
			}
			out[i] = *p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.DailyBatch{AsOf: asOf, Tickers: tickers, Data: out}, nil
}

// ResolveTickers splits comma-separated entries, drops blanks and falls back
// to the default set when nothing is left.
func (s *Service) ResolveTickers(raw []string) []string {
	var tickers []string
	for _, entry := range raw {
		for _, t := range strings.Split(entry, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tickers = append(tickers, t)
			}
		}
	}
	if len(tickers) == 0 {
		return append([]string(nil), s.DefaultTickers...)
	}
	return tickers
}
