// Package app wires configuration into the daily pipeline.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"DailyMarketBot/internal/collector"
	"DailyMarketBot/internal/config"
	"DailyMarketBot/internal/daily"
	"DailyMarketBot/internal/llm"
	"DailyMarketBot/internal/logger"
	"DailyMarketBot/internal/news"
)

// NewFetcher returns the configured price source.
func NewFetcher(cfg *config.Config) (collector.Fetcher, error) {
	switch cfg.Market.Source {
	case "csv":
		return collector.NewCSVFetcher(cfg.Market.PricesDir()), nil
	case "yahoo":
		return collector.NewYahooFetcher(cfg.Proxy, cfg.Market.RequestsPerSecond), nil
	default:
		return nil, fmt.Errorf("unknown price source %q", cfg.Market.Source)
	}
}

// NewService builds the daily service from configuration.
func NewService(ctx context.Context, cfg *config.Config) (*daily.Service, error) {
	fetcher, err := NewFetcher(cfg)
	if err != nil {
		return nil, err
	}

	generator := llm.NewGenerator(ctx, llm.Options{
		Provider:        cfg.LLM.Provider,
		AnthropicAPIKey: cfg.LLM.AnthropicAPIKey,
		GeminiAPIKey:    cfg.LLM.GeminiAPIKey,
		Model:           cfg.LLM.Model,
		MaxTokens:       cfg.LLM.MaxTokens,
	})

	svc := daily.NewService(
		collector.NewCollector(fetcher, cfg.Market.HistoryDays),
		news.NewFileSource(cfg.Market.NewsDir()),
		llm.NewComposer(generator, cfg.LLM.Timeout),
		cfg.Market.DefaultTickers,
	)
	svc.Params = cfg.Rating
	svc.Concurrency = cfg.Market.BatchConcurrency

	logger.Info("daily service ready",
		zap.String("price_source", fetcher.Name()),
		zap.String("generator", generator.Name()),
		zap.Strings("default_tickers", cfg.Market.DefaultTickers))
	return svc, nil
}
