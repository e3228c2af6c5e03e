package collector

import (
	"context"
	"errors"

	"DailyMarketBot/internal/model"
)

// ErrUnknownTicker is returned when a source has no history for a ticker.
var ErrUnknownTicker = errors.New("unknown ticker")

// Fetcher defines the interface for fetching daily price history.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, ticker string, days int) ([]model.PriceBar, error)
	Name() string
}
