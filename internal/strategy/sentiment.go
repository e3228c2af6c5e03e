package strategy

import "DailyMarketBot/internal/model"

// Default sentiment thresholds: 0.30% for the 1-day and 0.50% for the 5-day return.
const (
	DefaultEps1d = 0.003
	DefaultEps5d = 0.005
)

// SentimentFromReturns labels the returns bullish or bearish only when both
// horizons clear their thresholds in the same direction.
func SentimentFromReturns(m model.Metrics, eps1d, eps5d float64) model.Sentiment {
	switch {
	case m.Ret1d > eps1d && m.Ret5d > eps5d:
		return model.SentimentBullish
	case m.Ret1d < -eps1d && m.Ret5d < -eps5d:
		return model.SentimentBearish
	default:
		return model.SentimentNeutral
	}
}
