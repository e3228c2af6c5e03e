package strategy

import (
	"fmt"

	"DailyMarketBot/internal/calculator"
	"DailyMarketBot/internal/model"
)

// VolumeWindow is the trailing window of the volume ratio.
const VolumeWindow = 30

// ComputeMetrics derives the 1-day and 5-day returns and the volume ratio
// of the latest bar. It needs at least two bars.
func ComputeMetrics(series *model.PriceSeries) (model.Metrics, error) {
	closes := series.Closes()
	ret1d, err := calculator.PercentChange(closes, 1)
	if err != nil {
		return model.Metrics{}, fmt.Errorf("1d return for %s: %w", series.Ticker, err)
	}
	ret5d, err := calculator.PercentChange(closes, 5)
	if err != nil {
		return model.Metrics{}, fmt.Errorf("5d return for %s: %w", series.Ticker, err)
	}
	return model.Metrics{
		Ret1d:    ret1d,
		Ret5d:    ret5d,
		VolVs30d: calculator.VolumeRatio(series.Volumes(), VolumeWindow),
	}, nil
}

// Decide maps a range position, momentum and trend to a rating.
//   - lower band and price not deteriorating (momentum >= 0 or trend up) -> buy
//   - upper band and price not still rising (momentum <= 0 or trend down) -> sell
//   - anything else, including the whole middle band -> hold
func Decide(pos, momentum float64, trendUp bool, p model.RatingParams) model.Rating {
	switch {
	case pos <= p.PctLow && (momentum >= 0 || trendUp):
		return model.RatingBuy
	case pos >= p.PctHigh && (momentum <= 0 || !trendUp):
		return model.RatingSell
	default:
		return model.RatingHold
	}
}

// ComputeRangeRating rates the latest close from its 52-week range position,
// confirmed by short momentum and the SMA slope.
func ComputeRangeRating(series *model.PriceSeries, p model.RatingParams) model.RangeRating {
	closes := series.Closes()
	feats := calculator.ComputeRangeFeatures(closes, calculator.TradingDaysPerYear)
	mom := calculator.Momentum(closes, p.MomentumDays)
	up := calculator.TrendUp(closes, p.SMAWindow, p.SlopeLookback)

	return model.RangeRating{
		Rating:        Decide(feats.PosPct52w, mom, up, p),
		RangeFeatures: feats,
		Momentum:      mom,
		TrendUp:       up,
		Params:        p,
	}
}
