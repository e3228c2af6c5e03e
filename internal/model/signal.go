package model

// Rating is the buy/hold/sell call derived from the 52-week range.
type Rating string

const (
	RatingBuy  Rating = "buy"
	RatingHold Rating = "hold"
	RatingSell Rating = "sell"
)

// Valid reports whether r is one of the three known ratings.
func (r Rating) Valid() bool {
	switch r {
	case RatingBuy, RatingHold, RatingSell:
		return true
	}
	return false
}

// Sentiment is the direction label derived from returns.
type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
)

// Valid reports whether s is one of the three known sentiments.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentBullish, SentimentBearish, SentimentNeutral:
		return true
	}
	return false
}

// RatingParams are the thresholds and lookbacks a rating was derived with.
type RatingParams struct {
	PctLow        float64 `json:"pct_low" yaml:"pct_low"`
	PctHigh       float64 `json:"pct_high" yaml:"pct_high"`
	MomentumDays  int     `json:"momentum_days" yaml:"momentum_days"`
	SMAWindow     int     `json:"sma_window" yaml:"sma_window"`
	SlopeLookback int     `json:"slope_lookback" yaml:"slope_lookback"`
}

// DefaultRatingParams returns the standard quartile thresholds with a
// 5-day momentum and a 20-day SMA slope over 5 days.
func DefaultRatingParams() RatingParams {
	return RatingParams{
		PctLow:        0.25,
		PctHigh:       0.75,
		MomentumDays:  5,
		SMAWindow:     20,
		SlopeLookback: 5,
	}
}

// RangeRating is the rating together with every input it was decided from.
type RangeRating struct {
	Rating Rating `json:"rating"`
	RangeFeatures
	Momentum float64      `json:"momentum"`
	TrendUp  bool         `json:"trend_up"`
	Params   RatingParams `json:"params"`
}
